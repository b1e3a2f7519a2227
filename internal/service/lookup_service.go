package service

import (
	"context"
	"strings"

	"uhs-recruit/internal/repository"

	"github.com/google/uuid"
)

// LookupService is CRUD over one vendor-owned lookup list. Rows are always scoped to the caller.
type LookupService[T any, PT repository.OwnedPtr[T]] interface {
	List(ctx context.Context, caller *Principal) ([]T, error)
	Create(ctx context.Context, caller *Principal, row PT) (PT, error)
	// Update loads the caller's row, lets apply patch it, then saves it.
	Update(ctx context.Context, caller *Principal, id uuid.UUID, apply func(PT) error) (PT, error)
	Delete(ctx context.Context, caller *Principal, id uuid.UUID) error
}

type lookupService[T any, PT repository.OwnedPtr[T]] struct {
	repo repository.LookupRepository[T, PT]
	noun string
}

func NewLookupService[T any, PT repository.OwnedPtr[T]](repo repository.LookupRepository[T, PT], noun string) LookupService[T, PT] {
	return &lookupService[T, PT]{repo: repo, noun: noun}
}

func (s *lookupService[T, PT]) List(ctx context.Context, caller *Principal) ([]T, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, caller.ID())
}

func (s *lookupService[T, PT]) Create(ctx context.Context, caller *Principal, row PT) (PT, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if strings.TrimSpace(row.GetName()) == "" {
		return nil, invalid("Name is required")
	}
	row.SetID(uuid.Nil)
	row.SetOwner(caller.ID())
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *lookupService[T, PT]) Update(ctx context.Context, caller *Principal, id uuid.UUID, apply func(PT) error) (PT, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	row, err := s.repo.FindOwned(ctx, id, caller.ID())
	if err != nil {
		return nil, notFoundOr(err, s.noun)
	}
	if err := apply(row); err != nil {
		return nil, invalid("Invalid request body")
	}
	// identity and owner are not patchable
	row.SetID(id)
	row.SetOwner(caller.ID())
	if strings.TrimSpace(row.GetName()) == "" {
		return nil, invalid("Name is required")
	}
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *lookupService[T, PT]) Delete(ctx context.Context, caller *Principal, id uuid.UUID) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	return notFoundOr(s.repo.Delete(ctx, id, caller.ID()), s.noun)
}
