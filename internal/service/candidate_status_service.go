package service

import (
	"context"
	"errors"
	"strings"

	"uhs-recruit/internal/model"
	"uhs-recruit/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CandidateStatusService interface {
	List(ctx context.Context) ([]model.CandidateStatus, error)
	Create(ctx context.Context, req CreateStatusRequest) (*model.CandidateStatus, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*model.CandidateStatus, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateStatusRequest struct {
	Label string `json:"label" validate:"required"`
	// Value defaults to the slug of Label.
	Value string `json:"value"`
	Color string `json:"color" validate:"hexcolor_or_empty"`
}

type UpdateStatusRequest struct {
	Label     *string `json:"label"`
	Value     *string `json:"value"`
	Color     *string `json:"color" validate:"omitempty,hexcolor_or_empty"`
	SortOrder *int    `json:"sortOrder"`
}

type candidateStatusService struct {
	repo repository.CandidateStatusRepository
}

func NewCandidateStatusService(repo repository.CandidateStatusRepository) CandidateStatusService {
	return &candidateStatusService{repo: repo}
}

// Slugify lowercases s and joins its whitespace-separated words with hyphens.
func Slugify(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), "-"))
}

func (s *candidateStatusService) List(ctx context.Context) ([]model.CandidateStatus, error) {
	return s.repo.FindAll(ctx)
}

func (s *candidateStatusService) Create(ctx context.Context, req CreateStatusRequest) (*model.CandidateStatus, error) {
	label := strings.TrimSpace(req.Label)
	source := req.Value
	if strings.TrimSpace(source) == "" {
		source = label
	}
	value := Slugify(source)
	if value == "" {
		return nil, invalid("Status value is required")
	}
	if label == "" {
		label = source
	}

	if err := s.ensureUnique(ctx, value, uuid.Nil); err != nil {
		return nil, err
	}

	max, err := s.repo.MaxSortOrder(ctx)
	if err != nil {
		return nil, err
	}

	status := &model.CandidateStatus{
		Value:     value,
		Label:     label,
		Color:     req.Color,
		SortOrder: max + 1,
	}
	if err := s.repo.Create(ctx, status); err != nil {
		return nil, conflictOr(err, "Status %q already exists", value)
	}
	return status, nil
}

func (s *candidateStatusService) Update(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*model.CandidateStatus, error) {
	status, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Status")
	}

	if req.Value != nil {
		value := Slugify(*req.Value)
		if value == "" {
			return nil, invalid("Status value is required")
		}
		if value != status.Value {
			if err := s.ensureUnique(ctx, value, status.ID); err != nil {
				return nil, err
			}
		}
		status.Value = value
	}
	if req.Label != nil {
		label := strings.TrimSpace(*req.Label)
		if label == "" {
			return nil, invalid("Status label is required")
		}
		status.Label = label
	}
	if req.Color != nil {
		status.Color = *req.Color
	}
	if req.SortOrder != nil {
		status.SortOrder = *req.SortOrder
	}

	if err := s.repo.Update(ctx, status); err != nil {
		return nil, conflictOr(err, "Status %q already exists", status.Value)
	}
	return status, nil
}

func (s *candidateStatusService) Delete(ctx context.Context, id uuid.UUID) error {
	return notFoundOr(s.repo.Delete(ctx, id), "Status")
}

func (s *candidateStatusService) ensureUnique(ctx context.Context, value string, self uuid.UUID) error {
	existing, err := s.repo.FindByValue(ctx, value)
	if err == nil && existing.ID != self {
		return newError(ErrConflict, "Status %q already exists", value)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
