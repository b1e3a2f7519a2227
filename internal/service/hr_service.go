package service

import (
	"context"
	"strings"

	"uhs-recruit/internal/model"
	"uhs-recruit/internal/repository"

	"github.com/google/uuid"
)

type HrRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	Designation string `json:"designation"`
}

type HrService interface {
	List(ctx context.Context, caller *Principal) ([]model.Hr, error)
	Create(ctx context.Context, caller *Principal, req HrRequest) (*model.Hr, error)
	Update(ctx context.Context, caller *Principal, id uuid.UUID, req HrRequest) (*model.Hr, error)
	Delete(ctx context.Context, caller *Principal, id uuid.UUID) error
}

type hrService struct {
	repo repository.HrRepository
}

func NewHrService(repo repository.HrRepository) HrService {
	return &hrService{repo: repo}
}

func (s *hrService) List(ctx context.Context, caller *Principal) ([]model.Hr, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.repo.FindByVendor(ctx, caller.ID())
}

func (s *hrService) Create(ctx context.Context, caller *Principal, req HrRequest) (*model.Hr, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	email := normalizeEmail(req.Email)
	if err := s.ensureUniqueEmail(ctx, caller.ID(), email, uuid.Nil); err != nil {
		return nil, err
	}

	hr := &model.Hr{
		VendorID:    caller.ID(),
		Name:        strings.TrimSpace(req.Name),
		Email:       email,
		Phone:       req.Phone,
		Designation: req.Designation,
	}
	if err := s.repo.Create(ctx, hr); err != nil {
		return nil, conflictOr(err, "An HR with email %s already exists", email)
	}
	return hr, nil
}

func (s *hrService) Update(ctx context.Context, caller *Principal, id uuid.UUID, req HrRequest) (*model.Hr, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	hr, err := s.repo.FindOwned(ctx, id, caller.ID())
	if err != nil {
		return nil, notFoundOr(err, "HR")
	}

	email := normalizeEmail(req.Email)
	if email != hr.Email {
		if err := s.ensureUniqueEmail(ctx, caller.ID(), email, hr.ID); err != nil {
			return nil, err
		}
	}
	hr.Name = strings.TrimSpace(req.Name)
	hr.Email = email
	hr.Phone = req.Phone
	hr.Designation = req.Designation

	if err := s.repo.Update(ctx, hr); err != nil {
		return nil, conflictOr(err, "An HR with email %s already exists", email)
	}
	return hr, nil
}

func (s *hrService) Delete(ctx context.Context, caller *Principal, id uuid.UUID) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if _, err := s.repo.FindOwned(ctx, id, caller.ID()); err != nil {
		return notFoundOr(err, "HR")
	}
	return s.repo.Delete(ctx, id)
}

func (s *hrService) ensureUniqueEmail(ctx context.Context, vendorID uuid.UUID, email string, self uuid.UUID) error {
	exists, err := s.repo.ExistsByEmail(ctx, vendorID, email, self)
	if err != nil {
		return err
	}
	if exists {
		return newError(ErrConflict, "An HR with email %s already exists", email)
	}
	return nil
}
