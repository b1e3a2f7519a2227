package service

import (
	"context"
	"errors"
	"strings"

	"uhs-recruit/internal/model"
	"uhs-recruit/internal/repository"

	"gorm.io/gorm"
)

type CreateVendorRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

type PlatformStats struct {
	Vendors            int64                    `json:"vendors"`
	Hrs                int64                    `json:"hrs"`
	Candidates         int64                    `json:"candidates"`
	CandidatesByStatus []repository.StatusCount `json:"candidatesByStatus"`
	// RevenuePaise sums captured payments in the smallest currency unit.
	RevenuePaise int64 `json:"revenuePaise"`
}

// VendorService covers the cross-tenant super admin operations.
type VendorService interface {
	CreateVendor(ctx context.Context, caller *Principal, req CreateVendorRequest) (*model.AdminUser, error)
	ListVendors(ctx context.Context, caller *Principal) ([]model.AdminUser, error)
	Stats(ctx context.Context, caller *Principal) (*PlatformStats, error)
	// EnsureSuperAdmin creates the bootstrap super admin when email is not taken.
	EnsureSuperAdmin(ctx context.Context, email, password string) (bool, error)
}

type vendorService struct {
	admins     repository.AdminUserRepository
	hrs        repository.HrRepository
	candidates repository.CandidateRepository
	payments   repository.PaymentRepository
}

func NewVendorService(admins repository.AdminUserRepository, hrs repository.HrRepository, candidates repository.CandidateRepository, payments repository.PaymentRepository) VendorService {
	return &vendorService{admins: admins, hrs: hrs, candidates: candidates, payments: payments}
}

func (s *vendorService) CreateVendor(ctx context.Context, caller *Principal, req CreateVendorRequest) (*model.AdminUser, error) {
	if err := Authorize(caller, model.RoleSuperAdmin); err != nil {
		return nil, err
	}
	return s.createAdmin(ctx, req.Email, req.Password, req.Name, model.RoleVendor)
}

func (s *vendorService) ListVendors(ctx context.Context, caller *Principal) ([]model.AdminUser, error) {
	if err := Authorize(caller, model.RoleSuperAdmin); err != nil {
		return nil, err
	}
	return s.admins.ListVendors(ctx)
}

func (s *vendorService) Stats(ctx context.Context, caller *Principal) (*PlatformStats, error) {
	if err := Authorize(caller, model.RoleSuperAdmin); err != nil {
		return nil, err
	}

	var stats PlatformStats
	var err error
	if stats.Vendors, err = s.admins.CountVendors(ctx); err != nil {
		return nil, err
	}
	if stats.Hrs, err = s.hrs.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Candidates, err = s.candidates.Count(ctx, nil); err != nil {
		return nil, err
	}
	if stats.CandidatesByStatus, err = s.candidates.CountByStatus(ctx, nil); err != nil {
		return nil, err
	}
	if stats.RevenuePaise, err = s.payments.SumPaid(ctx); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *vendorService) EnsureSuperAdmin(ctx context.Context, email, password string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}
	if _, err := s.admins.FindByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if _, err := s.createAdmin(ctx, email, password, "Super Admin", model.RoleSuperAdmin); err != nil {
		return false, err
	}
	return true, nil
}

func (s *vendorService) createAdmin(ctx context.Context, email, password, name string, role model.Role) (*model.AdminUser, error) {
	// admin accounts never carry the end-user role
	if !role.Valid() || role == model.RoleUser {
		return nil, invalid("Unsupported admin role %q", role)
	}
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalid("Email and password are required")
	}
	if _, err := s.admins.FindByEmail(ctx, email); err == nil {
		return nil, newError(ErrConflict, "An account with email %s already exists", email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	admin := &model.AdminUser{
		Email:    email,
		Name:     strings.TrimSpace(name),
		Role:     string(role),
		IsActive: true,
	}
	if err := admin.SetPassword(password); err != nil {
		return nil, err
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, conflictOr(err, "An account with email %s already exists", email)
	}
	return admin, nil
}
