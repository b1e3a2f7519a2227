package service

import (
	"context"
	"errors"
	"strings"

	"uhs-recruit/internal/model"
	"uhs-recruit/internal/repository"
	"uhs-recruit/pkg/config"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ApplicationRequest struct {
	FullName    string     `json:"fullName"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	Position    string     `json:"position"`
	Experience  string     `json:"experience"`
	Salary      string     `json:"salary"`
	Location    string     `json:"location"`
	ResumeURL   string     `json:"resumeUrl"`
	Attachments []string   `json:"attachments"`
	Skills      []string   `json:"skills"`
	VendorID    *uuid.UUID `json:"vendorId"`
}

type ApplicantAccount struct {
	Email   string `json:"email"`
	Created bool   `json:"created"`
}

type ApplicationResult struct {
	Candidate *model.Candidate `json:"candidate"`
	Account   ApplicantAccount `json:"account"`
}

// ApplicationService takes public job applications and provisions applicant logins.
type ApplicationService interface {
	Apply(ctx context.Context, req ApplicationRequest) (*ApplicationResult, error)
}

type applicationService struct {
	candidates repository.CandidateRepository
	users      repository.UserRepository
	admins     repository.AdminUserRepository
	cfg        config.ApplyConfig
}

func NewApplicationService(candidates repository.CandidateRepository, users repository.UserRepository, admins repository.AdminUserRepository, cfg config.ApplyConfig) ApplicationService {
	return &applicationService{candidates: candidates, users: users, admins: admins, cfg: cfg}
}

// NormalizePhone keeps the digits of raw and, for longer numbers, the last ten of them.
func NormalizePhone(raw string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits
}

func (s *applicationService) Apply(ctx context.Context, req ApplicationRequest) (*ApplicationResult, error) {
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return nil, invalid("Please enter your full name")
	}
	phone := NormalizePhone(req.Phone)
	if len(phone) < 10 {
		return nil, invalid("Please enter a valid phone number")
	}

	if req.VendorID != nil {
		if _, err := s.admins.FindByID(ctx, *req.VendorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, invalid("Unknown vendor")
			}
			return nil, err
		}
	}

	user, created, err := s.ensureAccount(ctx, name, phone)
	if err != nil {
		return nil, err
	}

	c := &model.Candidate{
		Name:        name,
		Phone:       phone,
		Email:       normalizeEmail(req.Email),
		Position:    strings.TrimSpace(req.Position),
		Experience:  strings.TrimSpace(req.Experience),
		Location:    strings.TrimSpace(req.Location),
		Salary:      strings.TrimSpace(req.Salary),
		Status:      model.StatusRecentlyApplied,
		Source:      model.SourceWebsite,
		VendorID:    req.VendorID,
		UserID:      &user.ID,
		ResumeURL:   strings.TrimSpace(req.ResumeURL),
		Attachments: jsonSlice(req.Attachments),
		Skills:      jsonSlice(req.Skills),
		SharedWith:  datatypes.JSONSlice[string]{},
	}
	if err := s.candidates.Create(ctx, c); err != nil {
		return nil, err
	}

	return &ApplicationResult{
		Candidate: c,
		Account:   ApplicantAccount{Email: user.Email, Created: created},
	}, nil
}

// ensureAccount returns the applicant login for phone, creating it with the default password.
func (s *applicationService) ensureAccount(ctx context.Context, name, phone string) (*model.User, bool, error) {
	email := phone + "@" + s.cfg.EmailDomain

	user, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user = &model.User{Email: email, Name: name, Phone: phone}
	if err := user.SetPassword(s.cfg.DefaultPassword); err != nil {
		return nil, false, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		// a concurrent application for the same phone won the insert
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, findErr := s.users.FindByEmail(ctx, email)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return user, true, nil
}
