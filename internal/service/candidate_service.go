package service

import (
	"context"
	"strings"
	"time"

	"uhs-recruit/internal/model"
	"uhs-recruit/internal/repository"
	"uhs-recruit/internal/ws"
	"uhs-recruit/pkg/jwt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	dateLayout      = "2006-01-02"
)

// EventPublisher fans out dashboard events. *ws.Hub satisfies it.
type EventPublisher interface {
	Publish(eventType string, payload interface{})
}

// CVLinkSigner mints and checks CV link tokens. *jwt.Signer satisfies it.
type CVLinkSigner interface {
	Generate(candidateID, sharedBy uuid.UUID) (string, time.Time, error)
	Parse(token string) (*jwt.CVClaims, error)
}

type ListCandidatesQuery struct {
	Page   int
	Limit  int
	Status string
	Search string
}

type CandidatePage struct {
	Data       []model.Candidate `json:"data"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"totalPages"`
}

type CreateCandidateRequest struct {
	Name        string     `json:"name" validate:"required"`
	Phone       string     `json:"phone" validate:"required"`
	Email       string     `json:"email" validate:"omitempty,email"`
	Position    string     `json:"position"`
	Experience  string     `json:"experience"`
	Location    string     `json:"location"`
	Salary      string     `json:"salary"`
	Status      string     `json:"status"`
	AddedByHrID *uuid.UUID `json:"addedByHrId"`
	ResumeURL   string     `json:"resumeUrl"`
	Attachments []string   `json:"attachments"`
	Skills      []string   `json:"skills"`
	Notes       string     `json:"notes"`
}

type BulkStatusRequest struct {
	IDs    []uuid.UUID `json:"ids"`
	Status string      `json:"status"`
}

type BulkDateRequest struct {
	IDs           []uuid.UUID `json:"ids"`
	InterviewDate string      `json:"interviewDate"`
}

// CandidateSnapshot is what the bulk GET endpoints report per candidate.
type CandidateSnapshot struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	InterviewDate *string   `json:"interviewDate"`
}

type CVLink struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SharedCV is the public view behind a CV link.
type SharedCV struct {
	Name        string    `json:"name"`
	Position    string    `json:"position"`
	Experience  string    `json:"experience"`
	Location    string    `json:"location"`
	Skills      []string  `json:"skills"`
	ResumeURL   string    `json:"resumeUrl"`
	Attachments []string  `json:"attachments"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type CandidateService interface {
	List(ctx context.Context, caller *Principal, q ListCandidatesQuery) (*CandidatePage, error)
	Get(ctx context.Context, caller *Principal, id uuid.UUID) (*model.Candidate, error)
	Create(ctx context.Context, caller *Principal, req CreateCandidateRequest) (*model.Candidate, error)
	UpdateStatus(ctx context.Context, caller *Principal, id uuid.UUID, status string) (*model.Candidate, error)
	BulkUpdateStatus(ctx context.Context, caller *Principal, req BulkStatusRequest) (int64, error)
	BulkUpdateInterviewDate(ctx context.Context, caller *Principal, req BulkDateRequest) (int64, error)
	Snapshots(ctx context.Context, caller *Principal, ids []uuid.UUID) ([]CandidateSnapshot, error)
	CreateCVLink(ctx context.Context, caller *Principal, id uuid.UUID) (*CVLink, error)
	ResolveCVLink(ctx context.Context, token string) (*SharedCV, error)
}

type candidateService struct {
	candidates repository.CandidateRepository
	hrs        repository.HrRepository
	signer     CVLinkSigner
	events     EventPublisher
}

func NewCandidateService(candidates repository.CandidateRepository, hrs repository.HrRepository, signer CVLinkSigner, events EventPublisher) CandidateService {
	return &candidateService{candidates: candidates, hrs: hrs, signer: signer, events: events}
}

func (s *candidateService) List(ctx context.Context, caller *Principal, q ListCandidatesQuery) (*CandidatePage, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	rows, total, err := s.candidates.List(ctx, repository.CandidateFilter{
		VendorID: caller.VendorScope(),
		Status:   strings.TrimSpace(q.Status),
		Search:   q.Search,
		Offset:   (page - 1) * limit,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	return &CandidatePage{
		Data:       rows,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

func (s *candidateService) Get(ctx context.Context, caller *Principal, id uuid.UUID) (*model.Candidate, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	c, err := s.candidates.FindVisible(ctx, id, caller.VendorScope())
	if err != nil {
		return nil, notFoundOr(err, "Candidate")
	}
	return c, nil
}

func (s *candidateService) Create(ctx context.Context, caller *Principal, req CreateCandidateRequest) (*model.Candidate, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	vendorID := caller.ID()
	if req.AddedByHrID != nil {
		var hr *model.Hr
		var err error
		if caller.IsSuperAdmin() {
			hr, err = s.hrs.FindByID(ctx, *req.AddedByHrID)
		} else {
			hr, err = s.hrs.FindOwned(ctx, *req.AddedByHrID, caller.ID())
		}
		if err != nil {
			return nil, notFoundOr(err, "HR")
		}
		vendorID = hr.VendorID
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = model.StatusRecentlyApplied
	}

	c := &model.Candidate{
		Name:        strings.TrimSpace(req.Name),
		Phone:       req.Phone,
		Email:       normalizeEmail(req.Email),
		Position:    req.Position,
		Experience:  req.Experience,
		Location:    req.Location,
		Salary:      req.Salary,
		Status:      status,
		Source:      model.SourceHr,
		Notes:       req.Notes,
		VendorID:    &vendorID,
		AddedByHrID: req.AddedByHrID,
		ResumeURL:   req.ResumeURL,
		Attachments: jsonSlice(req.Attachments),
		Skills:      jsonSlice(req.Skills),
		SharedWith:  datatypes.JSONSlice[string]{},
	}
	if err := s.candidates.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *candidateService) UpdateStatus(ctx context.Context, caller *Principal, id uuid.UUID, status string) (*model.Candidate, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, invalid("Status is required")
	}

	n, err := s.candidates.UpdateStatus(ctx, []uuid.UUID{id}, caller.VendorScope(), status)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, newError(ErrNotFound, "Candidate not found")
	}

	c, err := s.candidates.FindVisible(ctx, id, caller.VendorScope())
	if err != nil {
		return nil, notFoundOr(err, "Candidate")
	}
	s.publishStatus([]uuid.UUID{id}, status, caller)
	return c, nil
}

func (s *candidateService) BulkUpdateStatus(ctx context.Context, caller *Principal, req BulkStatusRequest) (int64, error) {
	if err := requireAdmin(caller); err != nil {
		return 0, err
	}
	if len(req.IDs) == 0 {
		return 0, invalid("ids must not be empty")
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		return 0, invalid("Status is required")
	}

	n, err := s.candidates.UpdateStatus(ctx, req.IDs, caller.VendorScope(), status)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.publishStatus(req.IDs, status, caller)
	}
	return n, nil
}

func (s *candidateService) BulkUpdateInterviewDate(ctx context.Context, caller *Principal, req BulkDateRequest) (int64, error) {
	if err := requireAdmin(caller); err != nil {
		return 0, err
	}
	if len(req.IDs) == 0 {
		return 0, invalid("ids must not be empty")
	}
	day, err := time.Parse(dateLayout, strings.TrimSpace(req.InterviewDate))
	if err != nil {
		return 0, invalid("interviewDate must be YYYY-MM-DD")
	}
	return s.candidates.UpdateInterviewDate(ctx, req.IDs, caller.VendorScope(), &day)
}

func (s *candidateService) Snapshots(ctx context.Context, caller *Principal, ids []uuid.UUID) ([]CandidateSnapshot, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, invalid("ids must not be empty")
	}
	rows, err := s.candidates.FindVisibleByIDs(ctx, ids, caller.VendorScope())
	if err != nil {
		return nil, err
	}
	out := make([]CandidateSnapshot, len(rows))
	for i, c := range rows {
		out[i] = CandidateSnapshot{ID: c.ID, Name: c.Name, Status: c.Status}
		if c.InterviewDate != nil {
			d := c.InterviewDate.Format(dateLayout)
			out[i].InterviewDate = &d
		}
	}
	return out, nil
}

func (s *candidateService) CreateCVLink(ctx context.Context, caller *Principal, id uuid.UUID) (*CVLink, error) {
	c, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	token, expires, err := s.signer.Generate(c.ID, caller.ID())
	if err != nil {
		return nil, err
	}
	return &CVLink{Token: token, URL: "/api/cv/" + token, ExpiresAt: expires}, nil
}

func (s *candidateService) ResolveCVLink(ctx context.Context, token string) (*SharedCV, error) {
	claims, err := s.signer.Parse(token)
	if err != nil {
		return nil, newError(ErrUnauthorized, "CV link is invalid or has expired")
	}
	c, err := s.candidates.FindVisible(ctx, claims.CandidateID, nil)
	if err != nil {
		return nil, notFoundOr(err, "Candidate")
	}

	cv := &SharedCV{
		Name:        c.Name,
		Position:    c.Position,
		Experience:  c.Experience,
		Location:    c.Location,
		Skills:      c.Skills,
		ResumeURL:   c.ResumeURL,
		Attachments: c.Attachments,
	}
	if claims.ExpiresAt != nil {
		cv.ExpiresAt = claims.ExpiresAt.Time
	}
	return cv, nil
}

func (s *candidateService) publishStatus(ids []uuid.UUID, status string, caller *Principal) {
	if s.events == nil {
		return
	}
	s.events.Publish(ws.EventCandidateStatusUpdate, map[string]interface{}{
		"ids":       ids,
		"status":    status,
		"updatedBy": caller.ID(),
	})
}

func jsonSlice(in []string) datatypes.JSONSlice[string] {
	out := datatypes.JSONSlice[string]{}
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
