package repository

import (
	"context"
	"strings"
	"time"

	"uhs-recruit/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CandidateFilter narrows candidate listings. A nil VendorID means every tenant.
type CandidateFilter struct {
	VendorID *uuid.UUID
	Status   string
	Search   string
	Offset   int
	Limit    int
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// DailyCount is one day of candidate inflow, split by source.
type DailyCount struct {
	Date    string `json:"date"`
	Total   int64  `json:"total"`
	Website int64  `json:"website"`
	Hr      int64  `json:"hr"`
}

type CandidateRepository interface {
	Create(ctx context.Context, candidate *model.Candidate) error
	List(ctx context.Context, f CandidateFilter) ([]model.Candidate, int64, error)
	FindVisible(ctx context.Context, id uuid.UUID, vendorID *uuid.UUID) (*model.Candidate, error)
	FindVisibleByIDs(ctx context.Context, ids []uuid.UUID, vendorID *uuid.UUID) ([]model.Candidate, error)
	FindByHrIDs(ctx context.Context, hrIDs []uuid.UUID) ([]model.Candidate, error)
	UpdateStatus(ctx context.Context, ids []uuid.UUID, vendorID *uuid.UUID, status string) (int64, error)
	UpdateInterviewDate(ctx context.Context, ids []uuid.UUID, vendorID *uuid.UUID, date *time.Time) (int64, error)
	Count(ctx context.Context, vendorID *uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, vendorID *uuid.UUID) ([]StatusCount, error)
	DailyInflow(ctx context.Context, vendorID *uuid.UUID, start, end time.Time) ([]DailyCount, error)
}

type candidateRepo struct {
	db *gorm.DB
}

func NewCandidateRepo(db *gorm.DB) CandidateRepository {
	return &candidateRepo{db}
}

func visibleTo(vendorID *uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if vendorID == nil {
			return db
		}
		return db.Where("vendor_id = ?", *vendorID)
	}
}

func (r *candidateRepo) Create(ctx context.Context, candidate *model.Candidate) error {
	return r.db.WithContext(ctx).Omit("AddedByHr").Create(candidate).Error
}

func (r *candidateRepo) List(ctx context.Context, f CandidateFilter) ([]model.Candidate, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Candidate{}).Scopes(visibleTo(f.VendorID))
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ? OR LOWER(position) LIKE ?",
			like, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var candidates []model.Candidate
	err := q.Preload("AddedByHr").Order("created_at DESC").Offset(f.Offset).Limit(f.Limit).Find(&candidates).Error
	if err != nil {
		return nil, 0, err
	}
	return candidates, total, nil
}

func (r *candidateRepo) FindVisible(ctx context.Context, id uuid.UUID, vendorID *uuid.UUID) (*model.Candidate, error) {
	var c model.Candidate
	err := r.db.WithContext(ctx).Scopes(visibleTo(vendorID)).Preload("AddedByHr").First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *candidateRepo) FindVisibleByIDs(ctx context.Context, ids []uuid.UUID, vendorID *uuid.UUID) ([]model.Candidate, error) {
	var candidates []model.Candidate
	err := r.db.WithContext(ctx).Scopes(visibleTo(vendorID)).Where("id IN ?", ids).Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

func (r *candidateRepo) FindByHrIDs(ctx context.Context, hrIDs []uuid.UUID) ([]model.Candidate, error) {
	var candidates []model.Candidate
	if len(hrIDs) == 0 {
		return candidates, nil
	}
	err := r.db.WithContext(ctx).Select("id", "added_by_hr_id", "salary").
		Where("added_by_hr_id IN ?", hrIDs).Order("created_at ASC").Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// UpdateStatus runs a single UPDATE over the visible subset of ids.
func (r *candidateRepo) UpdateStatus(ctx context.Context, ids []uuid.UUID, vendorID *uuid.UUID, status string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Candidate{}).Scopes(visibleTo(vendorID)).
		Where("id IN ?", ids).Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *candidateRepo) UpdateInterviewDate(ctx context.Context, ids []uuid.UUID, vendorID *uuid.UUID, date *time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Candidate{}).Scopes(visibleTo(vendorID)).
		Where("id IN ?", ids).Update("interview_date", date)
	return res.RowsAffected, res.Error
}

func (r *candidateRepo) Count(ctx context.Context, vendorID *uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Candidate{}).Scopes(visibleTo(vendorID)).Count(&n).Error
	return n, err
}

func (r *candidateRepo) CountByStatus(ctx context.Context, vendorID *uuid.UUID) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).Model(&model.Candidate{}).Scopes(visibleTo(vendorID)).
		Select("status, COUNT(*) AS count").Group("status").Order("status ASC").
		Scan(&rows).Error
	return rows, err
}

// DailyInflow aggregates candidates created in [start, end] per calendar day, oldest first.
func (r *candidateRepo) DailyInflow(ctx context.Context, vendorID *uuid.UUID, start, end time.Time) ([]DailyCount, error) {
	var rows []DailyCount
	err := r.db.WithContext(ctx).Model(&model.Candidate{}).Scopes(visibleTo(vendorID)).
		Select(`
			CAST(DATE(created_at) AS TEXT) AS date,
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN source = ? THEN 1 ELSE 0 END), 0) AS website,
			COALESCE(SUM(CASE WHEN source = ? THEN 1 ELSE 0 END), 0) AS hr
		`, model.SourceWebsite, model.SourceHr).
		Where("created_at BETWEEN ? AND ?", start, end).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}
