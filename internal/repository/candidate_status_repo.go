package repository

import (
	"context"

	"uhs-recruit/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CandidateStatusRepository interface {
	FindAll(ctx context.Context) ([]model.CandidateStatus, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.CandidateStatus, error)
	FindByValue(ctx context.Context, value string) (*model.CandidateStatus, error)
	MaxSortOrder(ctx context.Context) (int, error)
	Create(ctx context.Context, status *model.CandidateStatus) error
	Update(ctx context.Context, status *model.CandidateStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	SeedDefaults(ctx context.Context) error
}

type candidateStatusRepo struct {
	db *gorm.DB
}

func NewCandidateStatusRepo(db *gorm.DB) CandidateStatusRepository {
	return &candidateStatusRepo{db}
}

func (r *candidateStatusRepo) FindAll(ctx context.Context) ([]model.CandidateStatus, error) {
	var statuses []model.CandidateStatus
	if err := r.db.WithContext(ctx).Order("sort_order ASC").Order("label ASC").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *candidateStatusRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CandidateStatus, error) {
	var status model.CandidateStatus
	if err := r.db.WithContext(ctx).First(&status, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *candidateStatusRepo) FindByValue(ctx context.Context, value string) (*model.CandidateStatus, error) {
	var status model.CandidateStatus
	if err := r.db.WithContext(ctx).Where("value = ?", value).First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// MaxSortOrder returns 0 for an empty registry.
func (r *candidateStatusRepo) MaxSortOrder(ctx context.Context) (int, error) {
	var max int
	err := r.db.WithContext(ctx).Model(&model.CandidateStatus{}).
		Select("COALESCE(MAX(sort_order), 0)").Scan(&max).Error
	return max, err
}

func (r *candidateStatusRepo) Create(ctx context.Context, status *model.CandidateStatus) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *candidateStatusRepo) Update(ctx context.Context, status *model.CandidateStatus) error {
	return r.db.WithContext(ctx).Save(status).Error
}

func (r *candidateStatusRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.CandidateStatus{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SeedDefaults fills an empty registry with the default pipeline.
func (r *candidateStatusRepo) SeedDefaults(ctx context.Context) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.CandidateStatus{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	statuses := make([]model.CandidateStatus, len(model.DefaultCandidateStatuses))
	copy(statuses, model.DefaultCandidateStatuses)
	return r.db.WithContext(ctx).Create(&statuses).Error
}
