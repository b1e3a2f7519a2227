package repository

import (
	"context"

	"uhs-recruit/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HrRepository interface {
	FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.Hr, error)
	// FindOwned returns ErrRecordNotFound when the HR belongs to another vendor.
	FindOwned(ctx context.Context, id, vendorID uuid.UUID) (*model.Hr, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Hr, error)
	ExistsByEmail(ctx context.Context, vendorID uuid.UUID, email string, exceptID uuid.UUID) (bool, error)
	Create(ctx context.Context, hr *model.Hr) error
	Update(ctx context.Context, hr *model.Hr) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type hrRepo struct {
	db *gorm.DB
}

func NewHrRepo(db *gorm.DB) HrRepository {
	return &hrRepo{db}
}

func (r *hrRepo) FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.Hr, error) {
	var hrs []model.Hr
	err := r.db.WithContext(ctx).Where("vendor_id = ?", vendorID).Order("created_at ASC").Find(&hrs).Error
	if err != nil {
		return nil, err
	}
	return hrs, nil
}

func (r *hrRepo) FindOwned(ctx context.Context, id, vendorID uuid.UUID) (*model.Hr, error) {
	var hr model.Hr
	if err := r.db.WithContext(ctx).Where("id = ? AND vendor_id = ?", id, vendorID).First(&hr).Error; err != nil {
		return nil, err
	}
	return &hr, nil
}

func (r *hrRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Hr, error) {
	var hr model.Hr
	if err := r.db.WithContext(ctx).First(&hr, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &hr, nil
}

func (r *hrRepo) ExistsByEmail(ctx context.Context, vendorID uuid.UUID, email string, exceptID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Hr{}).
		Where("vendor_id = ? AND email = ? AND id <> ?", vendorID, email, exceptID).
		Count(&n).Error
	return n > 0, err
}

func (r *hrRepo) Create(ctx context.Context, hr *model.Hr) error {
	return r.db.WithContext(ctx).Create(hr).Error
}

func (r *hrRepo) Update(ctx context.Context, hr *model.Hr) error {
	return r.db.WithContext(ctx).Save(hr).Error
}

func (r *hrRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Hr{}, "id = ?", id).Error
}

func (r *hrRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Hr{}).Count(&n).Error
	return n, err
}
