package repository

import (
	"context"

	"uhs-recruit/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedPtr constrains PT to a pointer to a vendor-owned lookup row.
type OwnedPtr[T any] interface {
	*T
	model.OwnedRecord
}

// LookupRepository is CRUD over one vendor-owned lookup table. Every query filters on the owner column.
type LookupRepository[T any, PT OwnedPtr[T]] interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]T, error)
	FindOwned(ctx context.Context, id, ownerID uuid.UUID) (PT, error)
	Create(ctx context.Context, row PT) error
	Update(ctx context.Context, row PT) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

type lookupRepo[T any, PT OwnedPtr[T]] struct {
	db          *gorm.DB
	ownerColumn string
}

func NewLookupRepo[T any, PT OwnedPtr[T]](db *gorm.DB) LookupRepository[T, PT] {
	return &lookupRepo[T, PT]{db: db, ownerColumn: PT(new(T)).OwnerColumn()}
}

func NewLocationRepo(db *gorm.DB) LookupRepository[model.CustomLocation, *model.CustomLocation] {
	return NewLookupRepo[model.CustomLocation](db)
}

func NewOutletTypeRepo(db *gorm.DB) LookupRepository[model.OutletType, *model.OutletType] {
	return NewLookupRepo[model.OutletType](db)
}

func NewPositionRepo(db *gorm.DB) LookupRepository[model.VendorPosition, *model.VendorPosition] {
	return NewLookupRepo[model.VendorPosition](db)
}

func (r *lookupRepo[T, PT]) owned(ctx context.Context, ownerID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Where(r.ownerColumn+" = ?", ownerID)
}

func (r *lookupRepo[T, PT]) List(ctx context.Context, ownerID uuid.UUID) ([]T, error) {
	var rows []T
	if err := r.owned(ctx, ownerID).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *lookupRepo[T, PT]) FindOwned(ctx context.Context, id, ownerID uuid.UUID) (PT, error) {
	row := PT(new(T))
	if err := r.owned(ctx, ownerID).First(row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *lookupRepo[T, PT]) Create(ctx context.Context, row PT) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// Update saves a patched row, leaving created_at as stored, and reloads it.
func (r *lookupRepo[T, PT]) Update(ctx context.Context, row PT) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit("created_at").Save(row).Error; err != nil {
		return err
	}
	return db.First(row, "id = ?", row.GetID()).Error
}

func (r *lookupRepo[T, PT]) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	res := r.owned(ctx, ownerID).Delete(PT(new(T)), "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
