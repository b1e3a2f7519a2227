package repository

import (
	"context"
	"time"

	"uhs-recruit/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MenuPermissionRepository stores explicit menu overrides. Keys without a row are allowed.
type MenuPermissionRepository interface {
	AdminOverrides(ctx context.Context, adminUserID uuid.UUID) (map[string]bool, error)
	UpsertAdmin(ctx context.Context, adminUserID uuid.UUID, perms map[string]bool) error
	HrOverrides(ctx context.Context, hrID uuid.UUID) (map[string]bool, error)
	UpsertHr(ctx context.Context, hrID uuid.UUID, perms map[string]bool) error
}

type menuPermissionRepo struct {
	db *gorm.DB
}

func NewMenuPermissionRepo(db *gorm.DB) MenuPermissionRepository {
	return &menuPermissionRepo{db}
}

func (r *menuPermissionRepo) AdminOverrides(ctx context.Context, adminUserID uuid.UUID) (map[string]bool, error) {
	var rows []model.AdminMenuPermission
	if err := r.db.WithContext(ctx).Where("admin_user_id = ?", adminUserID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(rows))
	for _, row := range rows {
		out[row.MenuKey] = row.Allowed
	}
	return out, nil
}

// UpsertAdmin writes one row per key. Each statement stands alone; a failure leaves earlier keys applied.
func (r *menuPermissionRepo) UpsertAdmin(ctx context.Context, adminUserID uuid.UUID, perms map[string]bool) error {
	for key, allowed := range perms {
		row := model.AdminMenuPermission{AdminUserID: adminUserID, MenuKey: key, Allowed: allowed}
		err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "admin_user_id"}, {Name: "menu_key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"allowed":    allowed,
				"updated_at": time.Now(),
			}),
		}).Create(&row).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *menuPermissionRepo) HrOverrides(ctx context.Context, hrID uuid.UUID) (map[string]bool, error) {
	var rows []model.HrMenuPermission
	if err := r.db.WithContext(ctx).Where("hr_id = ?", hrID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(rows))
	for _, row := range rows {
		out[row.MenuKey] = row.Allowed
	}
	return out, nil
}

func (r *menuPermissionRepo) UpsertHr(ctx context.Context, hrID uuid.UUID, perms map[string]bool) error {
	for key, allowed := range perms {
		row := model.HrMenuPermission{HrID: hrID, MenuKey: key, Allowed: allowed}
		err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "hr_id"}, {Name: "menu_key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"allowed":    allowed,
				"updated_at": time.Now(),
			}),
		}).Create(&row).Error
		if err != nil {
			return err
		}
	}
	return nil
}
