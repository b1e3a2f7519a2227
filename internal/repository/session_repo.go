package repository

import (
	"context"
	"time"

	"uhs-recruit/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionRepository stores the two disjoint session tables.
type SessionRepository interface {
	// ReplaceAdminSession deletes every session of the admin and then inserts s.
	// The two statements are not wrapped in a transaction.
	ReplaceAdminSession(ctx context.Context, s *model.AdminSession) error
	DeleteAdminSessions(ctx context.Context, adminUserID uuid.UUID) error
	CountAdminSessions(ctx context.Context, adminUserID uuid.UUID) (int64, error)
	FindActiveAdminSession(ctx context.Context, token string, now time.Time) (*model.AdminSession, error)

	CreateUserSession(ctx context.Context, s *model.UserSession) error
	FindActiveUserSession(ctx context.Context, token string, now time.Time) (*model.UserSession, error)
}

type sessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db}
}

func (r *sessionRepo) ReplaceAdminSession(ctx context.Context, s *model.AdminSession) error {
	if err := r.DeleteAdminSessions(ctx, s.AdminUserID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Omit("AdminUser").Create(s).Error
}

func (r *sessionRepo) DeleteAdminSessions(ctx context.Context, adminUserID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("admin_user_id = ?", adminUserID).Delete(&model.AdminSession{}).Error
}

func (r *sessionRepo) CountAdminSessions(ctx context.Context, adminUserID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.AdminSession{}).Where("admin_user_id = ?", adminUserID).Count(&n).Error
	return n, err
}

func (r *sessionRepo) FindActiveAdminSession(ctx context.Context, token string, now time.Time) (*model.AdminSession, error) {
	var s model.AdminSession
	err := r.db.WithContext(ctx).Preload("AdminUser").
		Where("token = ? AND expires_at > ?", token, now).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) CreateUserSession(ctx context.Context, s *model.UserSession) error {
	return r.db.WithContext(ctx).Omit("User").Create(s).Error
}

func (r *sessionRepo) FindActiveUserSession(ctx context.Context, token string, now time.Time) (*model.UserSession, error) {
	var s model.UserSession
	err := r.db.WithContext(ctx).Preload("User").
		Where("token = ? AND expires_at > ?", token, now).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}
