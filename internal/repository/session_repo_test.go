package repository

import (
	"context"
	"testing"
	"time"

	"uhs-recruit/internal/model"
	"uhs-recruit/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSessionRepo_ReplaceAdminSessionKeepsOneRow(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	admins := NewAdminUserRepo(db)
	sessions := NewSessionRepo(db)

	admin := &model.AdminUser{Email: "vendor@example.com", Password: "x", Role: string(model.RoleVendor)}
	require.NoError(t, admins.Create(ctx, admin))

	exp := time.Now().Add(time.Hour)
	require.NoError(t, sessions.ReplaceAdminSession(ctx, &model.AdminSession{Token: "first", AdminUserID: admin.ID, ExpiresAt: exp}))
	require.NoError(t, sessions.ReplaceAdminSession(ctx, &model.AdminSession{Token: "second", AdminUserID: admin.ID, ExpiresAt: exp}))

	n, err := sessions.CountAdminSessions(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = sessions.FindActiveAdminSession(ctx, "first", time.Now())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := sessions.FindActiveAdminSession(ctx, "second", time.Now())
	require.NoError(t, err)
	require.NotNil(t, got.AdminUser)
	assert.Equal(t, admin.Email, got.AdminUser.Email)
}

func TestSessionRepo_ExpiredSessionsAreInvisible(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)
	sessions := NewSessionRepo(db)

	user := &model.User{Email: "seeker@example.com", Password: "x"}
	require.NoError(t, users.Create(ctx, user))

	now := time.Now()
	require.NoError(t, sessions.CreateUserSession(ctx, &model.UserSession{Token: "live", UserID: user.ID, ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, sessions.CreateUserSession(ctx, &model.UserSession{Token: "dead", UserID: user.ID, ExpiresAt: now.Add(-time.Minute)}))

	got, err := sessions.FindActiveUserSession(ctx, "live", now)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.User.ID)

	_, err = sessions.FindActiveUserSession(ctx, "dead", now)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
