package service

import (
	"context"
	"testing"

	"uhs-recruit/internal/model"
	"uhs-recruit/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createAdmin(t *testing.T, db *gorm.DB, email string, role model.Role) *model.AdminUser {
	t.Helper()
	admin := &model.AdminUser{Email: email, Name: email, Role: string(role), IsActive: true}
	require.NoError(t, admin.SetPassword("secret123"))
	require.NoError(t, repository.NewAdminUserRepo(db).Create(context.Background(), admin))
	return admin
}

func adminPrincipal(admin *model.AdminUser) *Principal {
	return &Principal{Kind: PrincipalAdmin, Role: admin.EffectiveRole(), Admin: admin}
}

func createHr(t *testing.T, db *gorm.DB, vendor *model.AdminUser, email string) *model.Hr {
	t.Helper()
	hr := &model.Hr{VendorID: vendor.ID, Name: email, Email: email}
	require.NoError(t, repository.NewHrRepo(db).Create(context.Background(), hr))
	return hr
}

type recordedEvent struct {
	Type    string
	Payload interface{}
}

type fakePublisher struct {
	events []recordedEvent
}

func (f *fakePublisher) Publish(eventType string, payload interface{}) {
	f.events = append(f.events, recordedEvent{Type: eventType, Payload: payload})
}
