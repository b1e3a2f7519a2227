package service

import (
	"context"
	"testing"
	"time"

	"uhs-recruit/internal/model"
	"uhs-recruit/internal/repository"
	"uhs-recruit/internal/testutil"
	"uhs-recruit/internal/ws"
	"uhs-recruit/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type candidateFixture struct {
	db     *gorm.DB
	svc    CandidateService
	events *fakePublisher
	vendor *Principal
	other  *Principal
	super  *Principal
	hr     *model.Hr
}

func newCandidateFixture(t *testing.T) *candidateFixture {
	db := testutil.NewDB(t)
	events := &fakePublisher{}
	svc := NewCandidateService(repository.NewCandidateRepo(db), repository.NewHrRepo(db), jwt.NewSigner("test-secret", time.Hour), events)

	vendorAdmin := createAdmin(t, db, "vendor@example.com", model.RoleVendor)
	return &candidateFixture{
		db:     db,
		svc:    svc,
		events: events,
		vendor: adminPrincipal(vendorAdmin),
		other:  adminPrincipal(createAdmin(t, db, "other@example.com", model.RoleVendor)),
		super:  adminPrincipal(createAdmin(t, db, "root@example.com", model.RoleSuperAdmin)),
		hr:     createHr(t, db, vendorAdmin, "hr@example.com"),
	}
}

func (f *candidateFixture) add(t *testing.T, caller *Principal, name string) *model.Candidate {
	t.Helper()
	c, err := f.svc.Create(context.Background(), caller, CreateCandidateRequest{Name: name, Phone: "9876543210", Salary: "20000"})
	require.NoError(t, err)
	return c
}

func TestCandidateService_CreateChecksHrOwnership(t *testing.T) {
	f := newCandidateFixture(t)
	ctx := context.Background()

	c, err := f.svc.Create(ctx, f.vendor, CreateCandidateRequest{Name: "Asha", Phone: "9876543210", AddedByHrID: &f.hr.ID, Skills: []string{"sales", " "}})
	require.NoError(t, err)
	assert.Equal(t, model.StatusRecentlyApplied, c.Status)
	assert.Equal(t, f.vendor.ID(), *c.VendorID)
	assert.Equal(t, []string{"sales"}, []string(c.Skills))

	_, err = f.svc.Create(ctx, f.other, CreateCandidateRequest{Name: "Ravi", Phone: "9876543210", AddedByHrID: &f.hr.ID})
	assert.ErrorIs(t, err, ErrNotFound)

	viaSuper, err := f.svc.Create(ctx, f.super, CreateCandidateRequest{Name: "Meera", Phone: "9876543210", AddedByHrID: &f.hr.ID})
	require.NoError(t, err)
	assert.Equal(t, f.vendor.ID(), *viaSuper.VendorID)
}

func TestCandidateService_ListIsTenantScoped(t *testing.T) {
	f := newCandidateFixture(t)
	ctx := context.Background()
	f.add(t, f.vendor, "Asha")
	f.add(t, f.vendor, "Ravi")
	f.add(t, f.other, "Meera")

	page, err := f.svc.List(ctx, f.vendor, ListCandidatesQuery{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Data, 1)

	page, err = f.svc.List(ctx, f.super, ListCandidatesQuery{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, maxPageSize, page.Limit)
}

func TestCandidateService_UpdateStatusPublishesEvent(t *testing.T) {
	f := newCandidateFixture(t)
	ctx := context.Background()
	c := f.add(t, f.vendor, "Asha")

	_, err := f.svc.UpdateStatus(ctx, f.other, c.ID, "joined")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.events.events)

	updated, err := f.svc.UpdateStatus(ctx, f.vendor, c.ID, "joined")
	require.NoError(t, err)
	assert.Equal(t, "joined", updated.Status)
	require.Len(t, f.events.events, 1)
	assert.Equal(t, ws.EventCandidateStatusUpdate, f.events.events[0].Type)

	_, err = f.svc.UpdateStatus(ctx, f.vendor, c.ID, " ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCandidateService_BulkOperations(t *testing.T) {
	f := newCandidateFixture(t)
	ctx := context.Background()
	a := f.add(t, f.vendor, "Asha")
	b := f.add(t, f.vendor, "Ravi")
	foreign := f.add(t, f.other, "Meera")
	ids := []uuid.UUID{a.ID, b.ID, foreign.ID}

	_, err := f.svc.BulkUpdateStatus(ctx, f.vendor, BulkStatusRequest{Status: "screening"})
	assert.ErrorIs(t, err, ErrValidation)

	n, err := f.svc.BulkUpdateStatus(ctx, f.vendor, BulkStatusRequest{IDs: ids, Status: "screening"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = f.svc.BulkUpdateInterviewDate(ctx, f.vendor, BulkDateRequest{IDs: ids, InterviewDate: "14/03/2025"})
	assert.ErrorIs(t, err, ErrValidation)

	n, err = f.svc.BulkUpdateInterviewDate(ctx, f.vendor, BulkDateRequest{IDs: ids, InterviewDate: "2025-03-14"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	snaps, err := f.svc.Snapshots(ctx, f.vendor, ids)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	for _, s := range snaps {
		assert.Equal(t, "screening", s.Status)
		require.NotNil(t, s.InterviewDate)
		assert.Equal(t, "2025-03-14", *s.InterviewDate)
	}

	_, err = f.svc.Snapshots(ctx, f.vendor, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCandidateService_CVLink(t *testing.T) {
	f := newCandidateFixture(t)
	ctx := context.Background()
	c := f.add(t, f.vendor, "Asha")

	_, err := f.svc.CreateCVLink(ctx, f.other, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	link, err := f.svc.CreateCVLink(ctx, f.vendor, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "/api/cv/"+link.Token, link.URL)

	cv, err := f.svc.ResolveCVLink(ctx, link.Token)
	require.NoError(t, err)
	assert.Equal(t, "Asha", cv.Name)

	_, err = f.svc.ResolveCVLink(ctx, link.Token+"x")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
