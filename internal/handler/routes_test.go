package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"uhs-recruit/internal/model"
	"uhs-recruit/internal/repository"
	"uhs-recruit/internal/service"
	"uhs-recruit/internal/testutil"
	"uhs-recruit/internal/ws"
	"uhs-recruit/pkg/config"
	"uhs-recruit/pkg/jwt"
	"uhs-recruit/pkg/logger"
	"uhs-recruit/pkg/razorpay"
	"uhs-recruit/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	app  *fiber.App
	db   *gorm.DB
	auth service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.NewDB(t)
	log := logger.Nop()

	adminRepo := repository.NewAdminUserRepo(db)
	userRepo := repository.NewUserRepo(db)
	statusRepo := repository.NewCandidateStatusRepo(db)
	hrRepo := repository.NewHrRepo(db)
	candidateRepo := repository.NewCandidateRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)
	require.NoError(t, statusRepo.SeedDefaults(context.Background()))

	authService := service.NewAuthService(adminRepo, userRepo, repository.NewSessionRepo(db), time.Hour)
	vendorService := service.NewVendorService(adminRepo, hrRepo, candidateRepo, paymentRepo)
	candidateService := service.NewCandidateService(candidateRepo, hrRepo, jwt.NewSigner("test-secret", time.Hour), ws.NewHub(log))
	applicationService := service.NewApplicationService(candidateRepo, userRepo, adminRepo, config.ApplyConfig{
		EmailDomain:     "apply.test",
		DefaultPassword: "Welcome@123",
	})

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(log)})
	Register(app, Routes{
		ServiceName: "uhs-recruit-test",
		InternalKey: "internal-key",
		AuthService: authService,
		Hub:         ws.NewHub(log),
		Log:         log,
		Auth:        NewAuthHandler(authService, log),
		Statuses:    NewCandidateStatusHandler(service.NewCandidateStatusService(statusRepo), log),
		Candidates:  NewCandidateHandler(candidateService, applicationService, log),
		Vendor: NewVendorHandler(
			service.NewHrService(hrRepo),
			service.NewIncentiveService(hrRepo, candidateRepo),
			service.NewMenuPermissionService(repository.NewMenuPermissionRepo(db), adminRepo, hrRepo),
			log,
		),
		Billing:     NewBillingHandler(service.NewPaymentService(paymentRepo, razorpay.New(config.RazorpayConfig{})), vendorService, log),
		Uploads:     NewUploadHandler(service.NewUploadService(storage.NewLocal(t.TempDir(), "/uploads"), 1<<20), log),
		Dashboard:   NewDashboardHandler(service.NewDashboardService(candidateRepo, hrRepo), log),
		Locations:   NewLookupHandler(service.NewLookupService(repository.NewLocationRepo(db), "Location"), "Location", log),
		OutletTypes: NewLookupHandler(service.NewLookupService(repository.NewOutletTypeRepo(db), "Outlet type"), "Outlet type", log),
		Positions:   NewLookupHandler(service.NewLookupService(repository.NewPositionRepo(db), "Position"), "Position", log),
	})

	return &testServer{app: app, db: db, auth: authService}
}

// adminToken creates an admin with role and returns a live session token for it.
func (s *testServer) adminToken(t *testing.T, email string, role model.Role) (string, *model.AdminUser) {
	t.Helper()
	admin := &model.AdminUser{Email: email, Name: email, Role: string(role), IsActive: true}
	require.NoError(t, admin.SetPassword("secret123"))
	require.NoError(t, repository.NewAdminUserRepo(s.db).Create(context.Background(), admin))

	token := uuid.NewString()
	_, err := s.auth.CreateAdminSession(context.Background(), service.CreateSessionRequest{
		AdminUserID:  admin.ID,
		SessionToken: token,
		ExpiresAt:    time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	return token, admin
}

func (s *testServer) do(t *testing.T, method, target, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.send(t, req)
}

func (s *testServer) send(t *testing.T, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, 200, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "uhs-recruit-test", body["service"])
}

func TestApplicationProvisionsLoginAccount(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/applications", "", map[string]interface{}{
		"fullName": "Asha Rao",
		"phone":    "+91 98765-43210",
		"position": "Store Manager",
	})
	require.Equal(t, 201, status, body)
	account := body["account"].(map[string]interface{})
	assert.Equal(t, "9876543210@apply.test", account["email"])
	assert.Equal(t, true, account["created"])
	candidate := body["candidate"].(map[string]interface{})
	assert.Equal(t, model.StatusRecentlyApplied, candidate["status"])

	status, body = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "9876543210@apply.test",
		"password": "Welcome@123",
	})
	require.Equal(t, 200, status, body)
	token := body["sessionToken"].(string)

	// applicants are not admins
	status, _ = s.do(t, http.MethodGet, "/api/candidates", token, nil)
	assert.Equal(t, 403, status)
}

func TestApplicationValidationMessages(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/applications", "", map[string]string{"phone": "9876543210"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "Please enter your full name", body["error"])

	status, body = s.do(t, http.MethodPost, "/api/applications", "", map[string]string{"fullName": "Asha", "phone": "12-34"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "Please enter a valid phone number", body["error"])
}

func TestInvalidJSONBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	status, body := s.send(t, req)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Invalid JSON", body["error"])
}

func TestSessionEndpoints(t *testing.T) {
	s := newTestServer(t)
	token, admin := s.adminToken(t, "vendor@example.com", model.RoleVendor)

	status, body := s.do(t, http.MethodGet, "/api/auth/session?token="+token, "", nil)
	require.Equal(t, 200, status, body)
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, "vendor", body["role"])

	status, _ = s.do(t, http.MethodGet, "/api/auth/session", "not-a-session", nil)
	assert.Equal(t, 401, status)

	// POST /auth/session is guarded by the internal key
	payload := map[string]interface{}{
		"adminUserId":  admin.ID,
		"sessionToken": uuid.NewString(),
		"expiresAt":    time.Now().Add(time.Hour).Format(time.RFC3339),
	}
	status, _ = s.do(t, http.MethodPost, "/api/auth/session", "", payload)
	assert.Equal(t, 401, status)

	raw, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/session", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-Key", "internal-key")
	status, body = s.send(t, req)
	require.Equal(t, 200, status, body)
	assert.Equal(t, payload["sessionToken"], body["sessionToken"])

	// the replaced session no longer authenticates
	status, _ = s.do(t, http.MethodGet, "/api/auth/session", token, nil)
	assert.Equal(t, 401, status)
}

func TestCandidateStatusRoutes(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.adminToken(t, "vendor@example.com", model.RoleVendor)

	status, body := s.do(t, http.MethodPost, "/api/candidate-statuses", token, map[string]string{"label": "Offer Sent", "color": "#22c55e"})
	require.Equal(t, 201, status, body)
	created := body["data"].(map[string]interface{})
	assert.Equal(t, "offer-sent", created["value"])

	status, _ = s.do(t, http.MethodPost, "/api/candidate-statuses", token, map[string]string{"label": "Offer Sent"})
	assert.Equal(t, 409, status)

	status, _ = s.do(t, http.MethodPost, "/api/candidate-statuses", token, map[string]string{"label": "Bad", "color": "green"})
	assert.Equal(t, 400, status)

	status, body = s.do(t, http.MethodGet, "/api/candidate-statuses", token, nil)
	require.Equal(t, 200, status)
	assert.Len(t, body["data"], len(model.DefaultCandidateStatuses)+1)

	status, _ = s.do(t, http.MethodDelete, "/api/candidate-statuses/"+uuid.NewString(), token, nil)
	assert.Equal(t, 404, status)
}

func createCandidate(t *testing.T, s *testServer, token string) string {
	t.Helper()
	status, body := s.do(t, http.MethodPost, "/api/vendor/hrs", token, map[string]string{"name": "Priya", "email": "priya@example.com"})
	require.Equal(t, 201, status, body)
	hrID := body["data"].(map[string]interface{})["id"]

	status, body = s.do(t, http.MethodPost, "/api/candidates", token, map[string]interface{}{
		"name":        "Ravi Kumar",
		"phone":       "9123456780",
		"position":    "Cashier",
		"salary":      "3.5L",
		"addedByHrId": hrID,
	})
	require.Equal(t, 201, status, body)
	return body["data"].(map[string]interface{})["id"].(string)
}

func TestBulkCandidateRoutes(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.adminToken(t, "vendor@example.com", model.RoleVendor)
	otherToken, _ := s.adminToken(t, "other@example.com", model.RoleVendor)
	id := createCandidate(t, s, token)

	status, _ := s.do(t, http.MethodPut, "/api/candidates/bulk-status", token, map[string]interface{}{"ids": []string{}, "status": "selected"})
	assert.Equal(t, 400, status)

	status, body := s.do(t, http.MethodPut, "/api/candidates/bulk-status", otherToken, map[string]interface{}{"ids": []string{id}, "status": "selected"})
	require.Equal(t, 200, status, body)
	assert.EqualValues(t, 0, body["updated"])

	status, body = s.do(t, http.MethodPut, "/api/candidates/bulk-status", token, map[string]interface{}{"ids": []string{id}, "status": "selected"})
	require.Equal(t, 200, status, body)
	assert.EqualValues(t, 1, body["updated"])

	status, body = s.do(t, http.MethodPut, "/api/candidates/bulk-date", token, map[string]interface{}{"ids": []string{id}, "interviewDate": "2026-11-03"})
	require.Equal(t, 200, status, body)
	assert.EqualValues(t, 1, body["updated"])

	status, _ = s.do(t, http.MethodPut, "/api/candidates/bulk-date", token, map[string]interface{}{"ids": []string{id}, "interviewDate": "03/11/2026"})
	assert.Equal(t, 400, status)

	status, body = s.do(t, http.MethodGet, "/api/candidates/bulk-status?ids="+id, token, nil)
	require.Equal(t, 200, status, body)
	snaps := body["data"].([]interface{})
	require.Len(t, snaps, 1)
	snap := snaps[0].(map[string]interface{})
	assert.Equal(t, "selected", snap["status"])
	assert.Equal(t, "2026-11-03", snap["interviewDate"])

	status, _ = s.do(t, http.MethodGet, "/api/candidates/bulk-date?ids=nope", token, nil)
	assert.Equal(t, 400, status)
}

func TestCandidateVisibilityAndStatus(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.adminToken(t, "vendor@example.com", model.RoleVendor)
	otherToken, _ := s.adminToken(t, "other@example.com", model.RoleVendor)
	superToken, _ := s.adminToken(t, "root@example.com", model.RoleSuperAdmin)
	id := createCandidate(t, s, token)

	status, _ := s.do(t, http.MethodGet, "/api/candidates/"+id, otherToken, nil)
	assert.Equal(t, 404, status)

	status, body := s.do(t, http.MethodGet, "/api/candidates?search=ravi", superToken, nil)
	require.Equal(t, 200, status)
	assert.EqualValues(t, 1, body["total"])

	status, body = s.do(t, http.MethodPut, "/api/candidates/"+id+"/status", token, map[string]string{"status": "shortlisted"})
	require.Equal(t, 200, status, body)
	assert.Equal(t, "shortlisted", body["data"].(map[string]interface{})["status"])
}

func TestCVLinkRoundTrip(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.adminToken(t, "vendor@example.com", model.RoleVendor)
	id := createCandidate(t, s, token)

	status, body := s.do(t, http.MethodPost, "/api/candidates/"+id+"/cv-link", token, nil)
	require.Equal(t, 201, status, body)
	url := body["url"].(string)

	status, body = s.do(t, http.MethodGet, url, "", nil)
	require.Equal(t, 200, status, body)
	assert.Equal(t, "Ravi Kumar", body["name"])
	assert.Equal(t, "Cashier", body["position"])

	status, _ = s.do(t, http.MethodGet, url+"x", "", nil)
	assert.Equal(t, 401, status)
}

func TestIncentivesVendorResolution(t *testing.T) {
	s := newTestServer(t)
	token, vendor := s.adminToken(t, "vendor@example.com", model.RoleVendor)
	createCandidate(t, s, token)

	status, body := s.do(t, http.MethodGet, "/api/vendor/incentives", token, nil)
	require.Equal(t, 200, status, body)
	assert.Len(t, body["leaderboard"], 1)

	status, _ = s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{"email": "u@example.com", "password": "secret123"})
	require.Equal(t, 201, status)
	_, body = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "u@example.com", "password": "secret123"})
	userToken := body["sessionToken"].(string)

	status, _ = s.do(t, http.MethodGet, "/api/vendor/incentives", userToken, nil)
	assert.Equal(t, 400, status)

	status, body = s.do(t, http.MethodGet, "/api/vendor/incentives?vendorId="+vendor.ID.String(), userToken, nil)
	require.Equal(t, 200, status, body)
	assert.Len(t, body["leaderboard"], 1)
	hr := body["leaderboard"].([]interface{})[0].(map[string]interface{})["hr"].(map[string]interface{})
	assert.Equal(t, "Priya", hr["name"])
	assert.NotContains(t, hr, "email")
	assert.NotContains(t, hr, "phone")
}

func TestSuperAdminRoutes(t *testing.T) {
	s := newTestServer(t)
	vendorToken, _ := s.adminToken(t, "vendor@example.com", model.RoleVendor)
	superToken, _ := s.adminToken(t, "root@example.com", model.RoleSuperAdmin)

	status, _ := s.do(t, http.MethodGet, "/api/super-admin/stats", vendorToken, nil)
	assert.Equal(t, 403, status)

	status, body := s.do(t, http.MethodPost, "/api/super-admin/vendors", superToken, map[string]string{
		"email": "new@example.com", "password": "secret123", "name": "New Vendor",
	})
	require.Equal(t, 201, status, body)

	status, _ = s.do(t, http.MethodPost, "/api/super-admin/vendors", superToken, map[string]string{
		"email": "new@example.com", "password": "secret123", "name": "Again",
	})
	assert.Equal(t, 409, status)

	status, body = s.do(t, http.MethodGet, "/api/super-admin/stats", superToken, nil)
	require.Equal(t, 200, status, body)
	assert.EqualValues(t, 2, body["vendors"])
}

func TestMenuPermissionRoutes(t *testing.T) {
	s := newTestServer(t)
	vendorToken, vendor := s.adminToken(t, "vendor@example.com", model.RoleVendor)
	superToken, _ := s.adminToken(t, "root@example.com", model.RoleSuperAdmin)

	status, _ := s.do(t, http.MethodPut, "/api/vendor/menu-permissions", vendorToken, map[string]interface{}{
		"permissions": map[string]bool{"billing": false},
	})
	assert.Equal(t, 403, status)

	status, body := s.do(t, http.MethodPut, "/api/super-admin/menu-permissions", superToken, map[string]interface{}{
		"adminUserId": vendor.ID,
		"permissions": map[string]bool{"billing": false},
	})
	require.Equal(t, 200, status, body)

	status, body = s.do(t, http.MethodGet, "/api/vendor/menu-permissions", vendorToken, nil)
	require.Equal(t, 200, status, body)
	perms := body["permissions"].(map[string]interface{})
	assert.Equal(t, false, perms["billing"])
	assert.Equal(t, true, perms["dashboard"])

	status, _ = s.do(t, http.MethodGet, "/api/super-admin/menu-permissions?adminUserId="+uuid.NewString(), superToken, nil)
	assert.Equal(t, 404, status)

	status, body = s.do(t, http.MethodGet, "/api/super-admin/menu-permissions?adminUserId="+vendor.ID.String(), superToken, nil)
	require.Equal(t, 200, status, body)
	assert.Equal(t, false, body["permissions"].(map[string]interface{})["billing"])
}

func TestLookupRoutesAreOwnerScoped(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.adminToken(t, "vendor@example.com", model.RoleVendor)
	otherToken, _ := s.adminToken(t, "other@example.com", model.RoleVendor)

	status, body := s.do(t, http.MethodPost, "/api/vendor/locations", token, map[string]string{"name": "Pune", "city": "Pune"})
	require.Equal(t, 201, status, body)
	id := body["data"].(map[string]interface{})["id"].(string)

	status, _ = s.do(t, http.MethodPut, "/api/vendor/locations/"+id, otherToken, map[string]string{"name": "Mumbai"})
	assert.Equal(t, 404, status)

	createdAt := body["data"].(map[string]interface{})["createdAt"]

	status, body = s.do(t, http.MethodPut, "/api/vendor/locations/"+id, token, map[string]string{"name": "Pune East", "createdAt": "1999-01-01T00:00:00Z"})
	require.Equal(t, 200, status, body)
	updated := body["data"].(map[string]interface{})
	assert.Equal(t, "Pune East", updated["name"])
	assert.Equal(t, createdAt, updated["createdAt"])

	status, body = s.do(t, http.MethodGet, "/api/vendor/locations", otherToken, nil)
	require.Equal(t, 200, status)
	assert.Empty(t, body["data"])

	status, _ = s.do(t, http.MethodPost, "/api/vendor/positions", token, map[string]string{"department": "Sales"})
	assert.Equal(t, 400, status)
}

func TestPaymentsWithoutGatewayKeys(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.adminToken(t, "vendor@example.com", model.RoleVendor)

	status, body := s.do(t, http.MethodPost, "/api/payments/create-order", token, map[string]interface{}{"amount": "499.00"})
	assert.Equal(t, 503, status)
	assert.Equal(t, "Payment gateway is not configured", body["error"])

	status, _ = s.do(t, http.MethodPost, "/api/payments/verify", token, map[string]string{
		"razorpay_order_id": "order_missing", "razorpay_payment_id": "pay_1", "razorpay_signature": "sig",
	})
	assert.Equal(t, 404, status)
}

func multipartUpload(t *testing.T, filename string, data []byte, folder string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	if folder != "" {
		require.NoError(t, w.WriteField("folder", folder))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadRoute(t *testing.T) {
	s := newTestServer(t)
	png := append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

	status, body := s.send(t, multipartUpload(t, "avatar.png", png, "avatars"))
	require.Equal(t, 201, status, body)
	assert.Equal(t, "image/png", body["mimeType"])
	assert.Contains(t, body["url"], "/uploads/avatars/")

	status, _ = s.send(t, multipartUpload(t, "resume.pdf", []byte("just some text"), "resumes"))
	assert.Equal(t, 400, status)

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", nil)
	status, body = s.send(t, req)
	assert.Equal(t, 400, status)
	assert.Equal(t, "File is required", body["error"])
}

func TestDashboardRoutes(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.adminToken(t, "vendor@example.com", model.RoleVendor)
	otherToken, _ := s.adminToken(t, "other@example.com", model.RoleVendor)
	createCandidate(t, s, token)

	status, body := s.do(t, http.MethodGet, "/api/dashboard/stats", token, nil)
	require.Equal(t, 200, status, body)
	assert.EqualValues(t, 1, body["totalCandidates"])
	assert.EqualValues(t, 1, body["totalHrs"])
	assert.EqualValues(t, 1, body["appliedToday"])

	status, body = s.do(t, http.MethodGet, "/api/dashboard/stats", otherToken, nil)
	require.Equal(t, 200, status, body)
	assert.EqualValues(t, 0, body["totalCandidates"])

	status, body = s.do(t, http.MethodGet, "/api/dashboard/applications?days=500", token, nil)
	require.Equal(t, 200, status, body)
	assert.EqualValues(t, 90, body["period"])
	assert.Len(t, body["data"], 1)
}
