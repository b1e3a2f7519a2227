package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"uhs-recruit/internal/model"
	"uhs-recruit/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService interface {
	// Authenticate resolves a bearer token to its principal. Any miss is ErrUnauthorized.
	Authenticate(ctx context.Context, token string) (*Principal, error)
	Signup(ctx context.Context, req SignupRequest) (*model.User, error)
	CreateAdminSession(ctx context.Context, req CreateSessionRequest) (*model.AdminSession, error)
	AdminLogin(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	UserLogin(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ResetAdminPassword(ctx context.Context, email, newPassword string) error
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type CreateSessionRequest struct {
	AdminUserID  uuid.UUID `json:"adminUserId"`
	SessionToken string    `json:"sessionToken"`
	DeviceInfo   *string   `json:"deviceInfo"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type LoginRequest struct {
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	DeviceInfo *string `json:"deviceInfo"`
}

type LoginResponse struct {
	SessionToken string        `json:"sessionToken"`
	ExpiresAt    time.Time     `json:"expiresAt"`
	Role         model.Role    `json:"role"`
	User         PrincipalView `json:"user"`
}

type authService struct {
	admins   repository.AdminUserRepository
	users    repository.UserRepository
	sessions repository.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(admins repository.AdminUserRepository, users repository.UserRepository, sessions repository.SessionRepository, ttl time.Duration) AuthService {
	return &authService{
		admins:   admins,
		users:    users,
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *authService) Authenticate(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, newError(ErrUnauthorized, "Unauthorized")
	}
	now := s.now()

	// 1. admin / vendor sessions
	adminSession, err := s.sessions.FindActiveAdminSession(ctx, token, now)
	if err == nil && adminSession.AdminUser != nil {
		return &Principal{
			Kind:  PrincipalAdmin,
			Role:  adminSession.AdminUser.EffectiveRole(),
			Admin: adminSession.AdminUser,
		}, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. end-user sessions
	userSession, err := s.sessions.FindActiveUserSession(ctx, token, now)
	if err == nil && userSession.User != nil {
		return &Principal{Kind: PrincipalUser, Role: model.RoleUser, User: userSession.User}, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return nil, newError(ErrUnauthorized, "Invalid or expired session")
}

func (s *authService) Signup(ctx context.Context, req SignupRequest) (*model.User, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, invalid("Email and password are required")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, invalid("Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &model.User{Email: email, Name: strings.TrimSpace(req.Name)}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalid("Email already registered")
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) CreateAdminSession(ctx context.Context, req CreateSessionRequest) (*model.AdminSession, error) {
	if req.AdminUserID == uuid.Nil || strings.TrimSpace(req.SessionToken) == "" || req.ExpiresAt.IsZero() {
		return nil, invalid("adminUserId, sessionToken and expiresAt are required")
	}
	if _, err := s.admins.FindByID(ctx, req.AdminUserID); err != nil {
		return nil, notFoundOr(err, "Admin user")
	}

	session := &model.AdminSession{
		Token:       req.SessionToken,
		AdminUserID: req.AdminUserID,
		DeviceInfo:  req.DeviceInfo,
		ExpiresAt:   req.ExpiresAt,
	}
	if err := s.sessions.ReplaceAdminSession(ctx, session); err != nil {
		return nil, conflictOr(err, "Session token already in use")
	}
	return session, nil
}

func (s *authService) AdminLogin(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	admin, err := s.admins.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials()
		}
		return nil, err
	}
	if !admin.IsActive || !admin.CheckPassword(req.Password) {
		return nil, errInvalidCredentials()
	}

	session, err := s.CreateAdminSession(ctx, CreateSessionRequest{
		AdminUserID:  admin.ID,
		SessionToken: uuid.NewString(),
		DeviceInfo:   req.DeviceInfo,
		ExpiresAt:    s.now().Add(s.ttl),
	})
	if err != nil {
		return nil, err
	}

	p := &Principal{Kind: PrincipalAdmin, Role: admin.EffectiveRole(), Admin: admin}
	return &LoginResponse{SessionToken: session.Token, ExpiresAt: session.ExpiresAt, Role: p.Role, User: p.View()}, nil
}

func (s *authService) UserLogin(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials()
		}
		return nil, err
	}
	if !user.CheckPassword(req.Password) {
		return nil, errInvalidCredentials()
	}

	session := &model.UserSession{
		Token:      uuid.NewString(),
		UserID:     user.ID,
		DeviceInfo: req.DeviceInfo,
		ExpiresAt:  s.now().Add(s.ttl),
	}
	if err := s.sessions.CreateUserSession(ctx, session); err != nil {
		return nil, err
	}

	p := &Principal{Kind: PrincipalUser, Role: model.RoleUser, User: user}
	return &LoginResponse{SessionToken: session.Token, ExpiresAt: session.ExpiresAt, Role: p.Role, User: p.View()}, nil
}

// ResetAdminPassword sets a new password and drops every session of that admin.
func (s *authService) ResetAdminPassword(ctx context.Context, email, newPassword string) error {
	if newPassword == "" {
		return invalid("Password is required")
	}
	admin, err := s.admins.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return notFoundOr(err, "Admin user")
	}
	if err := admin.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.admins.UpdatePassword(ctx, admin.ID, admin.Password); err != nil {
		return err
	}
	return s.sessions.DeleteAdminSessions(ctx, admin.ID)
}

func errInvalidCredentials() error {
	return newError(ErrUnauthorized, "Invalid email or password")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
