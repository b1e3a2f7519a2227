package handler

import (
	"uhs-recruit/internal/middleware"
	"uhs-recruit/internal/service"
	"uhs-recruit/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
	log         *logger.Logger
}

func NewAuthHandler(authService service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// Signup registers an end-user account.
// POST /api/auth/signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req service.SignupRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Signup(c.UserContext(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	})
}

// CreateSession stores an admin session minted by a trusted caller, replacing earlier ones.
// POST /api/auth/session
func (h *AuthHandler) CreateSession(c *fiber.Ctx) error {
	var req service.CreateSessionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	session, err := h.authService.CreateAdminSession(c.UserContext(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.JSON(fiber.Map{
		"id":           session.ID,
		"sessionToken": session.Token,
		"expiresAt":    session.ExpiresAt,
	})
}

// GetSession reports the principal behind the bearer token.
// GET /api/auth/session
func (h *AuthHandler) GetSession(c *fiber.Ctx) error {
	p, err := h.authService.Authenticate(c.UserContext(), middleware.BearerToken(c))
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.JSON(fiber.Map{
		"valid": true,
		"role":  p.Role,
		"user":  p.View(),
	})
}

// AdminLogin POST /api/auth/admin/login
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	res, err := h.authService.AdminLogin(c.UserContext(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(res)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	res, err := h.authService.UserLogin(c.UserContext(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(res)
}
