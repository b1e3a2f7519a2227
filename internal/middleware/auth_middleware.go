package middleware

import (
	"crypto/subtle"
	"errors"
	"strings"

	"uhs-recruit/internal/model"
	"uhs-recruit/internal/service"
	"uhs-recruit/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

// Principal returns the caller set by RequireSession, or nil.
func Principal(c *fiber.Ctx) *service.Principal {
	p, _ := c.Locals(principalKey).(*service.Principal)
	return p
}

// BearerToken reads "Authorization: Bearer <token>" and falls back to ?token=.
func BearerToken(c *fiber.Ctx) string {
	if authHeader := c.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return c.Query("token")
}

// RequireSession resolves the session token and stores the principal in locals.
func RequireSession(auth service.AuthService, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c)
		if token == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		p, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				return c.Status(401).JSON(fiber.Map{"error": err.Error()})
			}
			log.Error().Err(err).Str("path", c.Path()).Msg("session lookup failed")
			return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
		}

		c.Locals(principalKey, p)
		return c.Next()
	}
}

// RequireRole lets the request through when the caller holds one of roles.
func RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := Principal(c)
		if p == nil {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}
		if err := service.Authorize(p, roles...); err != nil {
			return c.Status(403).JSON(fiber.Map{"error": "Forbidden: requires role " + joinRoles(roles)})
		}
		return c.Next()
	}
}

// RequireInternalKey guards service-to-service endpoints. An empty key disables the check.
func RequireInternalKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key == "" {
			return c.Next()
		}
		if subtle.ConstantTimeCompare([]byte(c.Get("X-Internal-Key")), []byte(key)) != 1 {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid internal key"})
		}
		return c.Next()
	}
}

func joinRoles(roles []model.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, " or ")
}
