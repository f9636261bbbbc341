package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"testimonials/internal/auth"
)

const (
	// LoginPath is where unauthenticated browsers are sent.
	LoginPath = "/admin/login"

	adminLocal = "is_admin"
)

// AuthMiddleware guards admin routes with the shared-secret gate.
type AuthMiddleware struct {
	gate *auth.Gate
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(gate *auth.Gate) *AuthMiddleware {
	return &AuthMiddleware{gate: gate}
}

// Session returns the request's session, or nil when the session middleware
// is not installed.
func Session(c fiber.Ctx) auth.Session {
	sess := session.FromContext(c)
	if sess == nil {
		return nil
	}
	return sess
}

// IsAdmin reports whether LoadAdmin or RequireAdmin marked the request as authenticated.
func IsAdmin(c fiber.Ctx) bool {
	v, _ := c.Locals(adminLocal).(bool)
	return v
}

// LoadAdmin records the admin flag for templates without requiring it.
func (m *AuthMiddleware) LoadAdmin(c fiber.Ctx) error {
	c.Locals(adminLocal, m.gate.IsAuthenticated(Session(c)))
	return c.Next()
}

// RequireAdmin ensures the session is authenticated, redirecting to the login
// page if not. HTMX requests get an HX-Redirect header instead.
func (m *AuthMiddleware) RequireAdmin(c fiber.Ctx) error {
	if !m.gate.IsAuthenticated(Session(c)) {
		if c.Get("HX-Request") == "true" {
			c.Set("HX-Redirect", LoginPath)
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.Redirect().Status(fiber.StatusFound).To(LoginPath)
	}

	c.Locals(adminLocal, true)
	return c.Next()
}

// RequireAdminAPI ensures the session is authenticated, answering 401 JSON if not.
func (m *AuthMiddleware) RequireAdminAPI(c fiber.Ctx) error {
	if !m.gate.IsAuthenticated(Session(c)) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status": "error",
			"error":  "authentication required",
		})
	}

	c.Locals(adminLocal, true)
	return c.Next()
}
