package handlers

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/gofiber/utils/v2"
	"go.uber.org/zap"

	"testimonials/internal/auth"
	"testimonials/internal/config"
	"testimonials/internal/metrics"
	"testimonials/internal/middleware"
)

// AuthHandler handles the admin login page.
type AuthHandler struct {
	gate   *auth.Gate
	cfg    *config.Config
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(gate *auth.Gate, cfg *config.Config, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{gate: gate, cfg: cfg, logger: logger}
}

// LoginPage renders the password form, or goes straight to the dashboard
// when the session is already authenticated.
func (h *AuthHandler) LoginPage(c fiber.Ctx) error {
	if h.gate.IsAuthenticated(middleware.Session(c)) {
		return c.Redirect().Status(fiber.StatusFound).To("/admin")
	}
	return c.Render("admin_login", MergeBranding(fiber.Map{
		"Title": "Administration",
	}, h.cfg, c))
}

// Login checks the submitted password.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	sess := middleware.Session(c)
	ok, err := h.gate.Login(c.Context(), sess, c.FormValue("password"))
	metrics.LoginAttempts.WithLabelValues(metrics.LoginOutcome(ok, err)).Inc()

	if err != nil {
		h.logger.Error("admin secret lookup failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).Render("admin_login", MergeBranding(fiber.Map{
			"Title": "Administration",
			"Error": "Login is temporarily unavailable.",
		}, h.cfg, c))
	}
	if !ok {
		h.logger.Info("admin login denied", zap.String("ip", utils.CopyString(c.IP())))
		return c.Status(fiber.StatusUnauthorized).Render("admin_login", MergeBranding(fiber.Map{
			"Title": "Administration",
			"Error": "Access denied: incorrect password.",
		}, h.cfg, c))
	}

	// New session id once privileges change.
	if s := session.FromContext(c); s != nil {
		if err := s.Regenerate(); err != nil {
			h.logger.Warn("failed to regenerate session id", zap.Error(err))
		}
	}

	h.logger.Info("admin logged in", zap.String("ip", utils.CopyString(c.IP())))
	return c.Redirect().Status(fiber.StatusSeeOther).To("/admin")
}

// Logout clears the admin flag.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	h.gate.Logout(middleware.Session(c))
	if c.Get("HX-Request") == "true" {
		c.Set("HX-Redirect", "/")
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Redirect().Status(fiber.StatusSeeOther).To("/")
}
