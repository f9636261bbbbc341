package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"go.uber.org/zap"

	"testimonials/internal/auth"
	"testimonials/internal/metrics"
	"testimonials/internal/middleware"
	"testimonials/internal/models"
)

// AuthHandler exposes the admin gate over JSON.
type AuthHandler struct {
	gate   *auth.Gate
	logger *zap.Logger
}

// NewAuthHandler creates a new API auth handler.
func NewAuthHandler(gate *auth.Gate, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{gate: gate, logger: logger}
}

// Login checks the password and sets the session flag on success.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body models.LoginRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	ok, err := h.gate.Login(c.Context(), middleware.Session(c), body.Password)
	metrics.LoginAttempts.WithLabelValues(metrics.LoginOutcome(ok, err)).Inc()
	if err != nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "login is temporarily unavailable")
	}
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, auth.ErrInvalidSecret.Error())
	}

	if s := session.FromContext(c); s != nil {
		if err := s.Regenerate(); err != nil {
			h.logger.Warn("failed to regenerate session id", zap.Error(err))
		}
	}
	return jsonSuccess(c, models.SessionResponse{Authenticated: true})
}

// Logout clears the session flag.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	h.gate.Logout(middleware.Session(c))
	return jsonSuccess(c, models.SessionResponse{Authenticated: false})
}

// Session reports whether the caller is authenticated.
func (h *AuthHandler) Session(c fiber.Ctx) error {
	return jsonSuccess(c, models.SessionResponse{
		Authenticated: h.gate.IsAuthenticated(middleware.Session(c)),
	})
}
