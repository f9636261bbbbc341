package handlers

import (
	"github.com/gofiber/fiber/v3"

	"testimonials/internal/config"
	"testimonials/internal/testimonials"
)

// PublicHandler renders the approved testimonials.
type PublicHandler struct {
	svc *testimonials.Service
	cfg *config.Config
}

// NewPublicHandler creates a new public handler.
func NewPublicHandler(svc *testimonials.Service, cfg *config.Config) *PublicHandler {
	return &PublicHandler{svc: svc, cfg: cfg}
}

// Index renders the approved testimonials, newest first.
func (h *PublicHandler) Index(c fiber.Ctx) error {
	items, err := h.svc.Approved(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "testimonials are temporarily unavailable")
	}

	return c.Render("index", MergeBranding(fiber.Map{
		"Title":        "Testimonials",
		"Testimonials": items,
	}, h.cfg, c))
}
