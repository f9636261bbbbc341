package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"testimonials/internal/models"
	"testimonials/internal/moderation"
	"testimonials/internal/testimonials"
)

// AdminHandler serves the moderation endpoints. Routes are mounted behind
// RequireAdminAPI.
type AdminHandler struct {
	svc *testimonials.Service
}

// NewAdminHandler creates a new API admin handler.
func NewAdminHandler(svc *testimonials.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// List returns the filtered collection with per-status counts.
func (h *AdminHandler) List(c fiber.Ctx) error {
	f := moderation.ParseFilter(c.Query("status"), c.Query("q"), c.Query("sort"))

	board, err := h.svc.Moderate(c.Context(), f)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch testimonials")
	}

	return jsonSuccess(c, models.ModerationListResponse{
		Filter: board.Filter,
		Items:  board.Items,
		Counts: board.Counts,
		Total:  board.Total,
	})
}

// UpdateStatus moves a testimonial to the requested status.
func (h *AdminHandler) UpdateStatus(c fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid testimonial id")
	}

	var body models.StatusRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	status, _ := models.ParseStatus(body.Status)
	if err := h.svc.UpdateStatus(c.Context(), id, status); err != nil {
		return jsonServiceError(c, err)
	}

	rec, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return jsonServiceError(c, err)
	}
	return jsonSuccess(c, rec)
}

// SetCertification sets the certified badge to an explicit value.
func (h *AdminHandler) SetCertification(c fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid testimonial id")
	}

	var body models.CertificationRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil || body.Certified == nil {
		return jsonError(c, fiber.StatusBadRequest, "body must contain a boolean \"certified\"")
	}

	if err := h.svc.SetCertification(c.Context(), id, *body.Certified); err != nil {
		return jsonServiceError(c, err)
	}
	return jsonSuccess(c, models.CertificationResponse{ID: id, IsCertified: *body.Certified})
}

// ToggleCertification flips the stored certified badge.
func (h *AdminHandler) ToggleCertification(c fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid testimonial id")
	}

	next, err := h.svc.ToggleStoredCertification(c.Context(), id)
	if err != nil {
		return jsonServiceError(c, err)
	}
	return jsonSuccess(c, models.CertificationResponse{ID: id, IsCertified: next})
}

// Delete removes a testimonial permanently.
func (h *AdminHandler) Delete(c fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid testimonial id")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return jsonServiceError(c, err)
	}
	return jsonSuccess(c, fiber.Map{"id": id, "deleted": true})
}
