package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"testimonials/internal/models"
	"testimonials/internal/testimonials"
)

// TestimonialHandler serves the public testimonial endpoints.
type TestimonialHandler struct {
	svc *testimonials.Service
}

// NewTestimonialHandler creates a new API testimonial handler.
func NewTestimonialHandler(svc *testimonials.Service) *TestimonialHandler {
	return &TestimonialHandler{svc: svc}
}

// List returns the approved testimonials, newest first.
func (h *TestimonialHandler) List(c fiber.Ctx) error {
	items, err := h.svc.Approved(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch testimonials")
	}
	if items == nil {
		items = []models.Testimonial{}
	}
	return jsonSuccess(c, items)
}

// Create submits a new testimonial. Status and certification fields in the
// body are not part of models.Submission and are dropped while decoding.
func (h *TestimonialHandler) Create(c fiber.Ctx) error {
	var body models.Submission
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	rec, err := h.svc.Submit(c.Context(), body)
	if err != nil {
		var verr *testimonials.ValidationError
		if errors.As(err, &verr) {
			return jsonValidation(c, verr.Result.FieldErrors)
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to save testimonial")
	}

	return jsonCreated(c, rec)
}
