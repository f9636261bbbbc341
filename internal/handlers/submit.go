package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"testimonials/internal/config"
	"testimonials/internal/models"
	"testimonials/internal/testimonials"
)

// SubmitHandler serves the visitor submission form.
type SubmitHandler struct {
	svc *testimonials.Service
	cfg *config.Config
}

// NewSubmitHandler creates a new submit handler.
func NewSubmitHandler(svc *testimonials.Service, cfg *config.Config) *SubmitHandler {
	return &SubmitHandler{svc: svc, cfg: cfg}
}

// Form renders an empty submission form.
func (h *SubmitHandler) Form(c fiber.Ctx) error {
	return c.Render("submit", MergeBranding(fiber.Map{
		"Title":  "Share your experience",
		"Form":   models.Submission{Rating: models.DefaultRating},
		"Errors": map[string]string{},
	}, h.cfg, c))
}

// Create validates and stores a submission. Validation failures re-render
// the form with inline field errors and the visitor's input preserved.
func (h *SubmitHandler) Create(c fiber.Ctx) error {
	in := submissionFromForm(c)

	rec, err := h.svc.Submit(c.Context(), in)
	if err != nil {
		var verr *testimonials.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusUnprocessableEntity).Render("submit", MergeBranding(fiber.Map{
				"Title":  "Share your experience",
				"Form":   in,
				"Errors": verr.Result.FieldErrors,
			}, h.cfg, c))
		}
		return c.Status(fiber.StatusServiceUnavailable).Render("submit", MergeBranding(fiber.Map{
			"Title":     "Share your experience",
			"Form":      in,
			"Errors":    map[string]string{},
			"FormError": "We could not save your testimonial. Please try again in a moment.",
		}, h.cfg, c))
	}

	return c.Render("thanks", MergeBranding(fiber.Map{
		"Title":       "Thank you",
		"Testimonial": rec,
	}, h.cfg, c))
}

// submissionFromForm reads the form fields. A rating that is present but not
// a number is mapped to -1 so validation reports it.
func submissionFromForm(c fiber.Ctx) models.Submission {
	in := models.Submission{
		Name:      c.FormValue("name"),
		BrandName: c.FormValue("brand_name"),
		Email:     c.FormValue("email"),
		Message:   c.FormValue("message"),
	}
	if raw := strings.TrimSpace(c.FormValue("rating")); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			rating = -1
		}
		in.Rating = rating
	}
	return in
}
