// Package api serves the JSON endpoints.
package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"testimonials/internal/models"
	"testimonials/internal/store"
	"testimonials/internal/testimonials"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonCreated returns a 201 response with data wrapped in the standard envelope.
func jsonCreated(c fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// jsonValidation returns 422 with the per-field messages.
func jsonValidation(c fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ValidationErrorResponse{
		Status: "error",
		Error:  "validation failed",
		Fields: fields,
	})
}

// jsonServiceError maps a service error to a status code.
func jsonServiceError(c fiber.Ctx, err error) error {
	var verr *testimonials.ValidationError
	switch {
	case errors.As(err, &verr):
		return jsonValidation(c, verr.Result.FieldErrors)
	case errors.Is(err, store.ErrNotFound):
		return jsonError(c, fiber.StatusNotFound, "testimonial not found")
	case errors.Is(err, testimonials.ErrInvalidStatus):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return jsonError(c, fiber.StatusInternalServerError, err.Error())
	}
}

func parseID(c fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
