// Package handlers serves the HTML pages and HTMX partials.
package handlers

import (
	"errors"
	"html"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"testimonials/internal/store"
	"testimonials/internal/testimonials"
)

// htmxError returns an error message as HTML that HTMX will display in the
// dashboard's error slot, leaving the list in place.
// Uses 200 status so HTMX processes the swap (HTMX ignores non-2xx by default).
func htmxError(c fiber.Ctx, message string) error {
	c.Set("HX-Retarget", "#admin-error")
	c.Set("HX-Reswap", "innerHTML")
	return c.SendString(
		`<div role="alert" class="p-3 rounded-lg bg-red-50 text-red-700 text-sm">` + html.EscapeString(message) + `</div>`,
	)
}

// parseID reads the :id route parameter.
func parseID(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid testimonial id")
	}
	return id, nil
}

// errorMessage turns a service error into text for the admin.
func errorMessage(err error) string {
	var storeErr *store.Error
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "Testimonial not found. It may have been deleted."
	case errors.Is(err, testimonials.ErrInvalidStatus):
		return "Unknown status."
	case errors.As(err, &storeErr):
		return "Could not save the change: " + storeErr.Error()
	default:
		return "Something went wrong. Please try again."
	}
}
