package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testimonials/internal/store"
	"testimonials/internal/testimonials"
	"testimonials/internal/validation"
)

func TestJSONServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", &testimonials.ValidationError{Result: validation.Result{FieldErrors: map[string]string{"name": "Name is required."}}}, fiber.StatusUnprocessableEntity},
		{"not found", store.NotFound("get testimonial"), fiber.StatusNotFound},
		{"invalid status", fmt.Errorf("%w: %q", testimonials.ErrInvalidStatus, "x"), fiber.StatusBadRequest},
		{"store failure", store.Wrap("list testimonials", errors.New("connection refused")), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c fiber.Ctx) error { return jsonServiceError(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var payload map[string]any
			require.NoError(t, json.Unmarshal(body, &payload))
			assert.Equal(t, "error", payload["status"])
		})
	}
}

type pingFunc func() error

func (f pingFunc) Ping(_ context.Context) error { return f() }

func TestHealthz(t *testing.T) {
	tests := []struct {
		name       string
		ping       error
		wantStatus int
	}{
		{"store up", nil, fiber.StatusOK},
		{"store down", errors.New("dial tcp: refused"), fiber.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(pingFunc(func() error { return tt.ping }))
			app := fiber.New()
			app.Get("/healthz", h.Healthz)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
