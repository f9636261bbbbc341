package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"testimonials/internal/models"
	"testimonials/internal/store"
	"testimonials/internal/testimonials"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"not found", store.NotFound("delete testimonial"), "not found"},
		{"invalid status", fmt.Errorf("%w: %q", testimonials.ErrInvalidStatus, "x"), "Unknown status"},
		{"store failure", store.Wrap("update testimonial status", errors.New("connection reset")), "Could not save the change"},
		{"anything else", errors.New("boom"), "Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorMessage(tt.err); !strings.Contains(got, tt.contains) {
				t.Errorf("errorMessage() = %q, want it to contain %q", got, tt.contains)
			}
		})
	}
}

func TestSubmissionFromForm(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected models.Submission
	}{
		{
			name:     "all fields",
			body:     "name=Jean&brand_name=Acme&email=jean%40example.com&message=Great+service&rating=4",
			expected: models.Submission{Name: "Jean", BrandName: "Acme", Email: "jean@example.com", Message: "Great service", Rating: 4},
		},
		{
			name:     "missing rating stays zero",
			body:     "name=Jean&message=Great+service",
			expected: models.Submission{Name: "Jean", Message: "Great service"},
		},
		{
			name:     "non numeric rating",
			body:     "name=Jean&message=Great+service&rating=five",
			expected: models.Submission{Name: "Jean", Message: "Great service", Rating: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got models.Submission
			app := fiber.New()
			app.Post("/", func(c fiber.Ctx) error {
				got = submissionFromForm(c)
				return nil
			})

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if _, err := app.Test(req); err != nil {
				t.Fatal(err)
			}
			if got != tt.expected {
				t.Errorf("submissionFromForm() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	app := fiber.New()
	app.Get("/:id", func(c fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		return c.SendString(id.String())
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/not-a-uuid", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
