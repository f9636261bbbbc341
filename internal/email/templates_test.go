package email

import (
	"fmt"
	"strings"
	"testing"

	"testimonials/internal/config"
	"testimonials/internal/models"
)

func newTestTemplates() *Templates {
	return NewTemplates(&config.Config{
		SiteTitle: "Reviews",
		BaseURL:   "https://reviews.example.com",
	})
}

func TestTemplates_TestimonialSubmitted(t *testing.T) {
	tmpl := newTestTemplates()
	rec := &models.Testimonial{
		Name:      "Jean Dupont",
		BrandName: "Dupont & Fils",
		Email:     "jean@example.com",
		Message:   "An exceptional service! <b>Really</b>.",
		Rating:    4,
	}

	subject, htmlBody, textBody := tmpl.TestimonialSubmitted(rec)

	if subject != "[Reviews] New testimonial from Jean Dupont" {
		t.Errorf("subject = %q", subject)
	}

	for _, want := range []string{
		"Jean Dupont (Dupont &amp; Fils)",
		"jean@example.com",
		"★★★★☆",
		"&lt;b&gt;Really&lt;/b&gt;",
		"https://reviews.example.com/admin",
	} {
		if !strings.Contains(htmlBody, want) {
			t.Errorf("HTML body missing %q", want)
		}
	}
	if strings.Contains(htmlBody, "<b>Really</b>") {
		t.Error("HTML body should escape the message")
	}

	for _, want := range []string{"Rating: 4/5", "Dupont & Fils", "Review at: https://reviews.example.com/admin"} {
		if !strings.Contains(textBody, want) {
			t.Errorf("text body missing %q", want)
		}
	}
}

func TestTemplates_TestimonialSubmitted_NoEmail(t *testing.T) {
	_, _, textBody := newTestTemplates().TestimonialSubmitted(&models.Testimonial{Name: "A", Message: "hello there", Rating: 5})
	if !strings.Contains(textBody, "Email: not provided") {
		t.Errorf("text body should note the missing email, got:\n%s", textBody)
	}
}

func TestTemplates_PendingDigest(t *testing.T) {
	tests := []struct {
		name        string
		count       int
		wantSubject string
		wantMore    string
	}{
		{"single", 1, "[Reviews] 1 testimonial awaiting review", ""},
		{"several", 3, "[Reviews] 3 testimonials awaiting review", ""},
		{"over the limit", digestLimit + 2, fmt.Sprintf("[Reviews] %d testimonials awaiting review", digestLimit+2), "...and 2 more."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pending := make([]models.Testimonial, tt.count)
			for i := range pending {
				pending[i] = models.Testimonial{Name: fmt.Sprintf("Author %d", i), Message: "Pending message", Rating: 3}
			}

			subject, htmlBody, textBody := newTestTemplates().PendingDigest(pending)
			if subject != tt.wantSubject {
				t.Errorf("subject = %q, want %q", subject, tt.wantSubject)
			}
			if tt.wantMore != "" {
				if !strings.Contains(htmlBody, tt.wantMore) || !strings.Contains(textBody, tt.wantMore) {
					t.Errorf("bodies should mention %q", tt.wantMore)
				}
				if strings.Contains(textBody, fmt.Sprintf("Author %d", digestLimit)) {
					t.Error("entries past the limit should not be listed")
				}
			}
			if !strings.Contains(htmlBody, "/admin?status=pending") {
				t.Error("HTML body should link to the review queue")
			}
		})
	}
}

func TestStarsAndTruncate(t *testing.T) {
	if got := stars(2); got != "★★☆☆☆" {
		t.Errorf("stars(2) = %q", got)
	}
	if got := stars(9); got != "★★★★★" {
		t.Errorf("stars(9) = %q", got)
	}
	if got := truncate("héllo world", 5); got != "héllo..." {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate() = %q", got)
	}
}
