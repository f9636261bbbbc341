package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Status is the moderation state of a testimonial.
type Status string

// Testimonial statuses.
const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusApproved, StatusRejected}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ParseStatus converts a raw string into a Status.
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

// Testimonial is a customer review awaiting or past moderation.
type Testimonial struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	BrandName   string    `json:"brand_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Message     string    `json:"message"`
	Rating      int       `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
	Status      Status    `json:"status"`
	IsCertified bool      `json:"is_certified"`
}

// IsPending returns true if the testimonial is awaiting moderation.
func (t *Testimonial) IsPending() bool {
	return t.Status == StatusPending
}

// IsApproved returns true if the testimonial is publicly visible.
func (t *Testimonial) IsApproved() bool {
	return t.Status == StatusApproved
}

// IsRejected returns true if the testimonial was refused.
func (t *Testimonial) IsRejected() bool {
	return t.Status == StatusRejected
}

// Initial returns the upper-cased first letter of the author name.
func (t *Testimonial) Initial() string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(t.Name))
	if r == utf8.RuneError {
		return "?"
	}
	return strings.ToUpper(string(r))
}

// Stars returns a slice of booleans, one per star slot, for template rendering.
func (t *Testimonial) Stars() []bool {
	stars := make([]bool, 5)
	for i := range stars {
		stars[i] = i < t.Rating
	}
	return stars
}

// Submission is the visitor-supplied part of a testimonial. It deliberately has
// no status, certification, id or timestamp fields.
type Submission struct {
	Name      string `json:"name" validate:"required,singleline,max=120"`
	BrandName string `json:"brand_name" validate:"max=200"`
	Email     string `json:"email" validate:"omitempty,email,max=254"`
	Message   string `json:"message" validate:"required,min=10,max=5000"`
	Rating    int    `json:"rating" validate:"min=1,max=5"`
}

// DefaultRating is applied when a submission carries no rating.
const DefaultRating = 5

// Normalize returns a copy with surrounding whitespace trimmed and the rating defaulted.
func (s Submission) Normalize() Submission {
	s.Name = strings.TrimSpace(s.Name)
	s.BrandName = strings.TrimSpace(s.BrandName)
	s.Email = strings.TrimSpace(s.Email)
	s.Message = strings.TrimSpace(s.Message)
	if s.Rating == 0 {
		s.Rating = DefaultRating
	}
	return s
}

// Testimonial builds the record fields from a submission. Server-controlled
// fields are left zero for the store to assign.
func (s Submission) Testimonial() *Testimonial {
	return &Testimonial{
		Name:      s.Name,
		BrandName: s.BrandName,
		Email:     s.Email,
		Message:   s.Message,
		Rating:    s.Rating,
	}
}
