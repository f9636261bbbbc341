// Package store defines the record store contract for testimonials and an
// in-process implementation of it.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"testimonials/internal/models"
)

// ErrNotFound is matched (via errors.Is) by store errors for a missing id.
var ErrNotFound = errors.New("testimonial not found")

// Store is the data-access contract over the testimonials collection.
// Every call targets a single record and either fully applies or leaves the
// previous state untouched.
type Store interface {
	// ListTestimonials returns every testimonial, newest first.
	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
	// ListTestimonialsByStatus returns testimonials in the given status, newest first.
	ListTestimonialsByStatus(ctx context.Context, status models.Status) ([]models.Testimonial, error)
	GetTestimonialByID(ctx context.Context, id uuid.UUID) (*models.Testimonial, error)
	// CreateTestimonial inserts t as a new pending, uncertified record and
	// fills in its id, creation time and status.
	CreateTestimonial(ctx context.Context, t *models.Testimonial) error
	UpdateTestimonialStatus(ctx context.Context, id uuid.UUID, status models.Status) error
	SetTestimonialCertification(ctx context.Context, id uuid.UUID, certified bool) error
	DeleteTestimonial(ctx context.Context, id uuid.UUID) error
	CountTestimonialsByStatus(ctx context.Context) (map[models.Status]int, error)
	Ping(ctx context.Context) error
}

// Error is returned by Store implementations when a call fails.
type Error struct {
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap converts err into a *Error for op. It returns nil for a nil err and
// leaves an existing *Error untouched.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	msg := err.Error()
	if errors.Is(err, ErrNotFound) {
		msg = ErrNotFound.Error()
	}
	return &Error{Op: op, Message: msg, Err: err}
}

// NotFound returns the store error for a missing record.
func NotFound(op string) error {
	return &Error{Op: op, Message: ErrNotFound.Error(), Err: ErrNotFound}
}

// PrepareCreate overwrites every server-controlled field of t. Implementations
// call it before persisting so that caller-supplied status, certification,
// id or timestamp never reach storage.
func PrepareCreate(t *models.Testimonial, now time.Time) {
	t.ID = uuid.New()
	t.CreatedAt = now.UTC()
	t.Status = models.StatusPending
	t.IsCertified = false
}
