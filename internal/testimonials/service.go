// Package testimonials implements the submission, display and moderation
// operations on top of a record store.
package testimonials

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"testimonials/internal/metrics"
	"testimonials/internal/models"
	"testimonials/internal/moderation"
	"testimonials/internal/store"
	"testimonials/internal/validation"
)

// ErrInvalidStatus is returned when a moderation status is not one of the known values.
var ErrInvalidStatus = errors.New("invalid status")

// ValidationError carries the field errors of a rejected submission.
type ValidationError struct {
	Result validation.Result
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Result.FieldErrors))
	for f := range e.Result.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("invalid submission: %s", strings.Join(fields, ", "))
}

// Notifier is told about every accepted submission.
type Notifier interface {
	NotifyTestimonialSubmitted(ctx context.Context, t *models.Testimonial)
}

// Service exposes the testimonial operations used by the HTTP handlers.
type Service struct {
	store    store.Store
	notifier Notifier
	logger   *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier sets the notifier used after successful submissions.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a service over st.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{store: st, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates in and stores it as a new pending, uncertified
// testimonial. Invalid input returns a *ValidationError without touching the store.
func (s *Service) Submit(ctx context.Context, in models.Submission) (*models.Testimonial, error) {
	in = in.Normalize()
	if res := validation.ValidateSubmission(in); !res.Valid {
		metrics.Submissions.WithLabelValues("invalid").Inc()
		return nil, &ValidationError{Result: res}
	}

	rec := in.Testimonial()
	if err := s.store.CreateTestimonial(ctx, rec); err != nil {
		metrics.Submissions.WithLabelValues("error").Inc()
		s.logger.Error("failed to create testimonial", zap.Error(err))
		return nil, err
	}
	metrics.Submissions.WithLabelValues("created").Inc()
	s.logger.Info("testimonial submitted", zap.String("id", rec.ID.String()), zap.Int("rating", rec.Rating))

	if s.notifier != nil {
		s.notifier.NotifyTestimonialSubmitted(ctx, rec)
	}
	return rec, nil
}

// Approved returns the publicly visible testimonials, newest first.
func (s *Service) Approved(ctx context.Context) ([]models.Testimonial, error) {
	return s.store.ListTestimonialsByStatus(ctx, models.StatusApproved)
}

// Get returns a single testimonial.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Testimonial, error) {
	return s.store.GetTestimonialByID(ctx, id)
}

// Board is the admin dashboard view of the collection.
type Board struct {
	Filter moderation.Filter
	Items  []models.Testimonial
	Counts map[string]int
	Tabs   []moderation.Tab
	Total  int
}

// Moderate reads the full collection and applies f to it.
func (s *Service) Moderate(ctx context.Context, f moderation.Filter) (*Board, error) {
	all, err := s.store.ListTestimonials(ctx)
	if err != nil {
		return nil, err
	}
	counts := moderation.Counts(all)
	return &Board{
		Filter: f,
		Items:  moderation.Apply(all, f),
		Counts: counts,
		Tabs:   moderation.Tabs(f, counts),
		Total:  len(all),
	}, nil
}

// UpdateStatus moves a testimonial to status.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error {
	if !status.Valid() {
		metrics.ModerationActions.WithLabelValues("status", "invalid").Inc()
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	err := s.store.UpdateTestimonialStatus(ctx, id, status)
	s.record("status", id, err, zap.String("status", string(status)))
	return err
}

// SetCertification sets the certified badge of a testimonial.
func (s *Service) SetCertification(ctx context.Context, id uuid.UUID, certified bool) error {
	err := s.store.SetTestimonialCertification(ctx, id, certified)
	s.record("certify", id, err, zap.Bool("certified", certified))
	return err
}

// ToggleCertification sets the certified badge to the opposite of current,
// the value the caller last saw, and returns the new value.
func (s *Service) ToggleCertification(ctx context.Context, id uuid.UUID, current bool) (bool, error) {
	next := !current
	if err := s.SetCertification(ctx, id, next); err != nil {
		return current, err
	}
	return next, nil
}

// ToggleStoredCertification flips the certified badge based on the stored value.
func (s *Service) ToggleStoredCertification(ctx context.Context, id uuid.UUID) (bool, error) {
	rec, err := s.store.GetTestimonialByID(ctx, id)
	if err != nil {
		s.record("certify", id, err)
		return false, err
	}
	return s.ToggleCertification(ctx, id, rec.IsCertified)
}

// Delete removes a testimonial permanently.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.store.DeleteTestimonial(ctx, id)
	s.record("delete", id, err)
	return err
}

func (s *Service) record(action string, id uuid.UUID, err error, fields ...zap.Field) {
	metrics.ModerationActions.WithLabelValues(action, metrics.Outcome(err)).Inc()
	fields = append(fields, zap.String("action", action), zap.String("id", id.String()))
	if err != nil {
		s.logger.Warn("moderation action failed", append(fields, zap.Error(err))...)
		return
	}
	s.logger.Info("moderation action", fields...)
}
