// Package jobs holds the background work started alongside the HTTP server.
package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"testimonials/internal/models"
)

// PendingLister returns the testimonials in a given moderation status.
type PendingLister interface {
	ListTestimonialsByStatus(ctx context.Context, status models.Status) ([]models.Testimonial, error)
}

// DigestNotifier delivers the pending review reminder.
type DigestNotifier interface {
	NotifyPendingDigest(ctx context.Context, pending []models.Testimonial) error
}

// PendingDigest periodically reminds the administrator about testimonials
// that are still waiting for review.
type PendingDigest struct {
	store    PendingLister
	notifier DigestNotifier
	interval time.Duration
	logger   *zap.Logger
}

// NewPendingDigest creates a new digest job.
func NewPendingDigest(store PendingLister, notifier DigestNotifier, interval time.Duration, logger *zap.Logger) *PendingDigest {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PendingDigest{
		store:    store,
		notifier: notifier,
		interval: interval,
		logger:   logger.Named("pending_digest"),
	}
}

// Start runs the digest loop until ctx is cancelled. The first digest is
// sent one interval after start.
func (d *PendingDigest) Start(ctx context.Context) {
	d.logger.Info("pending digest started", zap.Duration("interval", d.interval))

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("pending digest stopped")
			return
		case <-ticker.C:
			d.RunOnce(ctx)
		}
	}
}

// RunOnce sends a single digest if anything is pending.
func (d *PendingDigest) RunOnce(ctx context.Context) {
	pending, err := d.store.ListTestimonialsByStatus(ctx, models.StatusPending)
	if err != nil {
		d.logger.Error("failed to list pending testimonials", zap.Error(err))
		return
	}

	if len(pending) == 0 {
		return
	}

	if err := d.notifier.NotifyPendingDigest(ctx, pending); err != nil {
		d.logger.Error("failed to send pending digest", zap.Int("pending", len(pending)), zap.Error(err))
	}
}
