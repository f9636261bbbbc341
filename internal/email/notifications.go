package email

import (
	"context"

	"go.uber.org/zap"

	"testimonials/internal/config"
	"testimonials/internal/models"
)

// Mailer delivers rendered messages. *Service satisfies it.
type Mailer interface {
	IsEnabled() bool
	Send(to []string, subject, htmlBody, textBody string) error
	SendAsync(to []string, subject, htmlBody, textBody string)
}

// Notifier sends the admin notifications for testimonial events.
type Notifier struct {
	mailer    Mailer
	templates *Templates
	cfg       *config.Config
	logger    *zap.Logger
}

// NewNotifier creates a notifier backed by an SMTP Service.
func NewNotifier(cfg *config.Config, logger *zap.Logger) *Notifier {
	return NewNotifierWithMailer(cfg, NewService(cfg, logger), logger)
}

// NewNotifierWithMailer creates a notifier that delivers through mailer.
func NewNotifierWithMailer(cfg *config.Config, mailer Mailer, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		mailer:    mailer,
		templates: NewTemplates(cfg),
		cfg:       cfg,
		logger:    logger,
	}
}

// IsEnabled reports whether notifications can be delivered at all.
func (n *Notifier) IsEnabled() bool {
	return n.mailer.IsEnabled() && n.cfg.AdminEmail != ""
}

// NotifyTestimonialSubmitted tells the administrator that a new testimonial
// is waiting for review. Delivery happens in the background.
func (n *Notifier) NotifyTestimonialSubmitted(ctx context.Context, t *models.Testimonial) {
	if !n.IsEnabled() || t == nil {
		return
	}

	subject, htmlBody, textBody := n.templates.TestimonialSubmitted(t)
	n.mailer.SendAsync([]string{n.cfg.AdminEmail}, subject, htmlBody, textBody)
}

// NotifyPendingDigest sends a summary of the testimonials still awaiting
// review. Nothing is sent when pending is empty.
func (n *Notifier) NotifyPendingDigest(ctx context.Context, pending []models.Testimonial) error {
	if !n.IsEnabled() || len(pending) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	subject, htmlBody, textBody := n.templates.PendingDigest(pending)
	if err := n.mailer.Send([]string{n.cfg.AdminEmail}, subject, htmlBody, textBody); err != nil {
		return err
	}
	n.logger.Info("pending digest sent", zap.Int("pending", len(pending)))
	return nil
}
