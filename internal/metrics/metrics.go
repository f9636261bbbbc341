package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"testimonials/internal/models"
)

var (
	testimonialsDesc = prometheus.NewDesc(
		"testimonials_records",
		"Current number of testimonials by moderation status",
		[]string{"status"},
		nil,
	)

	// Submissions counts submission attempts by outcome (created, invalid, error).
	Submissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "testimonials_submissions_total",
		Help: "Testimonial submissions by outcome",
	}, []string{"outcome"})

	// ModerationActions counts admin mutations by action and outcome.
	ModerationActions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "testimonials_moderation_actions_total",
		Help: "Moderation actions by action and outcome",
	}, []string{"action", "outcome"})

	// LoginAttempts counts admin login attempts by outcome.
	LoginAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "testimonials_login_attempts_total",
		Help: "Admin login attempts by outcome",
	}, []string{"outcome"})
)

// Counter is the subset of the record store the collector reads.
type Counter interface {
	CountTestimonialsByStatus(ctx context.Context) (map[models.Status]int, error)
}

// TestimonialCollector is a custom Prometheus collector that reads the
// per-status testimonial counts from the store on each scrape.
type TestimonialCollector struct {
	store   Counter
	logger  *zap.Logger
	timeout time.Duration
}

// NewTestimonialCollector creates a collector over store.
func NewTestimonialCollector(store Counter, logger *zap.Logger) *TestimonialCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TestimonialCollector{store: store, logger: logger, timeout: 5 * time.Second}
}

// Describe sends the metric descriptor to the channel.
func (c *TestimonialCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- testimonialsDesc
}

// Collect queries the store and emits one gauge per status.
func (c *TestimonialCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	counts, err := c.store.CountTestimonialsByStatus(ctx)
	if err != nil {
		c.logger.Error("failed to collect testimonial metrics", zap.Error(err))
		return
	}
	for _, status := range models.Statuses {
		ch <- prometheus.MustNewConstMetric(
			testimonialsDesc,
			prometheus.GaugeValue,
			float64(counts[status]),
			string(status),
		)
	}
}

var initOnce sync.Once

// Init registers the collector and counters with the default registry.
// Must be called once at startup; later calls are no-ops.
func Init(store Counter, logger *zap.Logger) {
	initOnce.Do(func() {
		prometheus.MustRegister(
			NewTestimonialCollector(store, logger),
			Submissions,
			ModerationActions,
			LoginAttempts,
		)
	})
}

// Outcome maps an error to a counter label.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// LoginOutcome maps a gate result to a LoginAttempts label.
func LoginOutcome(ok bool, err error) string {
	switch {
	case err != nil:
		return "error"
	case ok:
		return "ok"
	default:
		return "denied"
	}
}
