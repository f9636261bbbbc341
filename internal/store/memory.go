package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"testimonials/internal/models"
)

// Memory is a Store kept in process memory. It backs development runs without
// a database and the handler tests.
type Memory struct {
	mu    sync.RWMutex
	items []models.Testimonial
	now   func() time.Time
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithClock overrides the clock used to stamp new testimonials.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.now = now
	}
}

// NewMemory creates an empty in-memory store.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Seed inserts records as-is, assigning ids and timestamps only where missing.
// Records whose id already exists are skipped.
func (m *Memory) Seed(records ...models.Testimonial) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range records {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = m.now().UTC()
		}
		if !r.Status.Valid() {
			r.Status = models.StatusPending
		}
		if m.indexOf(r.ID) >= 0 {
			continue
		}
		m.items = append(m.items, r)
	}
}

// indexOf must be called with the lock held.
func (m *Memory) indexOf(id uuid.UUID) int {
	for i := range m.items {
		if m.items[i].ID == id {
			return i
		}
	}
	return -1
}

// snapshot copies matching items newest first; must be called with the lock held.
func (m *Memory) snapshot(keep func(*models.Testimonial) bool) []models.Testimonial {
	out := make([]models.Testimonial, 0, len(m.items))
	for i := len(m.items) - 1; i >= 0; i-- {
		if keep == nil || keep(&m.items[i]) {
			out = append(out, m.items[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (m *Memory) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	if err := ctx.Err(); err != nil {
		return nil, Wrap("list testimonials", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot(nil), nil
}

func (m *Memory) ListTestimonialsByStatus(ctx context.Context, status models.Status) ([]models.Testimonial, error) {
	if err := ctx.Err(); err != nil {
		return nil, Wrap("list testimonials by status", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot(func(t *models.Testimonial) bool { return t.Status == status }), nil
}

func (m *Memory) GetTestimonialByID(ctx context.Context, id uuid.UUID) (*models.Testimonial, error) {
	if err := ctx.Err(); err != nil {
		return nil, Wrap("get testimonial", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, NotFound("get testimonial")
	}
	t := m.items[i]
	return &t, nil
}

func (m *Memory) CreateTestimonial(ctx context.Context, t *models.Testimonial) error {
	if err := ctx.Err(); err != nil {
		return Wrap("create testimonial", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	PrepareCreate(t, m.now())
	m.items = append(m.items, *t)
	return nil
}

func (m *Memory) UpdateTestimonialStatus(ctx context.Context, id uuid.UUID, status models.Status) error {
	return m.mutate(ctx, "update testimonial status", id, func(t *models.Testimonial) {
		t.Status = status
	})
}

func (m *Memory) SetTestimonialCertification(ctx context.Context, id uuid.UUID, certified bool) error {
	return m.mutate(ctx, "set testimonial certification", id, func(t *models.Testimonial) {
		t.IsCertified = certified
	})
}

func (m *Memory) mutate(ctx context.Context, op string, id uuid.UUID, fn func(*models.Testimonial)) error {
	if err := ctx.Err(); err != nil {
		return Wrap(op, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return NotFound(op)
	}
	fn(&m.items[i])
	return nil
}

func (m *Memory) DeleteTestimonial(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return Wrap("delete testimonial", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return NotFound("delete testimonial")
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}

func (m *Memory) CountTestimonialsByStatus(ctx context.Context) (map[models.Status]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, Wrap("count testimonials", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[models.Status]int, len(models.Statuses))
	for _, s := range models.Statuses {
		counts[s] = 0
	}
	for i := range m.items {
		counts[m.items[i].Status]++
	}
	return counts, nil
}

// Ping always succeeds for the memory store.
func (m *Memory) Ping(ctx context.Context) error {
	return ctx.Err()
}

var _ Store = (*Memory)(nil)
