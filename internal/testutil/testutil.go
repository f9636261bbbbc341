// Package testutil provides test utilities and helpers.
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"testimonials/internal/models"
	"testimonials/internal/store"
)

// Testimonial builds a valid record with the given name and status, created
// age ago.
func Testimonial(name string, status models.Status, age time.Duration) models.Testimonial {
	return models.Testimonial{
		ID:        uuid.New(),
		Name:      name,
		Email:     "test@example.com",
		Message:   "Great service overall, thank you",
		Rating:    5,
		Status:    status,
		CreatedAt: time.Now().UTC().Add(-age),
	}
}

// MemoryStore returns an in-memory store seeded with records.
func MemoryStore(t *testing.T, records ...models.Testimonial) *store.Memory {
	t.Helper()
	mem := store.NewMemory()
	mem.Seed(records...)
	return mem
}

// StepClock returns a clock that starts at start and advances by step on
// every call, giving each created record a distinct timestamp.
func StepClock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(step)
		return now
	}
}
