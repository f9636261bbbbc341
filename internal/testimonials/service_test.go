package testimonials

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testimonials/internal/models"
	"testimonials/internal/moderation"
	"testimonials/internal/store"
	"testimonials/internal/testutil"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type captureNotifier struct {
	mu   sync.Mutex
	recs []*models.Testimonial
}

func (c *captureNotifier) NotifyTestimonialSubmitted(_ context.Context, t *models.Testimonial) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recs = append(c.recs, t)
}

func newTestService(t *testing.T) (*Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory(store.WithClock(func() time.Time { return fixedNow }))
	return NewService(mem), mem
}

func submitValid(t *testing.T, svc *Service, name string) *models.Testimonial {
	t.Helper()
	rec, err := svc.Submit(context.Background(), models.Submission{
		Name:    name,
		Message: "Great service overall",
		Rating:  5,
	})
	require.NoError(t, err)
	return rec
}

func TestSubmit_JeanScenario(t *testing.T) {
	svc, mem := newTestService(t)
	notifier := &captureNotifier{}
	svc = NewService(mem, WithNotifier(notifier))

	rec, err := svc.Submit(context.Background(), models.Submission{
		Name:    "Jean",
		Message: "Great service overall",
		Rating:  5,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, models.StatusPending, rec.Status)
	assert.False(t, rec.IsCertified)
	assert.True(t, rec.CreatedAt.Equal(fixedNow))

	stored, err := mem.GetTestimonialByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jean", stored.Name)
	assert.Equal(t, models.StatusPending, stored.Status)

	require.Len(t, notifier.recs, 1)
	assert.Equal(t, rec.ID, notifier.recs[0].ID)
}

func TestSubmit_DefaultsRating(t *testing.T) {
	svc, _ := newTestService(t)

	rec, err := svc.Submit(context.Background(), models.Submission{Name: "Ana", Message: "Lovely team to work with"})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultRating, rec.Rating)
}

func TestSubmit_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		in     models.Submission
		fields []string
	}{
		{"blank name", models.Submission{Name: "   ", Message: "Great service overall"}, []string{"name"}},
		{"short message", models.Submission{Name: "Jean", Message: "  too short "}, []string{"message"}},
		{"bad rating", models.Submission{Name: "Jean", Message: "Great service overall", Rating: 7}, []string{"rating"}},
		{"everything", models.Submission{Email: "nope"}, []string{"email", "message", "name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mem := newTestService(t)

			rec, err := svc.Submit(context.Background(), tt.in)
			assert.Nil(t, rec)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.False(t, verr.Result.Valid)
			for _, f := range tt.fields {
				assert.Contains(t, verr.Result.FieldErrors, f)
			}

			all, err := mem.ListTestimonials(context.Background())
			require.NoError(t, err)
			assert.Empty(t, all, "store must not be called for invalid input")
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{}
	err.Result.FieldErrors = map[string]string{"name": "x", "message": "y"}
	assert.Equal(t, "invalid submission: message, name", err.Error())
}

func TestApproveThenPublic(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	rec := submitValid(t, svc, "Jean")

	public, err := svc.Approved(ctx)
	require.NoError(t, err)
	assert.Empty(t, public)

	require.NoError(t, svc.UpdateStatus(ctx, rec.ID, models.StatusApproved))

	public, err = svc.Approved(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, rec.ID, public[0].ID)
}

func TestUpdateStatus_Invalid(t *testing.T) {
	svc, _ := newTestService(t)
	rec := submitValid(t, svc, "Jean")

	err := svc.UpdateStatus(context.Background(), rec.ID, models.Status("archived"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeleteThenUpdateFails(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()
	rec := submitValid(t, svc, "Jean")

	require.NoError(t, svc.Delete(ctx, rec.ID))

	all, err := mem.ListTestimonials(ctx)
	require.NoError(t, err)
	for _, r := range all {
		assert.NotEqual(t, rec.ID, r.ID)
	}

	err = svc.UpdateStatus(ctx, rec.ID, models.StatusApproved)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
	var serr *store.Error
	assert.True(t, errors.As(err, &serr))
}

func TestToggleCertificationTwice(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()
	rec := submitValid(t, svc, "Jean")

	next, err := svc.ToggleCertification(ctx, rec.ID, false)
	require.NoError(t, err)
	assert.True(t, next)
	got, _ := mem.GetTestimonialByID(ctx, rec.ID)
	assert.True(t, got.IsCertified)

	next, err = svc.ToggleCertification(ctx, rec.ID, next)
	require.NoError(t, err)
	assert.False(t, next)
	got, _ = mem.GetTestimonialByID(ctx, rec.ID)
	assert.False(t, got.IsCertified)
}

func TestToggleStoredCertification(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	rec := submitValid(t, svc, "Jean")

	next, err := svc.ToggleStoredCertification(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, next)

	next, err = svc.ToggleStoredCertification(ctx, rec.ID)
	require.NoError(t, err)
	assert.False(t, next)

	_, err = svc.ToggleStoredCertification(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestModerate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	a := submitValid(t, svc, "Alice")
	submitValid(t, svc, "Bob")
	require.NoError(t, svc.UpdateStatus(ctx, a.ID, models.StatusApproved))

	board, err := svc.Moderate(ctx, moderation.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, 2, board.Total)
	require.Len(t, board.Items, 1)
	assert.Equal(t, "Bob", board.Items[0].Name)
	assert.Equal(t, 1, board.Counts[string(models.StatusApproved)])
	assert.Equal(t, 1, board.Counts[string(models.StatusPending)])
	assert.Len(t, board.Tabs, 4)

	board, err = svc.Moderate(ctx, moderation.ParseFilter("all", "ALI", ""))
	require.NoError(t, err)
	require.Len(t, board.Items, 1)
	assert.Equal(t, "Alice", board.Items[0].Name)
}

func TestModerate_SortByDate(t *testing.T) {
	mem := store.NewMemory(store.WithClock(testutil.StepClock(fixedNow, time.Minute)))
	svc := NewService(mem)
	ctx := context.Background()
	for _, name := range []string{"first", "second", "third"} {
		submitValid(t, svc, name)
	}

	names := func(sortKey string) []string {
		board, err := svc.Moderate(ctx, moderation.ParseFilter("pending", "", sortKey))
		require.NoError(t, err)
		out := make([]string, 0, len(board.Items))
		for _, r := range board.Items {
			out = append(out, r.Name)
		}
		return out
	}

	assert.Equal(t, []string{"third", "second", "first"}, names("date_desc"))
	assert.Equal(t, []string{"first", "second", "third"}, names("date_asc"))
}
