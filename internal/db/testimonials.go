package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"testimonials/internal/models"
	"testimonials/internal/store"
)

// testimonialColumns is the standard column list for testimonial queries.
const testimonialColumns = `id, name, COALESCE(brand_name, ''), COALESCE(email, ''), message, rating,
	created_at, status, is_certified`

// scanTestimonial scans a row into a Testimonial struct.
func scanTestimonial(row pgx.Row) (*models.Testimonial, error) {
	var t models.Testimonial
	var status string
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.BrandName,
		&t.Email,
		&t.Message,
		&t.Rating,
		&t.CreatedAt,
		&status,
		&t.IsCertified,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	t.Status = models.Status(status)
	return &t, nil
}

// scanTestimonials scans multiple rows into a slice of Testimonials.
func scanTestimonials(rows pgx.Rows) ([]models.Testimonial, error) {
	defer rows.Close()

	testimonials := []models.Testimonial{}
	for rows.Next() {
		var t models.Testimonial
		var status string
		if err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.BrandName,
			&t.Email,
			&t.Message,
			&t.Rating,
			&t.CreatedAt,
			&status,
			&t.IsCertified,
		); err != nil {
			return nil, err
		}
		t.Status = models.Status(status)
		testimonials = append(testimonials, t)
	}

	return testimonials, rows.Err()
}

// ListTestimonials retrieves every testimonial, newest first.
func (d *DB) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	query := `SELECT ` + testimonialColumns + ` FROM testimonials ORDER BY created_at DESC`
	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, store.Wrap("list testimonials", err)
	}
	list, err := scanTestimonials(rows)
	return list, store.Wrap("list testimonials", err)
}

// ListTestimonialsByStatus retrieves testimonials in one status, newest first.
func (d *DB) ListTestimonialsByStatus(ctx context.Context, status models.Status) ([]models.Testimonial, error) {
	query := `
		SELECT ` + testimonialColumns + `
		FROM testimonials
		WHERE status = $1
		ORDER BY created_at DESC
	`
	rows, err := d.Pool.Query(ctx, query, string(status))
	if err != nil {
		return nil, store.Wrap("list testimonials by status", err)
	}
	list, err := scanTestimonials(rows)
	return list, store.Wrap("list testimonials by status", err)
}

// GetTestimonialByID retrieves a testimonial by its ID.
func (d *DB) GetTestimonialByID(ctx context.Context, id uuid.UUID) (*models.Testimonial, error) {
	query := `SELECT ` + testimonialColumns + ` FROM testimonials WHERE id = $1`
	t, err := scanTestimonial(d.Pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, store.Wrap("get testimonial", err)
	}
	return t, nil
}

// CreateTestimonial inserts a new pending testimonial. Only visitor-supplied
// fields are taken from t; id, status and certification are forced.
func (d *DB) CreateTestimonial(ctx context.Context, t *models.Testimonial) error {
	query := `
		INSERT INTO testimonials (id, name, brand_name, email, message, rating, status, is_certified)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8)
		RETURNING created_at
	`

	store.PrepareCreate(t, time.Now())

	err := d.Pool.QueryRow(ctx, query,
		t.ID,
		t.Name,
		t.BrandName,
		t.Email,
		t.Message,
		t.Rating,
		string(t.Status),
		t.IsCertified,
	).Scan(&t.CreatedAt)

	return store.Wrap("create testimonial", err)
}

// UpdateTestimonialStatus sets the moderation status of a testimonial.
func (d *DB) UpdateTestimonialStatus(ctx context.Context, id uuid.UUID, status models.Status) error {
	query := `UPDATE testimonials SET status = $1 WHERE id = $2`
	result, err := d.Pool.Exec(ctx, query, string(status), id)
	if err != nil {
		return store.Wrap("update testimonial status", err)
	}
	if result.RowsAffected() == 0 {
		return store.NotFound("update testimonial status")
	}
	return nil
}

// SetTestimonialCertification sets the certified badge of a testimonial.
func (d *DB) SetTestimonialCertification(ctx context.Context, id uuid.UUID, certified bool) error {
	query := `UPDATE testimonials SET is_certified = $1 WHERE id = $2`
	result, err := d.Pool.Exec(ctx, query, certified, id)
	if err != nil {
		return store.Wrap("set testimonial certification", err)
	}
	if result.RowsAffected() == 0 {
		return store.NotFound("set testimonial certification")
	}
	return nil
}

// DeleteTestimonial permanently removes a testimonial.
func (d *DB) DeleteTestimonial(ctx context.Context, id uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return store.Wrap("delete testimonial", err)
	}
	if result.RowsAffected() == 0 {
		return store.NotFound("delete testimonial")
	}
	return nil
}

// CountTestimonialsByStatus returns the number of testimonials per status.
func (d *DB) CountTestimonialsByStatus(ctx context.Context) (map[models.Status]int, error) {
	rows, err := d.Pool.Query(ctx, `SELECT status, COUNT(*) FROM testimonials GROUP BY status`)
	if err != nil {
		return nil, store.Wrap("count testimonials", err)
	}
	defer rows.Close()

	counts := make(map[models.Status]int, len(models.Statuses))
	for _, s := range models.Statuses {
		counts[s] = 0
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, store.Wrap("count testimonials", err)
		}
		counts[models.Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, store.Wrap("count testimonials", err)
	}
	return counts, nil
}

var _ store.Store = (*DB)(nil)
