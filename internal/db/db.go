package db

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"testimonials/internal/models"
	"testimonials/migrations"
)

// DB wraps a pgxpool connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// RunMigrations runs all embedded SQL migrations.
func (d *DB) RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// Ping checks the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// SeedTestimonials inserts seed testimonials verbatim. Rows whose id already
// exists are left alone, so seeding is safe to repeat.
func (d *DB) SeedTestimonials(ctx context.Context, records []models.Testimonial) error {
	query := `
		INSERT INTO testimonials (id, name, brand_name, email, message, rating, created_at, status, is_certified)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`

	for _, r := range records {
		if _, err := d.Pool.Exec(ctx, query,
			r.ID,
			r.Name,
			r.BrandName,
			r.Email,
			r.Message,
			r.Rating,
			r.CreatedAt,
			string(r.Status),
			r.IsCertified,
		); err != nil {
			return fmt.Errorf("failed to seed testimonial %s: %w", r.Name, err)
		}
	}

	return nil
}

// AddAdminSecret stores a shared admin password for the database-backed gate.
func (d *DB) AddAdminSecret(ctx context.Context, password string) error {
	_, err := d.Pool.Exec(ctx, `INSERT INTO admin_secrets (password) VALUES ($1) ON CONFLICT DO NOTHING`, password)
	return err
}

// MatchSecret reports whether a row in admin_secrets equals secret exactly.
func (d *DB) MatchSecret(ctx context.Context, secret string) (bool, error) {
	var ok bool
	err := d.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM admin_secrets WHERE password = $1)`, secret).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("failed to look up admin secret: %w", err)
	}
	return ok, nil
}
