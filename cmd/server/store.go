package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"testimonials/internal/auth"
	"testimonials/internal/config"
	"testimonials/internal/db"
	"testimonials/internal/store"
)

// openStore connects the configured backend. The returned *db.DB is nil for
// the memory store; callers close it when set.
func openStore(ctx context.Context) (store.Store, *db.DB, error) {
	if cfg.StoreBackend() == config.StoreMemory {
		mem := store.NewMemory()
		seeds := yamlCfg.SeedTestimonials(time.Now())
		mem.Seed(seeds...)
		log.Info("using in-memory store", zap.Int("seeded", len(seeds)))
		return mem, nil, nil
	}

	database, err := openDatabase(ctx)
	if err != nil {
		return nil, nil, err
	}

	if cfg.SeedOnStart {
		if err := database.SeedTestimonials(ctx, yamlCfg.SeedTestimonials(time.Now())); err != nil {
			database.Close()
			return nil, nil, err
		}
		log.Info("seed testimonials loaded")
	}

	return database, database, nil
}

// openDatabase connects to Postgres and applies pending migrations.
func openDatabase(ctx context.Context) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required for the postgres store")
	}

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("migrations completed successfully")

	return database, nil
}

// secretSource picks where the admin password is checked.
func secretSource(database *db.DB) auth.SecretSource {
	if cfg.AdminSecretSource == config.SecretSourceDatabase {
		if database != nil {
			log.Info("admin secret source: database")
			return database
		}
		log.Warn("admin secret source database needs the postgres store, falling back to static password")
	}
	return auth.StaticSecret(cfg.AdminPassword)
}
