package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"testimonials/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		database, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		database.Close()
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the seed testimonials into the database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		database, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer database.Close()

		seeds := yamlCfg.SeedTestimonials(time.Now())
		if err := database.SeedTestimonials(ctx, seeds); err != nil {
			return err
		}
		log.Info("seed testimonials inserted", zap.Int("count", len(seeds)))

		if cfg.AdminSecretSource == config.SecretSourceDatabase {
			if err := database.AddAdminSecret(ctx, cfg.AdminPassword); err != nil {
				return err
			}
			log.Info("admin secret stored")
		}
		return nil
	},
}
