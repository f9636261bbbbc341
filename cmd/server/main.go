package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"testimonials/internal/config"
	"testimonials/internal/logger"
)

var (
	cfg     *config.Config
	yamlCfg *config.YAMLConfig
	log     *zap.Logger
)

// rootCmd runs the web server when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:           "testimonials",
	Short:         "Testimonial collection and moderation server",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()

		var err error
		yamlCfg, err = config.LoadYAMLConfig()
		if err != nil {
			return fmt.Errorf("failed to load config file: %w", err)
		}
		yamlCfg.ApplyBranding(cfg)

		log, err = logger.New(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if log != nil {
			log.Error("command failed", zap.Error(err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
