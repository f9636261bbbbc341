package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"testimonials/internal/auth"
	"testimonials/internal/email"
	"testimonials/internal/jobs"
	"testimonials/internal/metrics"
	"testimonials/internal/server"
	"testimonials/internal/testimonials"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, database, err := openStore(ctx)
	if err != nil {
		return err
	}
	if database != nil {
		defer database.Close()
	}

	gate := auth.NewGate(secretSource(database))
	metrics.Init(st, log)

	mailer := email.NewService(cfg, log)
	notifier := email.NewNotifierWithMailer(cfg, mailer, log)
	if !notifier.IsEnabled() {
		log.Info("email notifications disabled")
	}

	svc := testimonials.NewService(st,
		testimonials.WithNotifier(notifier),
		testimonials.WithLogger(log),
	)

	srv, err := server.New(cfg, log)
	if err != nil {
		return err
	}
	srv.RegisterRoutes(server.Deps{Store: st, Service: svc, Gate: gate})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Start()
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		return srv.Shutdown()
	})

	if cfg.IsDigestEnabled() {
		digest := jobs.NewPendingDigest(st, notifier, cfg.DigestInterval, log)
		g.Go(func() error {
			digest.Start(gctx)
			return nil
		})
	}

	err = g.Wait()
	mailer.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info("server exited")
	return nil
}
