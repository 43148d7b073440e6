package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	api "github.com/mind-engage/mindengage-seminar/internal/api/http"
	"github.com/mind-engage/mindengage-seminar/internal/assessment"
	"github.com/mind-engage/mindengage-seminar/internal/certificate"
	"github.com/mind-engage/mindengage-seminar/internal/config"
	"github.com/mind-engage/mindengage-seminar/internal/logger"
	"github.com/mind-engage/mindengage-seminar/internal/session"
	"github.com/mind-engage/mindengage-seminar/internal/storage"
)

func newServeCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web questionnaire and certificate endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *cfgPath)
		},
	}
}

func runServe(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return exitError(exitInput, "config: %v", err)
	}
	log, err := logger.NewStructured(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return exitError(exitInput, "logger: %v", err)
	}
	defer func() { _ = log.Sync() }()

	assets, err := storage.NewFSStore(cfg.AssetsDir)
	if err != nil {
		return exitError(exitInput, "assets: %v", err)
	}
	renderer, err := certificate.NewRenderer(cfg.Render, assets, log)
	if err != nil {
		return exitError(exitInput, "certificate config: %v", err)
	}
	if err := renderer.TemplateAvailable(); err != nil {
		// keep serving; /readyz reports the problem
		log.WithError(err).Warn("certificate template unavailable", map[string]interface{}{
			"path": assets.Resolve(cfg.Render.TemplatePath),
		})
	}
	sessions, err := session.NewManager(session.Options{
		Secret: cfg.SessionSecret,
		TTL:    cfg.SessionTTL,
		Secure: cfg.CookieSecure,
	})
	if err != nil {
		return exitError(exitInput, "session: %v", err)
	}

	h := api.Routes(&api.Server{
		Questionnaire: assessment.Default(),
		Renderer:      renderer,
		Sessions:      sessions,
		Assets:        assets,
		TemplatePath:  cfg.Render.TemplatePath,
		Log:           log,
		CORSOrigins:   cfg.CORSOrigins,
	})
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", map[string]interface{}{
			"addr": cfg.HTTPAddr,
			"mode": string(cfg.Mode),
		})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
