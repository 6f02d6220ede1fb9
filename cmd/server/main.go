package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"facilities/internal/app"
	"facilities/internal/platform/config"
	"facilities/internal/platform/httpserver"
	"facilities/internal/platform/logger"
	"facilities/internal/platform/metrics"
	reloadhandler "facilities/internal/reload/handler"
	reloadmetrics "facilities/internal/reload/metrics"
	httptransport "facilities/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, closeLog, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, log, app.WithMetrics(reloadmetrics.New()))
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}

	router := httptransport.NewRouter(httptransport.Config{
		Logger:     log,
		Metrics:    metrics.New(),
		AdminToken: cfg.Server.AdminToken,
		Checks:     a.Checks,
		Management: []httptransport.Registrar{reloadhandler.New(a.Service, log)},
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting facilities server", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return a.Scheduler.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down facilities server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	err = g.Wait()

	closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	a.Close(closeCtx)
	return err
}
