package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davide/animerge/internal/config"
	apihttp "github.com/davide/animerge/internal/http"
	"github.com/davide/animerge/internal/scheduler"
	"github.com/davide/animerge/internal/sources/defaults"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	registry, registryErr := defaults.NewRegistry(cfg.YAMLSourcesPath)
	if registryErr != nil {
		slog.Warn("source registry loaded with warnings", "error", registryErr)
	}

	app := apihttp.NewServer(cfg, registry, logger)

	monitorCtx, monitorCancel := context.WithCancel(context.Background())
	monitor := scheduler.NewMonitor(
		registry,
		scheduler.MonitorConfig{Interval: time.Duration(cfg.MonitorMinutes) * time.Minute},
		logger,
	)
	if cfg.MonitorEnabled {
		monitor.Start(monitorCtx)
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server stopped", "error", err)
		}
	}()

	slog.Info("api started", "port", cfg.Port, "env", cfg.Environment, "sources", len(registry.List()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Info("shutting down server")
	monitorCancel()
	if cfg.MonitorEnabled {
		monitor.StopWait(2 * time.Second)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
