package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/davide/animerge/internal/config"
	"github.com/davide/animerge/internal/sources/defaults"
)

// sources-check runs one health pass over the configured registry and prints
// a line per source. Exit code 1 when any source is down, for use in cron or
// deploy gates.
func main() {
	var timeoutSeconds int
	flag.IntVar(&timeoutSeconds, "timeout", 15, "Per-run health check timeout in seconds.")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn})
	slog.SetDefault(slog.New(handler))

	registry, registryErr := defaults.NewRegistry(cfg.YAMLSourcesPath)
	if registryErr != nil {
		slog.Warn("source registry loaded with warnings", "error", registryErr)
	}

	if timeoutSeconds <= 0 {
		timeoutSeconds = 15
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	statuses := registry.Health(ctx)
	failed := 0
	for _, status := range statuses {
		if status.Healthy {
			fmt.Printf("ok    %-16s %s\n", status.Key, status.Name)
			continue
		}
		failed++
		fmt.Printf("down  %-16s %s: %s\n", status.Key, status.Name, status.Error)
	}

	fmt.Printf("%d/%d sources healthy\n", len(statuses)-failed, len(statuses))
	if failed > 0 {
		os.Exit(1)
	}
}
