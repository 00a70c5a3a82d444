package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/davide/animerge/internal/sources"
)

// Monitor periodically health-checks every registered source and logs state
// transitions, so a scraper broken by a markup change shows up in the logs
// before users notice empty results.
type Monitor struct {
	registry     *sources.Registry
	interval     time.Duration
	checkTimeout time.Duration
	logger       *slog.Logger
	stopCh       chan struct{}

	mu      sync.Mutex
	healthy map[string]bool
}

type MonitorConfig struct {
	Interval     time.Duration
	CheckTimeout time.Duration
}

func NewMonitor(registry *sources.Registry, cfg MonitorConfig, logger *slog.Logger) *Monitor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Minute
	}
	if cfg.CheckTimeout <= 0 {
		cfg.CheckTimeout = 15 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Monitor{
		registry:     registry,
		interval:     cfg.Interval,
		checkTimeout: cfg.CheckTimeout,
		logger:       logger,
		stopCh:       make(chan struct{}),
		healthy:      map[string]bool{},
	}
}

func (m *Monitor) Start(ctx context.Context) {
	m.logger.Info("source monitor started", "interval", m.interval.String())
	ticker := time.NewTicker(m.interval)
	go func() {
		defer ticker.Stop()
		if err := m.RunOnce(ctx); err != nil {
			m.logger.Warn("monitor initial run failed", "error", err)
		}
		for {
			select {
			case <-ctx.Done():
				m.logger.Info("source monitor stopped")
				close(m.stopCh)
				return
			case <-ticker.C:
				if err := m.RunOnce(ctx); err != nil {
					m.logger.Warn("monitor cycle failed", "error", err)
				}
			}
		}
	}()
}

func (m *Monitor) StopWait(timeout time.Duration) {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	select {
	case <-m.stopCh:
	case <-time.After(timeout):
	}
}

// RunOnce checks every source and logs each transition between healthy and
// unhealthy. It errors only when every source failed its check.
func (m *Monitor) RunOnce(ctx context.Context) error {
	checkCtx, cancel := context.WithTimeout(ctx, m.checkTimeout)
	defer cancel()

	statuses := m.registry.Health(checkCtx)
	if len(statuses) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	unhealthy := 0
	for _, status := range statuses {
		wasHealthy, known := m.healthy[status.Key]
		m.healthy[status.Key] = status.Healthy

		switch {
		case !status.Healthy:
			unhealthy++
			m.logger.Warn("source unhealthy", "source", status.Key, "error", status.Error)
		case known && !wasHealthy:
			m.logger.Info("source recovered", "source", status.Key)
		}
	}

	if unhealthy == len(statuses) {
		return fmt.Errorf("all %d sources unhealthy", len(statuses))
	}
	return nil
}

// Snapshot returns the last observed health per source key.
func (m *Monitor) Snapshot() map[string]bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make(map[string]bool, len(m.healthy))
	for key, healthy := range m.healthy {
		snapshot[key] = healthy
	}
	return snapshot
}
