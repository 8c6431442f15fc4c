// Package scheduler runs the periodic background jobs: quiet grid refresh,
// SSE keep-alive and diagnostic pruning.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"photoframe/logging"
)

// QuietRefresher reloads the grid without raising a failure toast.
type QuietRefresher interface {
	RefreshQuietly(ctx context.Context) error
}

// KeepAliver pings connected clients and drops the ones that went away.
type KeepAliver interface {
	KeepAlive()
}

// DiagnosticPruner removes diagnostics older than maxAge.
type DiagnosticPruner interface {
	Prune(ctx context.Context, maxAge time.Duration) (int64, error)
}

// Config controls job intervals. A zero interval disables the job.
type Config struct {
	RefreshInterval     time.Duration
	KeepAliveInterval   time.Duration
	PruneInterval       time.Duration
	DiagnosticRetention time.Duration
}

// DefaultConfig returns the production job intervals
func DefaultConfig() Config {
	return Config{
		RefreshInterval:     60 * time.Second,
		KeepAliveInterval:   30 * time.Second,
		PruneInterval:       time.Hour,
		DiagnosticRetention: 7 * 24 * time.Hour,
	}
}

// RefreshScheduler owns a gocron scheduler and the jobs registered on it.
type RefreshScheduler struct {
	cfg       Config
	refresher QuietRefresher
	keepAlive KeepAliver
	pruner    DiagnosticPruner
	logger    *logging.Logger

	mu      sync.Mutex
	cron    *gocron.Scheduler
	cancel  context.CancelFunc
	running bool
}

// NewRefreshScheduler creates a scheduler. Any collaborator may be nil, which skips its job.
func NewRefreshScheduler(cfg Config, refresher QuietRefresher, keepAlive KeepAliver, pruner DiagnosticPruner) *RefreshScheduler {
	return &RefreshScheduler{
		cfg:       cfg,
		refresher: refresher,
		keepAlive: keepAlive,
		pruner:    pruner,
		logger:    logging.Default().WithComponent("scheduler"),
	}
}

// Start registers the enabled jobs and runs them asynchronously until Stop or ctx is done.
func (s *RefreshScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	jobCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	cron := gocron.NewScheduler(time.UTC)

	jobs := []struct {
		name     string
		interval time.Duration
		enabled  bool
		run      func()
	}{
		{"refresh", s.cfg.RefreshInterval, s.refresher != nil, func() { s.runRefresh(jobCtx) }},
		{"keepalive", s.cfg.KeepAliveInterval, s.keepAlive != nil, s.runKeepAlive},
		{"prune", s.cfg.PruneInterval, s.pruner != nil && s.cfg.DiagnosticRetention > 0, func() { s.runPrune(jobCtx) }},
	}

	for _, job := range jobs {
		if !job.enabled || job.interval <= 0 {
			s.logger.Debug("Job disabled", "job", job.name)
			continue
		}
		if _, err := cron.Every(job.interval).SingletonMode().Do(job.run); err != nil {
			cancel()
			return fmt.Errorf("schedule %s job: %w", job.name, err)
		}
		s.logger.Info("Job scheduled", "job", job.name, "interval", job.interval.String())
	}

	cron.StartAsync()
	s.cron = cron
	s.cancel = cancel
	s.running = true

	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-jobCtx.Done():
		}
	}()

	return nil
}

// Stop halts all jobs. Calling Stop on a stopped scheduler is a no-op.
func (s *RefreshScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.cancel()
	s.cron.Stop()
	s.running = false
	s.logger.Info("Scheduler stopped")
}

func (s *RefreshScheduler) runRefresh(ctx context.Context) {
	start := time.Now()
	if err := s.refresher.RefreshQuietly(ctx); err != nil {
		// Already reported to diagnostics by the renderer.
		s.logger.Debug("Background refresh failed", "error", err)
		return
	}
	s.logger.Performance("background_refresh", time.Since(start))
}

func (s *RefreshScheduler) runKeepAlive() {
	s.keepAlive.KeepAlive()
}

func (s *RefreshScheduler) runPrune(ctx context.Context) {
	removed, err := s.pruner.Prune(ctx, s.cfg.DiagnosticRetention)
	if err != nil {
		s.logger.Warn("Diagnostic prune failed", "error", err)
		return
	}
	if removed > 0 {
		s.logger.Info("Pruned diagnostics", "removed", removed)
	}
}
