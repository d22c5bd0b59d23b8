// Package scheduler periodically re-syncs records and slot freshness so
// staleness is noticed even when no consumer is polling.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Syncer re-reads records and brings the weather slots in line.
type Syncer interface {
	Sync(ctx context.Context) error
}

// Scheduler runs the periodic sync job.
type Scheduler struct {
	scheduler *gocron.Scheduler
	syncer    Syncer
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a Scheduler that syncs every interval, bounding each run by
// timeout.
func New(syncer Syncer, interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		syncer:    syncer,
		interval:  interval,
		timeout:   timeout,
		logger:    logger,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.syncer.Sync(ctx); err != nil {
			s.logger.Error("scheduled sync failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("sync scheduler started", "interval", s.interval)
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
