/**
 * @description
 * Cron scheduler setup for scheduled jobs.
 */
package app

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron     *cron.Cron
	jobs     *Jobs
	logger   *slog.Logger
	schedule string
}

// NewScheduler creates a new scheduler instance. An empty schedule disables
// the sweep entirely, which is the default: client status checks then stay
// the only expiry trigger.
func NewScheduler(jobs *Jobs, logger *slog.Logger, schedule string) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))

	return &Scheduler{
		cron:     c,
		jobs:     jobs,
		logger:   logger,
		schedule: schedule,
	}
}

// Start registers the jobs and starts the cron scheduler.
func (s *Scheduler) Start() {
	if s.schedule == "" {
		s.logger.Info("expiry sweep disabled, relying on lazy expiry only")
		return
	}

	if _, err := s.cron.AddFunc(s.schedule, s.jobs.SweepExpiredSubscriptions); err != nil {
		s.logger.Error("failed to schedule expiry sweep", "schedule", s.schedule, "error", err)
		return
	}
	s.logger.Info("scheduled expiry sweep", "schedule", s.schedule)
	s.cron.Start()
}

// Stop gracefully stops the cron scheduler.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
