// Package scheduler wires up the cron job that periodically triggers a full
// ingestion run across all source adapters.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"remotehirehub/ingest-service/internal/scraper"
)

// Locker serialises runs across triggers; satisfied by scraper.RunLock.
type Locker interface {
	TryAcquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// Scheduler wraps robfig/cron and manages the periodic scrape loop.
type Scheduler struct {
	cron   *cron.Cron
	runner *scraper.Runner
	lock   Locker
	log    *zap.SugaredLogger
	spec   string // cron spec, e.g. "@every 6h"
}

// New creates a Scheduler that fires every intervalHours hours.
func New(runner *scraper.Runner, lock Locker, logger *zap.SugaredLogger, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		runner: runner,
		lock:   lock,
		log:    logger,
		spec:   fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one ingestion
// immediately so the board is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runScrape(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.log.Infow("cron started", "spec", s.spec)

	// Run immediately on startup (non-blocking).
	go s.runScrape(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("cron stopped")
}

// runScrape executes one full ingestion run unless another run (cron or
// manual trigger) already holds the lock.
func (s *Scheduler) runScrape(ctx context.Context) {
	ok, err := s.lock.TryAcquire(ctx)
	if err != nil {
		s.log.Errorw("scrape lock error", "error", err)
		return
	}
	if !ok {
		s.log.Info("scrape already running, skipping this tick")
		return
	}
	defer func() {
		if err := s.lock.Release(ctx); err != nil {
			s.log.Warnw("scrape lock release failed", "error", err)
		}
	}()

	report := s.runner.RunAll(ctx)
	s.log.Infow("scheduled run finished",
		"run_id", report.RunID,
		"total_scraped", report.TotalScraped,
		"total_inserted", report.TotalInserted)
}
