package scraper

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"remotehirehub/ingest-service/internal/metrics"
	"remotehirehub/ingest-service/internal/model"
	"remotehirehub/ingest-service/internal/store"
)

// Runner orchestrates one ingestion run: every adapter executes concurrently
// and independently, so total wall-clock time is bounded by the slowest
// source, and one source failing never touches the others.
type Runner struct {
	store    store.Store
	log      *zap.SugaredLogger
	adapters []Adapter
}

// NewRunner builds a Runner over the given adapters.
func NewRunner(st store.Store, logger *zap.SugaredLogger, adapters ...Adapter) *Runner {
	return &Runner{store: st, log: logger, adapters: adapters}
}

// DefaultAdapters returns the three production source adapters.
func DefaultAdapters(st store.Store, logger *zap.SugaredLogger) []Adapter {
	return []Adapter{
		NewRemoteOK(st, logger),
		NewRemotive(st, logger),
		NewWeWorkRemotely(st, logger),
	}
}

// RunAll fans out all adapters, waits for every result and aggregates the
// totals. It never fails as a whole: per-source failures appear only in the
// Results entry for that source.
func (r *Runner) RunAll(ctx context.Context) model.RunReport {
	report := model.RunReport{
		Success: true,
		RunID:   uuid.NewString(),
		Results: make(map[string]model.ScrapeResult, len(r.adapters)),
	}

	r.log.Infow("ingestion run started", "run_id", report.RunID, "sources", len(r.adapters))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, a := range r.adapters {
		wg.Add(1)
		go func(a Adapter) {
			defer wg.Done()
			result := r.runOne(ctx, a)
			mu.Lock()
			report.Results[a.Platform()] = result
			mu.Unlock()
		}(a)
	}
	wg.Wait()

	for _, result := range report.Results {
		report.TotalScraped += result.JobsScraped
		report.TotalInserted += result.JobsInserted
	}
	report.Timestamp = time.Now().UTC().Format(time.RFC3339)

	r.log.Infow("ingestion run complete",
		"run_id", report.RunID,
		"total_scraped", report.TotalScraped,
		"total_inserted", report.TotalInserted)

	return report
}

// runOne executes a single adapter, converts any fetch-level error into a
// failed result, records metrics and appends the audit row. Errors never
// propagate past this boundary.
func (r *Runner) runOne(ctx context.Context, a Adapter) model.ScrapeResult {
	start := time.Now()
	platform := a.Platform()

	outcome, err := a.Scrape(ctx)

	result := model.ScrapeResult{
		Success:      err == nil,
		JobsScraped:  outcome.Scraped,
		JobsInserted: outcome.Inserted,
		RecordErrors: outcome.RecordErrors,
	}
	entry := model.ScraperRunLog{
		Platform:     platform,
		Status:       model.RunStatusSuccess,
		JobsScraped:  outcome.Scraped,
		JobsInserted: outcome.Inserted,
		ScrapedAt:    time.Now().UTC(),
	}

	if err != nil {
		result.Error = err.Error()
		entry.Status = model.RunStatusError
		entry.ErrorMessage = err.Error()
		r.log.Errorw("scrape failed", "platform", platform, "error", err)
	} else {
		r.log.Infow("scrape complete",
			"platform", platform,
			"scraped", outcome.Scraped,
			"inserted", outcome.Inserted,
			"record_errors", len(outcome.RecordErrors))
	}

	metrics.ObserveRun(platform, outcome.Scraped, outcome.Inserted, err != nil, time.Since(start))

	// The audit trail is best effort: a failed append never fails the run.
	if logErr := r.store.AppendRunLog(ctx, entry); logErr != nil {
		r.log.Warnw("run-log append failed", "platform", platform, "error", logErr)
	}

	return result
}
