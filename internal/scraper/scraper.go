// Package scraper implements the job-ingestion pipeline: one adapter per
// source feed plus the orchestrator that fans them out concurrently.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"remotehirehub/ingest-service/internal/model"
	"remotehirehub/ingest-service/internal/normalize"
	"remotehirehub/ingest-service/internal/store"
)

// userAgent identifies the aggregator to every origin feed.
const userAgent = "RemoteHireHub Job Aggregator"

const httpTimeout = 15 * time.Second

// Outcome carries an adapter's raw counters. When Scrape also returns an
// error the counters reflect whatever was processed before the failure.
type Outcome struct {
	Scraped      int
	Inserted     int
	RecordErrors []model.RecordError
}

// Adapter is the per-source contract. Scrape returns an error only for
// fetch-level failures (network, non-2xx, unparseable feed); individual bad
// records are absorbed into RecordErrors and never abort the batch.
type Adapter interface {
	Platform() string
	Scrape(ctx context.Context) (Outcome, error)
}

// fetchBody GETs url with the aggregator user-agent and returns the body.
// Any non-2xx status is an error.
func fetchBody(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return body, nil
}

func recordError(jobID, title string, err error) model.RecordError {
	return model.RecordError{JobID: jobID, Title: title, Error: err.Error()}
}

// loadDetector reads the active taxonomy once per run. If the read fails,
// classification is disabled for the run; jobs still ingest without a
// category rather than failing the whole batch.
func loadDetector(ctx context.Context, st store.Store, logger *zap.SugaredLogger, platform string) *normalize.CategoryDetector {
	categories, err := st.ListActiveCategories(ctx)
	if err != nil {
		logger.Warnw("category load failed, classification disabled for this run",
			"platform", platform, "error", err)
		return nil
	}
	return normalize.NewCategoryDetector(categories)
}
