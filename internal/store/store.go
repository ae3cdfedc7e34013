// Package store is the persistence boundary of the ingest pipeline. The
// Store interface is injected into adapters and the orchestrator so tests can
// swap in the in-memory implementation.
package store

import (
	"context"
	"errors"

	"remotehirehub/ingest-service/internal/model"
)

// ErrDuplicate is returned by InsertJob when a row with the same job_id
// already exists. Adapters normally avoid it via JobExists, but two writers
// racing on the same record surface here instead of as a driver error.
var ErrDuplicate = errors.New("job already exists")

// Store is everything the pipeline needs from the datastore: key lookup,
// insert, taxonomy read and an append-only audit trail. No transactions.
type Store interface {
	// JobExists reports whether a job with the given dedup key is stored.
	JobExists(ctx context.Context, jobID string) (bool, error)

	// InsertJob writes a canonical job record, defaulting the is_remote,
	// is_active, is_featured flags and the scraped_at timestamp.
	InsertJob(ctx context.Context, job *model.Job) error

	// ListActiveCategories returns the taxonomy rows classification may
	// assign, in sort order. The pipeline never writes categories.
	ListActiveCategories(ctx context.Context) ([]model.Category, error)

	// AppendRunLog records one adapter invocation, success or failure.
	AppendRunLog(ctx context.Context, entry model.ScraperRunLog) error

	// ListRunLogs returns the most recent run-log entries, newest first.
	ListRunLogs(ctx context.Context, limit int) ([]model.ScraperRunLog, error)
}
