package store

import (
	"context"
	"sync"
	"time"

	"remotehirehub/ingest-service/internal/model"
)

var timeNow = func() time.Time { return time.Now().UTC() }

// Memory is an in-memory Store used by tests and the dry-run mode. Safe for
// concurrent use. Failure injection happens through the exported fields.
type Memory struct {
	mu         sync.Mutex
	jobs       map[string]model.Job
	order      []string
	runLogs    []model.ScraperRunLog
	Categories []model.Category

	// InsertErrFor makes InsertJob fail for the listed job_ids.
	InsertErrFor map[string]error
	// ExistsErr makes every JobExists call fail.
	ExistsErr error
	// CategoriesErr makes ListActiveCategories fail.
	CategoriesErr error
	// RunLogErr makes AppendRunLog fail.
	RunLogErr error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{jobs: make(map[string]model.Job)}
}

func (m *Memory) JobExists(_ context.Context, jobID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	_, ok := m.jobs[jobID]
	return ok, nil
}

func (m *Memory) InsertJob(_ context.Context, job *model.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.InsertErrFor[job.JobID]; err != nil {
		return err
	}
	if _, ok := m.jobs[job.JobID]; ok {
		return ErrDuplicate
	}
	job.IsRemote = true
	job.IsActive = true
	job.IsFeatured = false
	if job.ScrapedAt.IsZero() {
		job.ScrapedAt = timeNow()
	}
	m.jobs[job.JobID] = *job
	m.order = append(m.order, job.JobID)
	return nil
}

func (m *Memory) ListActiveCategories(_ context.Context) ([]model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CategoriesErr != nil {
		return nil, m.CategoriesErr
	}
	out := make([]model.Category, 0, len(m.Categories))
	for _, c := range m.Categories {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *Memory) AppendRunLog(_ context.Context, entry model.ScraperRunLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RunLogErr != nil {
		return m.RunLogErr
	}
	if entry.ScrapedAt.IsZero() {
		entry.ScrapedAt = timeNow()
	}
	m.runLogs = append(m.runLogs, entry)
	return nil
}

func (m *Memory) ListRunLogs(_ context.Context, limit int) ([]model.ScraperRunLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 || limit > len(m.runLogs) {
		limit = len(m.runLogs)
	}
	out := make([]model.ScraperRunLog, 0, limit)
	for i := len(m.runLogs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.runLogs[i])
	}
	return out, nil
}

// Jobs returns stored jobs in insertion order.
func (m *Memory) Jobs() []model.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Job, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.jobs[id])
	}
	return out
}

// Job returns one stored job by dedup key.
func (m *Memory) Job(jobID string) (model.Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobID]
	return j, ok
}

// RunLogs returns all audit entries in append order.
func (m *Memory) RunLogs() []model.ScraperRunLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ScraperRunLog, len(m.runLogs))
	copy(out, m.runLogs)
	return out
}
