// Package model defines shared data structures for the ingest service.
package model

import "time"

// Job is the canonical record every source adapter must produce.
// JobID embeds the source platform and the source-native id and is the sole
// deduplication key: re-running against an unchanged feed inserts nothing.
type Job struct {
	JobID               string    `json:"job_id"`
	SourceJobID         string    `json:"source_job_id"`
	Title               string    `json:"title"`
	Company             string    `json:"company"`
	CompanyLogoURL      string    `json:"company_logo_url,omitempty"`
	Location            string    `json:"location"`
	LocationRestriction string    `json:"location_restriction,omitempty"` // Worldwide | US Only | Europe | Americas | APAC
	JobType             string    `json:"job_type"`                       // Full-time | Part-time | Contract | Freelance
	ExperienceLevel     string    `json:"experience_level,omitempty"`     // Entry | Mid | Senior | Lead, empty when unknown
	CategoryID          string    `json:"category_id,omitempty"`
	SalaryMin           *int      `json:"salary_min,omitempty"`
	SalaryMax           *int      `json:"salary_max,omitempty"`
	SalaryCurrency      string    `json:"salary_currency,omitempty"`
	SalaryPeriod        string    `json:"salary_period,omitempty"`
	Description         string    `json:"description"`
	SourcePlatform      string    `json:"source_platform"`
	SourceURL           string    `json:"source_url"`
	PostedDate          time.Time `json:"posted_date"`
	Slug                string    `json:"slug"`

	// Defaulted by the store at insert time.
	IsRemote   bool      `json:"is_remote"`
	IsActive   bool      `json:"is_active"`
	IsFeatured bool      `json:"is_featured"`
	ScrapedAt  time.Time `json:"scraped_at"`
}

// Category is a row of the pre-existing taxonomy the pipeline reads but never
// writes; classification only assigns existing category ids.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	IsActive  bool   `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

// Run-log statuses.
const (
	RunStatusSuccess = "success"
	RunStatusError   = "error"
)

// ScraperRunLog is one append-only audit row per adapter invocation.
type ScraperRunLog struct {
	Platform     string    `json:"platform"`
	Status       string    `json:"status"` // success | error
	JobsScraped  int       `json:"jobs_scraped"`
	JobsInserted int       `json:"jobs_inserted"`
	ErrorMessage string    `json:"error_message,omitempty"`
	ScrapedAt    time.Time `json:"scraped_at"`
}

// RecordError describes a single source record that failed mid-batch.
// Per-record failures never abort the batch; they are collected here so
// callers can see which records were dropped, not just the count gap.
type RecordError struct {
	JobID string `json:"jobId,omitempty"`
	Title string `json:"title,omitempty"`
	Error string `json:"error"`
}

// ScrapeResult is the per-adapter outcome. Adapters never return errors out
// of Run; a fetch-level failure becomes Success=false with the message here.
type ScrapeResult struct {
	Success      bool          `json:"success"`
	JobsScraped  int           `json:"jobsScraped"`
	JobsInserted int           `json:"jobsInserted"`
	Error        string        `json:"error,omitempty"`
	RecordErrors []RecordError `json:"recordErrors,omitempty"`
}

// RunReport is the aggregate returned by the orchestrator. Success is always
// true: a single source failing shows up only in its Results entry.
type RunReport struct {
	Success       bool                    `json:"success"`
	RunID         string                  `json:"runId"`
	TotalScraped  int                     `json:"totalScraped"`
	TotalInserted int                     `json:"totalInserted"`
	Results       map[string]ScrapeResult `json:"results"`
	Timestamp     string                  `json:"timestamp"`
}
