package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"remotehirehub/ingest-service/internal/model"
)

// Postgres implements Store on a pgxpool connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an existing pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) JobExists(ctx context.Context, jobID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM jobs WHERE job_id = $1)`, jobID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query job exists: %w", err)
	}
	return exists, nil
}

func (s *Postgres) InsertJob(ctx context.Context, job *model.Job) error {
	now := time.Now().UTC()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO jobs (
		   job_id, source_job_id, title, company, company_logo_url,
		   location, location_restriction, job_type, experience_level,
		   category_id, salary_min, salary_max, salary_currency, salary_period,
		   description, source_platform, source_url, posted_date, slug,
		   is_remote, is_active, is_featured, scraped_at
		 ) VALUES (
		   $1, $2, $3, $4, NULLIF($5, ''),
		   $6, NULLIF($7, ''), $8, NULLIF($9, ''),
		   NULLIF($10, '')::uuid, $11, $12, $13, $14,
		   $15, $16, $17, $18, $19,
		   true, true, false, $20
		 )`,
		job.JobID, job.SourceJobID, job.Title, job.Company, job.CompanyLogoURL,
		job.Location, job.LocationRestriction, job.JobType, job.ExperienceLevel,
		job.CategoryID, job.SalaryMin, job.SalaryMax, job.SalaryCurrency, job.SalaryPeriod,
		job.Description, job.SourcePlatform, job.SourceURL, job.PostedDate, job.Slug,
		now,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return fmt.Errorf("insert job %s: %w", job.JobID, err)
	}

	job.IsRemote = true
	job.IsActive = true
	job.IsFeatured = false
	job.ScrapedAt = now
	return nil
}

func (s *Postgres) ListActiveCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, slug, is_active, sort_order
		 FROM remote_categories
		 WHERE is_active = true
		 ORDER BY sort_order, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("query remote_categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.IsActive, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Postgres) AppendRunLog(ctx context.Context, entry model.ScraperRunLog) error {
	scrapedAt := entry.ScrapedAt
	if scrapedAt.IsZero() {
		scrapedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO scraper_logs (platform, status, jobs_scraped, jobs_inserted, error_message, scraped_at)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`,
		entry.Platform, entry.Status, entry.JobsScraped, entry.JobsInserted, entry.ErrorMessage, scrapedAt,
	)
	if err != nil {
		return fmt.Errorf("insert scraper_log: %w", err)
	}
	return nil
}

func (s *Postgres) ListRunLogs(ctx context.Context, limit int) ([]model.ScraperRunLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT platform, status, jobs_scraped, jobs_inserted, COALESCE(error_message, ''), scraped_at
		 FROM scraper_logs
		 ORDER BY scraped_at DESC
		 LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query scraper_logs: %w", err)
	}
	defer rows.Close()

	var entries []model.ScraperRunLog
	for rows.Next() {
		var e model.ScraperRunLog
		if err := rows.Scan(&e.Platform, &e.Status, &e.JobsScraped, &e.JobsInserted, &e.ErrorMessage, &e.ScrapedAt); err != nil {
			return nil, fmt.Errorf("scan scraper_log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
