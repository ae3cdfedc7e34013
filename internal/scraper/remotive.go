package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"remotehirehub/ingest-service/internal/model"
	"remotehirehub/ingest-service/internal/normalize"
	"remotehirehub/ingest-service/internal/store"
)

const remotiveFeedURL = "https://remotive.com/api/remote-jobs"

// remotiveFeed mirrors the Remotive API response: jobs wrapped in an object.
type remotiveFeed struct {
	Jobs []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	ID                        int64  `json:"id"`
	URL                       string `json:"url"`
	Title                     string `json:"title"`
	CompanyName               string `json:"company_name"`
	CompanyLogo               string `json:"company_logo"`
	Category                  string `json:"category"`
	JobType                   string `json:"job_type"`
	PublicationDate           string `json:"publication_date"`
	CandidateRequiredLocation string `json:"candidate_required_location"`
	Salary                    string `json:"salary"`
	Description               string `json:"description"`
}

// Remotive scrapes the Remotive public JSON API.
type Remotive struct {
	store  store.Store
	log    *zap.SugaredLogger
	client *http.Client

	FeedURL string
}

// NewRemotive constructs the adapter.
func NewRemotive(st store.Store, logger *zap.SugaredLogger) *Remotive {
	return &Remotive{
		store:   st,
		log:     logger,
		client:  &http.Client{Timeout: httpTimeout},
		FeedURL: remotiveFeedURL,
	}
}

func (a *Remotive) Platform() string { return "Remotive" }

// remotiveRestriction maps candidate_required_location substrings onto the
// canonical restriction values.
func remotiveRestriction(location string) string {
	l := strings.ToLower(location)
	switch {
	case strings.Contains(l, "usa") || strings.Contains(l, "united states"):
		return "US Only"
	case strings.Contains(l, "europe") || strings.Contains(l, "eu"):
		return "Europe"
	case strings.Contains(l, "americas"):
		return "Americas"
	case strings.Contains(l, "asia") || strings.Contains(l, "apac"):
		return "APAC"
	}
	return "Worldwide"
}

func parseRemotiveDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q", raw)
}

func (a *Remotive) Scrape(ctx context.Context) (Outcome, error) {
	var out Outcome

	a.log.Infow("starting scrape", "platform", a.Platform())

	body, err := fetchBody(ctx, a.client, a.FeedURL)
	if err != nil {
		return out, err
	}

	var feed remotiveFeed
	if err := json.Unmarshal(body, &feed); err != nil {
		return out, fmt.Errorf("json unmarshal: %w", err)
	}

	out.Scraped = len(feed.Jobs)
	a.log.Infow("feed fetched", "platform", a.Platform(), "jobs", out.Scraped)

	detector := loadDetector(ctx, a.store, a.log, a.Platform())

	for _, raw := range feed.Jobs {
		sourceID := strconv.FormatInt(raw.ID, 10)
		jobID := normalize.JobID("remotive", sourceID)

		exists, err := a.store.JobExists(ctx, jobID)
		if err != nil {
			out.RecordErrors = append(out.RecordErrors, recordError(jobID, raw.Title, err))
			a.log.Warnw("record skipped", "platform", a.Platform(), "title", raw.Title, "error", err)
			continue
		}
		if exists {
			a.log.Debugw("skipping duplicate", "platform", a.Platform(), "title", raw.Title)
			continue
		}

		posted, err := parseRemotiveDate(raw.PublicationDate)
		if err != nil {
			out.RecordErrors = append(out.RecordErrors, recordError(jobID, raw.Title, err))
			a.log.Warnw("record skipped", "platform", a.Platform(), "title", raw.Title, "error", err)
			continue
		}

		// Salary is an explicit free-text field; when absent the record
		// keeps the defaults and no bounds.
		salary := normalize.Salary{Currency: "USD", Period: "year"}
		if raw.Salary != "" {
			salary = normalize.ParseSalary(raw.Salary)
		}

		jobType := raw.JobType
		if jobType == "" {
			jobType = "Full-time"
		}

		location := raw.CandidateRequiredLocation
		if location == "" {
			location = "Remote"
		}

		job := &model.Job{
			JobID:               jobID,
			SourceJobID:         sourceID,
			Title:               raw.Title,
			Company:             raw.CompanyName,
			CompanyLogoURL:      normalize.FixLogoURL(raw.CompanyLogo),
			Location:            location,
			LocationRestriction: remotiveRestriction(raw.CandidateRequiredLocation),
			JobType:             normalize.JobType(jobType),
			ExperienceLevel:     normalize.ExperienceLevel(raw.Title),
			CategoryID:          detector.Detect(raw.Title, raw.Description),
			SalaryMin:           salary.Min,
			SalaryMax:           salary.Max,
			SalaryCurrency:      salary.Currency,
			SalaryPeriod:        salary.Period,
			Description:         normalize.CleanHTML(raw.Description),
			SourcePlatform:      a.Platform(),
			SourceURL:           raw.URL,
			PostedDate:          posted.UTC(),
			Slug:                normalize.Slug(raw.Title, raw.CompanyName),
		}

		if err := a.store.InsertJob(ctx, job); err != nil {
			out.RecordErrors = append(out.RecordErrors, recordError(jobID, raw.Title, err))
			a.log.Warnw("insert failed", "platform", a.Platform(), "title", raw.Title, "error", err)
			continue
		}

		out.Inserted++
		a.log.Infow("inserted job", "platform", a.Platform(), "title", raw.Title, "company", raw.CompanyName)
	}

	return out, nil
}
