package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"remotehirehub/ingest-service/internal/model"
	"remotehirehub/ingest-service/internal/normalize"
	"remotehirehub/ingest-service/internal/store"
)

const (
	remoteOKFeedURL = "https://remoteok.com/api"
	remoteOKSiteURL = "https://remoteok.com"
)

// remoteOKJob mirrors one element of the RemoteOK JSON array.
type remoteOKJob struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Company     string   `json:"company"`
	CompanyLogo string   `json:"company_logo"`
	Position    string   `json:"position"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Date        string   `json:"date"`
}

// RemoteOK scrapes the RemoteOK public JSON API. The feed's first element is
// metadata (a legal notice), not a job, and is skipped.
type RemoteOK struct {
	store  store.Store
	log    *zap.SugaredLogger
	client *http.Client

	// FeedURL is overridable for tests; defaults to the public API.
	FeedURL string
}

// NewRemoteOK constructs the adapter.
func NewRemoteOK(st store.Store, logger *zap.SugaredLogger) *RemoteOK {
	return &RemoteOK{
		store:   st,
		log:     logger,
		client:  &http.Client{Timeout: httpTimeout},
		FeedURL: remoteOKFeedURL,
	}
}

func (a *RemoteOK) Platform() string { return "RemoteOK" }

func (a *RemoteOK) Scrape(ctx context.Context) (Outcome, error) {
	var out Outcome

	a.log.Infow("starting scrape", "platform", a.Platform())

	body, err := fetchBody(ctx, a.client, a.FeedURL)
	if err != nil {
		return out, err
	}

	var feed []remoteOKJob
	if err := json.Unmarshal(body, &feed); err != nil {
		return out, fmt.Errorf("json unmarshal: %w", err)
	}

	// First item is metadata, skip it.
	var jobs []remoteOKJob
	if len(feed) > 0 {
		jobs = feed[1:]
	}
	out.Scraped = len(jobs)
	a.log.Infow("feed fetched", "platform", a.Platform(), "jobs", out.Scraped)

	detector := loadDetector(ctx, a.store, a.log, a.Platform())

	for _, raw := range jobs {
		jobID := normalize.JobID("remoteok", raw.ID)

		exists, err := a.store.JobExists(ctx, jobID)
		if err != nil {
			out.RecordErrors = append(out.RecordErrors, recordError(jobID, raw.Position, err))
			a.log.Warnw("record skipped", "platform", a.Platform(), "title", raw.Position, "error", err)
			continue
		}
		if exists {
			a.log.Debugw("skipping duplicate", "platform", a.Platform(), "title", raw.Position)
			continue
		}

		posted, err := time.Parse(time.RFC3339, raw.Date)
		if err != nil {
			out.RecordErrors = append(out.RecordErrors, recordError(jobID, raw.Position, fmt.Errorf("parse date %q: %w", raw.Date, err)))
			a.log.Warnw("record skipped", "platform", a.Platform(), "title", raw.Position, "error", err)
			continue
		}

		// Job type defaults to Full-time unless a contract tag is present.
		jobType := "Full-time"
		for _, tag := range raw.Tags {
			if strings.Contains(strings.ToLower(tag), "contract") {
				jobType = "Contract"
				break
			}
		}

		// Location restriction from exact tag matches.
		restriction := "Worldwide"
		for _, tag := range raw.Tags {
			switch strings.ToLower(tag) {
			case "usa":
				restriction = "US Only"
			case "europe":
				restriction = "Europe"
			}
		}

		salary := normalize.ParseSalary(raw.Description)

		job := &model.Job{
			JobID:               jobID,
			SourceJobID:         raw.ID,
			Title:               raw.Position,
			Company:             raw.Company,
			CompanyLogoURL:      normalize.FixLogoURL(raw.CompanyLogo),
			Location:            "Remote",
			LocationRestriction: restriction,
			JobType:             jobType,
			ExperienceLevel:     normalize.ExperienceLevel(raw.Position),
			CategoryID:          detector.Detect(raw.Position, raw.Description),
			SalaryMin:           salary.Min,
			SalaryMax:           salary.Max,
			SalaryCurrency:      salary.Currency,
			SalaryPeriod:        salary.Period,
			Description:         normalize.CleanHTML(raw.Description),
			SourcePlatform:      a.Platform(),
			SourceURL:           remoteOKSiteURL + raw.URL,
			PostedDate:          posted.UTC(),
			Slug:                normalize.Slug(raw.Position, raw.Company),
		}

		if err := a.store.InsertJob(ctx, job); err != nil {
			out.RecordErrors = append(out.RecordErrors, recordError(jobID, raw.Position, err))
			a.log.Warnw("insert failed", "platform", a.Platform(), "title", raw.Position, "error", err)
			continue
		}

		out.Inserted++
		a.log.Infow("inserted job", "platform", a.Platform(), "title", raw.Position, "company", raw.Company)
	}

	return out, nil
}
