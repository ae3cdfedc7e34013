package scraper

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"remotehirehub/ingest-service/internal/model"
	"remotehirehub/ingest-service/internal/normalize"
	"remotehirehub/ingest-service/internal/store"
)

const wwrFeedURL = "https://weworkremotely.com/categories/remote-full-stack-programming-jobs.rss"

// Company placeholder when an RSS title carries no "Company: Title" prefix.
const wwrCompanyFallback = "Company"

type wwrFeed struct {
	XMLName xml.Name  `xml:"rss"`
	Items   []wwrItem `xml:"channel>item"`
}

type wwrItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
}

// WeWorkRemotely scrapes the We Work Remotely RSS feed. Items encode the
// company as a "Company: Title" prefix of the title element and carry no
// native id; the id is the last non-empty path segment of the item link.
type WeWorkRemotely struct {
	store  store.Store
	log    *zap.SugaredLogger
	client *http.Client

	FeedURL string
}

// NewWeWorkRemotely constructs the adapter.
func NewWeWorkRemotely(st store.Store, logger *zap.SugaredLogger) *WeWorkRemotely {
	return &WeWorkRemotely{
		store:   st,
		log:     logger,
		client:  &http.Client{Timeout: httpTimeout},
		FeedURL: wwrFeedURL,
	}
}

func (a *WeWorkRemotely) Platform() string { return "We Work Remotely" }

// wwrJobID extracts the last non-empty path segment of an item link.
func wwrJobID(link string) string {
	parts := strings.Split(link, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}

// splitWWRTitle separates the company prefix from the job title on the first
// colon. Titles without a colon keep the whole text and a placeholder company.
func splitWWRTitle(raw string) (company, title string) {
	if idx := strings.Index(raw, ":"); idx >= 0 {
		return strings.TrimSpace(raw[:idx]), strings.TrimSpace(raw[idx+1:])
	}
	return wwrCompanyFallback, raw
}

func parseWWRDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC1123Z, time.RFC1123} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse pubDate %q", raw)
}

func (a *WeWorkRemotely) Scrape(ctx context.Context) (Outcome, error) {
	var out Outcome

	a.log.Infow("starting scrape", "platform", a.Platform())

	body, err := fetchBody(ctx, a.client, a.FeedURL)
	if err != nil {
		return out, err
	}

	var feed wwrFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return out, fmt.Errorf("xml unmarshal: %w", err)
	}

	// Items without a title or link are not jobs.
	items := make([]wwrItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		item.Title = strings.TrimSpace(item.Title)
		item.Link = strings.TrimSpace(item.Link)
		item.PubDate = strings.TrimSpace(item.PubDate)
		item.Description = strings.TrimSpace(item.Description)
		if item.Title != "" && item.Link != "" {
			items = append(items, item)
		}
	}
	out.Scraped = len(items)
	a.log.Infow("feed fetched", "platform", a.Platform(), "jobs", out.Scraped)

	detector := loadDetector(ctx, a.store, a.log, a.Platform())

	for _, item := range items {
		sourceID := wwrJobID(item.Link)
		jobID := normalize.JobID("weworkremotely", sourceID)

		exists, err := a.store.JobExists(ctx, jobID)
		if err != nil {
			out.RecordErrors = append(out.RecordErrors, recordError(jobID, item.Title, err))
			a.log.Warnw("record skipped", "platform", a.Platform(), "title", item.Title, "error", err)
			continue
		}
		if exists {
			a.log.Debugw("skipping duplicate", "platform", a.Platform(), "title", item.Title)
			continue
		}

		posted, err := parseWWRDate(item.PubDate)
		if err != nil {
			out.RecordErrors = append(out.RecordErrors, recordError(jobID, item.Title, err))
			a.log.Warnw("record skipped", "platform", a.Platform(), "title", item.Title, "error", err)
			continue
		}

		company, title := splitWWRTitle(item.Title)

		job := &model.Job{
			JobID:               jobID,
			SourceJobID:         sourceID,
			Title:               title,
			Company:             company,
			Location:            "Remote",
			LocationRestriction: "Worldwide",
			JobType:             normalize.JobType(item.Description),
			ExperienceLevel:     normalize.ExperienceLevel(title),
			CategoryID:          detector.Detect(title, item.Description),
			SalaryCurrency:      "USD",
			SalaryPeriod:        "year",
			Description:         normalize.CleanHTML(item.Description),
			SourcePlatform:      a.Platform(),
			SourceURL:           item.Link,
			PostedDate:          posted.UTC(),
			Slug:                normalize.Slug(title, company),
		}

		if err := a.store.InsertJob(ctx, job); err != nil {
			out.RecordErrors = append(out.RecordErrors, recordError(jobID, item.Title, err))
			a.log.Warnw("insert failed", "platform", a.Platform(), "title", item.Title, "error", err)
			continue
		}

		out.Inserted++
		a.log.Infow("inserted job", "platform", a.Platform(), "title", title, "company", company)
	}

	return out, nil
}
