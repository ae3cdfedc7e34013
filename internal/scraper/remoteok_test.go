package scraper_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"remotehirehub/ingest-service/internal/model"
	"remotehirehub/ingest-service/internal/scraper"
	"remotehirehub/ingest-service/internal/store"
)

const remoteOKFixture = `[
  {"last_updated": 1714500000, "legal": "API terms apply"},
  {
    "id": "93601",
    "slug": "senior-backend-engineer",
    "company": "Acme Corp",
    "company_logo": "//cdn.remoteok.com/acme.png",
    "position": "Senior Backend Engineer",
    "tags": ["usa", "backend", "python"],
    "description": "<p>Build services as a developer / engineer.</p><script>track()</script> Salary $80k - $120k per year",
    "url": "/remote-jobs/93601",
    "date": "2024-05-01T12:00:00Z"
  },
  {
    "id": "93602",
    "slug": "contract-designer",
    "company": "Beta LLC",
    "company_logo": "",
    "position": "Product Designer",
    "tags": ["europe", "contract", "design"],
    "description": "<p>Design things.</p>",
    "url": "/remote-jobs/93602",
    "date": "2024-05-02T08:00:00Z"
  }
]`

func testLogger() *zap.SugaredLogger { return zap.NewNop().Sugar() }

func remoteOKServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "RemoteHireHub Job Aggregator", r.Header.Get("User-Agent"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRemoteOK_SkipsMetadataAndInserts(t *testing.T) {
	srv := remoteOKServer(t, http.StatusOK, remoteOKFixture)

	st := store.NewMemory()
	st.Categories = []model.Category{
		{ID: "cat-dev", Slug: "software-development", IsActive: true},
		{ID: "cat-design", Slug: "design-creative", IsActive: true},
	}

	a := scraper.NewRemoteOK(st, testLogger())
	a.FeedURL = srv.URL

	out, err := a.Scrape(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, out.Scraped)
	assert.Equal(t, 2, out.Inserted)
	assert.Empty(t, out.RecordErrors)

	job, ok := st.Job("remoteok-93601")
	require.True(t, ok)
	assert.Equal(t, "93601", job.SourceJobID)
	assert.Equal(t, "Senior Backend Engineer", job.Title)
	assert.Equal(t, "Acme Corp", job.Company)
	assert.Equal(t, "https://cdn.remoteok.com/acme.png", job.CompanyLogoURL)
	assert.Equal(t, "Remote", job.Location)
	assert.Equal(t, "US Only", job.LocationRestriction)
	assert.Equal(t, "Full-time", job.JobType)
	assert.Equal(t, "Senior", job.ExperienceLevel)
	assert.Equal(t, "cat-dev", job.CategoryID)
	require.NotNil(t, job.SalaryMin)
	require.NotNil(t, job.SalaryMax)
	assert.Equal(t, 80000, *job.SalaryMin)
	assert.Equal(t, 120000, *job.SalaryMax)
	assert.Equal(t, "USD", job.SalaryCurrency)
	assert.Equal(t, "year", job.SalaryPeriod)
	assert.NotContains(t, job.Description, "<script")
	assert.Equal(t, "RemoteOK", job.SourcePlatform)
	assert.Equal(t, "https://remoteok.com/remote-jobs/93601", job.SourceURL)
	assert.Equal(t, "senior-backend-engineer-acme-corp", job.Slug)
	assert.True(t, job.IsRemote)
	assert.True(t, job.IsActive)
	assert.False(t, job.IsFeatured)

	contract, ok := st.Job("remoteok-93602")
	require.True(t, ok)
	assert.Equal(t, "Contract", contract.JobType)
	assert.Equal(t, "Europe", contract.LocationRestriction)
	assert.Equal(t, "", contract.CompanyLogoURL)
}

func TestRemoteOK_SecondRunInsertsNothing(t *testing.T) {
	srv := remoteOKServer(t, http.StatusOK, remoteOKFixture)

	st := store.NewMemory()
	a := scraper.NewRemoteOK(st, testLogger())
	a.FeedURL = srv.URL

	first, err := a.Scrape(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.Inserted)

	second, err := a.Scrape(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, second.Scraped)
	assert.Equal(t, 0, second.Inserted)
	assert.Empty(t, second.RecordErrors)
}

func TestRemoteOK_FetchFailure(t *testing.T) {
	srv := remoteOKServer(t, http.StatusInternalServerError, "boom")

	a := scraper.NewRemoteOK(store.NewMemory(), testLogger())
	a.FeedURL = srv.URL

	out, err := a.Scrape(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
	assert.Equal(t, 0, out.Scraped)
	assert.Equal(t, 0, out.Inserted)
}

func TestRemoteOK_BadRecordDoesNotAbortBatch(t *testing.T) {
	body := `[
	  {"legal": "meta"},
	  {"id": "1", "company": "A", "position": "Dev One", "description": "x", "url": "/1", "date": "not-a-date"},
	  {"id": "2", "company": "B", "position": "Dev Two", "description": "y", "url": "/2", "date": "2024-05-01T12:00:00Z"}
	]`
	srv := remoteOKServer(t, http.StatusOK, body)

	st := store.NewMemory()
	a := scraper.NewRemoteOK(st, testLogger())
	a.FeedURL = srv.URL

	out, err := a.Scrape(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, out.Scraped)
	assert.Equal(t, 1, out.Inserted)
	require.Len(t, out.RecordErrors, 1)
	assert.Equal(t, "remoteok-1", out.RecordErrors[0].JobID)
	assert.Equal(t, "Dev One", out.RecordErrors[0].Title)

	_, ok := st.Job("remoteok-2")
	assert.True(t, ok)
}

func TestRemoteOK_InsertErrorIsPerRecord(t *testing.T) {
	srv := remoteOKServer(t, http.StatusOK, remoteOKFixture)

	st := store.NewMemory()
	st.InsertErrFor = map[string]error{"remoteok-93601": assert.AnError}

	a := scraper.NewRemoteOK(st, testLogger())
	a.FeedURL = srv.URL

	out, err := a.Scrape(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, out.Scraped)
	assert.Equal(t, 1, out.Inserted)
	require.Len(t, out.RecordErrors, 1)
	assert.Equal(t, "remoteok-93601", out.RecordErrors[0].JobID)
}
