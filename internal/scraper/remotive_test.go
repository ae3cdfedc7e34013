package scraper_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remotehirehub/ingest-service/internal/scraper"
	"remotehirehub/ingest-service/internal/store"
)

const remotiveFixture = `{
  "job-count": 3,
  "jobs": [
    {
      "id": 190001,
      "url": "https://remotive.com/remote-jobs/software-dev/backend-dev-190001",
      "title": "Backend Developer",
      "company_name": "Gamma Inc",
      "company_logo": "https://remotive.com/logos/gamma.png",
      "category": "Software Development",
      "job_type": "full_time",
      "publication_date": "2024-05-03T10:15:00",
      "candidate_required_location": "USA",
      "salary": "$100k-$140k",
      "description": "<p>APIs all day.</p>"
    },
    {
      "id": 190002,
      "url": "https://remotive.com/remote-jobs/design/designer-190002",
      "title": "Junior Designer",
      "company_name": "Delta Co",
      "company_logo": "",
      "category": "Design",
      "job_type": "contract",
      "publication_date": "2024-05-04T09:00:00",
      "candidate_required_location": "Asia",
      "salary": "",
      "description": "<p>Make it pretty.</p>"
    },
    {
      "id": 190003,
      "url": "https://remotive.com/remote-jobs/sales/ae-190003",
      "title": "Account Executive",
      "company_name": "Epsilon",
      "company_logo": "",
      "category": "Sales",
      "job_type": "",
      "publication_date": "2024-05-05T11:30:00",
      "candidate_required_location": "",
      "salary": "",
      "description": "<p>Close deals.</p>"
    }
  ]
}`

func remotiveServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "RemoteHireHub Job Aggregator", r.Header.Get("User-Agent"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRemotive_MapsFields(t *testing.T) {
	srv := remotiveServer(t, http.StatusOK, remotiveFixture)

	st := store.NewMemory()
	a := scraper.NewRemotive(st, testLogger())
	a.FeedURL = srv.URL

	out, err := a.Scrape(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, out.Scraped)
	assert.Equal(t, 3, out.Inserted)

	job, ok := st.Job("remotive-190001")
	require.True(t, ok)
	assert.Equal(t, "190001", job.SourceJobID)
	assert.Equal(t, "Gamma Inc", job.Company)
	assert.Equal(t, "USA", job.Location)
	assert.Equal(t, "US Only", job.LocationRestriction)
	assert.Equal(t, "Full-time", job.JobType)
	require.NotNil(t, job.SalaryMin)
	require.NotNil(t, job.SalaryMax)
	assert.Equal(t, 100000, *job.SalaryMin)
	assert.Equal(t, 140000, *job.SalaryMax)
	assert.Equal(t, "USD", job.SalaryCurrency)
	assert.Equal(t, "https://remotive.com/remote-jobs/software-dev/backend-dev-190001", job.SourceURL)
	assert.Equal(t, "Remotive", job.SourcePlatform)

	designer, ok := st.Job("remotive-190002")
	require.True(t, ok)
	assert.Equal(t, "Contract", designer.JobType)
	assert.Equal(t, "APAC", designer.LocationRestriction)
	assert.Equal(t, "Entry", designer.ExperienceLevel)
	assert.Nil(t, designer.SalaryMin)
	assert.Nil(t, designer.SalaryMax)

	ae, ok := st.Job("remotive-190003")
	require.True(t, ok)
	assert.Equal(t, "Remote", ae.Location)
	assert.Equal(t, "Worldwide", ae.LocationRestriction)
	assert.Equal(t, "Full-time", ae.JobType)
}

func TestRemotive_RestrictionMapping(t *testing.T) {
	cases := []struct {
		location, want string
	}{
		{"USA", "US Only"},
		{"United States", "US Only"},
		{"Europe", "Europe"},
		{"EU only", "Europe"},
		{"Americas", "Americas"},
		{"Asia", "APAC"},
		{"APAC", "APAC"},
		{"Anywhere", "Worldwide"},
		{"", "Worldwide"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, scraper.RemotiveRestrictionForTest(c.location), "location %q", c.location)
	}
}

func TestRemotive_FetchFailure(t *testing.T) {
	srv := remotiveServer(t, http.StatusBadGateway, "upstream broken")

	a := scraper.NewRemotive(store.NewMemory(), testLogger())
	a.FeedURL = srv.URL

	out, err := a.Scrape(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, out.Scraped)
	assert.Equal(t, 0, out.Inserted)
}

func TestRemotive_Idempotent(t *testing.T) {
	srv := remotiveServer(t, http.StatusOK, remotiveFixture)

	st := store.NewMemory()
	a := scraper.NewRemotive(st, testLogger())
	a.FeedURL = srv.URL

	_, err := a.Scrape(context.Background())
	require.NoError(t, err)

	second, err := a.Scrape(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Inserted)
}
