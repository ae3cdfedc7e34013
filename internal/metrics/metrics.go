// Package metrics exposes prometheus instrumentation for scrape runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	subsystem     = "ingest"
	platformLabel = "platform"
)

var (
	jobsScrapedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "jobs_scraped_total",
			Help:      "number of raw records seen per source feed",
		},
		[]string{platformLabel},
	)
	jobsInsertedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "jobs_inserted_total",
			Help:      "number of new job rows inserted per source",
		},
		[]string{platformLabel},
	)
	scrapeFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "scrape_failures_total",
			Help:      "number of fetch-level scrape failures per source",
		},
		[]string{platformLabel},
	)
	scrapeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Subsystem: subsystem,
			Name:      "scrape_duration_seconds",
			Help:      "wall-clock time of one adapter run",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300},
		},
		[]string{platformLabel},
	)
)

func init() {
	prometheus.MustRegister(jobsScrapedTotal, jobsInsertedTotal, scrapeFailuresTotal, scrapeDuration)
}

// ObserveRun records the outcome of one adapter invocation.
func ObserveRun(platform string, scraped, inserted int, failed bool, elapsed time.Duration) {
	labels := prometheus.Labels{platformLabel: platform}
	jobsScrapedTotal.With(labels).Add(float64(scraped))
	jobsInsertedTotal.With(labels).Add(float64(inserted))
	if failed {
		scrapeFailuresTotal.With(labels).Inc()
	}
	scrapeDuration.With(labels).Observe(elapsed.Seconds())
}
