// Package server exposes the trigger boundary over HTTP: a bearer-guarded
// manual scrape endpoint, the run history, health and metrics.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"remotehirehub/ingest-service/internal/model"
	"remotehirehub/ingest-service/internal/store"
)

const serviceVersion = "1.0.0"

// Runner is the orchestrator entry point; satisfied by scraper.Runner.
type Runner interface {
	RunAll(ctx context.Context) model.RunReport
}

// Locker serialises runs across triggers; satisfied by scraper.RunLock.
type Locker interface {
	TryAcquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// Server holds the HTTP surface of the ingest service.
type Server struct {
	runner  Runner
	lock    Locker
	store   store.Store
	log     *zap.SugaredLogger
	secrets []string
}

// New builds a Server. secrets are the accepted bearer tokens for the manual
// trigger (the scraper API key and the cron secret); empty entries are
// dropped so an unset secret can never authorise anything.
func New(runner Runner, lock Locker, st store.Store, logger *zap.SugaredLogger, secrets ...string) *Server {
	s := &Server{runner: runner, lock: lock, store: st, log: logger}
	for _, secret := range secrets {
		if secret != "" {
			s.secrets = append(s.secrets, secret)
		}
	}
	return s
}

// Routes assembles the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api/scrape", func(r chi.Router) {
		r.Post("/", s.handleScrape)
		r.Get("/", s.handleRunLogs)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "ingest-service",
		"version": serviceVersion,
	})
}

// handleScrape triggers a full ingestion run. Authorisation happens before
// any scraping; a fully failed run still answers 200 with the per-source
// report so partial successes are never discarded.
func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	ok, err := s.lock.TryAcquire(r.Context())
	if err != nil {
		s.log.Errorw("scrape lock error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "lock unavailable"})
		return
	}
	if !ok {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "a scrape run is already in progress"})
		return
	}
	defer func() {
		if err := s.lock.Release(r.Context()); err != nil {
			s.log.Warnw("scrape lock release failed", "error", err)
		}
	}()

	start := time.Now()
	report := s.runner.RunAll(r.Context())
	s.log.Infow("manual run finished", "run_id", report.RunID, "elapsed", time.Since(start))

	writeJSON(w, http.StatusOK, report)
}

// handleRunLogs returns the most recent audit entries, newest first.
func (s *Server) handleRunLogs(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	entries, err := s.store.ListRunLogs(r.Context(), 20)
	if err != nil {
		s.log.Errorw("run-log read failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read run logs"})
		return
	}
	if entries == nil {
		entries = []model.ScraperRunLog{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"scrapers": entries})
}

// authorized compares the bearer token against the configured secrets.
func (s *Server) authorized(r *http.Request) bool {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return false
	}
	for _, secret := range s.secrets {
		if token == secret {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
