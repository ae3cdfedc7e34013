// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v9"
)

// Config holds all runtime configuration for the ingest service.
type Config struct {
	Port                string `env:"INGEST_PORT" envDefault:"8081"`
	DatabaseURL         string `env:"DATABASE_URL"`
	RedisURL            string `env:"REDIS_URL"`
	ScraperAPIKey       string `env:"SCRAPER_API_KEY"` // manual trigger secret
	CronSecret          string `env:"CRON_SECRET"`     // scheduled trigger secret
	ScrapeIntervalHours int    `env:"SCRAPE_INTERVAL_HOURS" envDefault:"6"`
	LogLevel            string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}
	if cfg.ScraperAPIKey == "" && cfg.CronSecret == "" {
		return nil, fmt.Errorf("at least one of SCRAPER_API_KEY or CRON_SECRET is required")
	}
	if cfg.ScrapeIntervalHours < 1 {
		return nil, fmt.Errorf("SCRAPE_INTERVAL_HOURS must be a positive integer, got %d", cfg.ScrapeIntervalHours)
	}

	return &cfg, nil
}
