package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"remotehirehub/ingest-service/internal/config"
	"remotehirehub/ingest-service/internal/db"
	"remotehirehub/ingest-service/internal/log"
	"remotehirehub/ingest-service/internal/scraper"
	"remotehirehub/ingest-service/internal/store"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run one ingestion pass across all sources and print the report",
	RunE:  runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := log.Init(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	st := store.NewPostgres(pool)
	runner := scraper.NewRunner(st, logger, scraper.DefaultAdapters(st, logger)...)

	report := runner.RunAll(ctx)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
