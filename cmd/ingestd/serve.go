package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"remotehirehub/ingest-service/internal/config"
	"remotehirehub/ingest-service/internal/db"
	"remotehirehub/ingest-service/internal/log"
	"remotehirehub/ingest-service/internal/scheduler"
	"remotehirehub/ingest-service/internal/scraper"
	"remotehirehub/ingest-service/internal/server"
	"remotehirehub/ingest-service/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ingest service: cron scraping plus the trigger API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := log.Init(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	st := store.NewPostgres(pool)
	lock := scraper.NewRunLock(rdb)
	runner := scraper.NewRunner(st, logger, scraper.DefaultAdapters(st, logger)...)

	sched := scheduler.New(runner, lock, logger, cfg.ScrapeIntervalHours)
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.New(runner, lock, st, logger, cfg.ScraperAPIKey, cfg.CronSecret).Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
