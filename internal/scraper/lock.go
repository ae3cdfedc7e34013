package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	runLockKey = "ingest:scrape-lock"
	runLockTTL = 15 * time.Minute
)

// RunLock serialises ingestion runs across the cron trigger and manual API
// triggers using a redis SETNX lease. The TTL guards against a crashed run
// holding the lock forever.
type RunLock struct {
	rdb *redis.Client
}

// NewRunLock wraps a connected redis client.
func NewRunLock(rdb *redis.Client) *RunLock {
	return &RunLock{rdb: rdb}
}

// TryAcquire attempts to take the lock. false means a run is already active.
func (l *RunLock) TryAcquire(ctx context.Context) (bool, error) {
	ok, err := l.rdb.SetNX(ctx, runLockKey, time.Now().UTC().Format(time.RFC3339), runLockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("acquire scrape lock: %w", err)
	}
	return ok, nil
}

// Release frees the lock. Releasing an expired lock is a no-op.
func (l *RunLock) Release(ctx context.Context) error {
	if err := l.rdb.Del(ctx, runLockKey).Err(); err != nil {
		return fmt.Errorf("release scrape lock: %w", err)
	}
	return nil
}
