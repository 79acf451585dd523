// Package main provides the ManyChat bot server entry point.
package main

import (
	"context"
	"time"

	"github.com/wayacademy/manychat-bot-go/internal/cache"
	"github.com/wayacademy/manychat-bot-go/internal/logger"
)

// refreshDatasets keeps the dataset cache warm so webhook requests
// rarely pay the fetch latency. Runs until ctx is cancelled.
func refreshDatasets(ctx context.Context, store *cache.Store, interval time.Duration, log *logger.Logger) {
	log = log.WithModule("jobs")

	// Initial refresh right after startup
	runRefresh(ctx, store, log)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Dataset refresh job stopped")
			return
		case <-ticker.C:
			runRefresh(ctx, store, log)
		}
	}
}

func runRefresh(ctx context.Context, store *cache.Store, log *logger.Logger) {
	start := time.Now()
	counts := store.RefreshAll(ctx)
	log.WithFields(map[string]any{
		"datasets":    counts,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Datasets refreshed")
}
