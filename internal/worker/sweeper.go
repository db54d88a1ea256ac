package worker

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper evicts expired cache entries and reports how many it removed.
type Sweeper interface {
	Sweep() int
}

// CacheSweeper periodically evicts expired registry cache entries.
type CacheSweeper struct {
	cache    Sweeper
	interval time.Duration
}

// NewCacheSweeper creates a new CacheSweeper.
func NewCacheSweeper(cache Sweeper, interval time.Duration) *CacheSweeper {
	return &CacheSweeper{
		cache:    cache,
		interval: interval,
	}
}

// Run starts the sweep loop. It blocks until the context is cancelled.
func (w *CacheSweeper) Run(ctx context.Context) {
	slog.Info("CacheSweeper: starting", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("CacheSweeper: shutting down")
			return
		case <-ticker.C:
			if n := w.cache.Sweep(); n > 0 {
				slog.Debug("CacheSweeper: evicted expired entries", "count", n)
			}
		}
	}
}
