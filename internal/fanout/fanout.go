// Package fanout runs independent upstream calls with bounded concurrency.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/badfoxmc/cardano-api/internal/domain"
)

// DefaultLimit is the number of calls kept in flight when no limit is configured.
const DefaultLimit = 10

// MaxLimit caps the configured limit.
const MaxLimit = 20

// Tracker observes task starts and finishes. *metrics.Metrics satisfies it.
type Tracker interface {
	TaskStarted()
	TaskFinished()
}

// ClampLimit bounds a configured concurrency to [1, MaxLimit].
func ClampLimit(n int) int {
	switch {
	case n < 1:
		return 1
	case n > MaxLimit:
		return MaxLimit
	default:
		return n
	}
}

// Map calls fn for every item with at most limit calls in flight and returns the
// results in input order. The first error cancels the context passed to the other
// calls and is returned; no partial result is returned with it. Cancellation of ctx
// fails with domain.ErrUpstream wrapping the context error.
func Map[T, R any](ctx context.Context, limit int, items []T, fn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	return MapTracked(ctx, limit, nil, items, fn)
}

// MapTracked is Map reporting task lifecycles to tracker, which may be nil.
func MapTracked[T, R any](ctx context.Context, limit int, tracker Tracker, items []T, fn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, domain.Interrupted(ctx.Err())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ClampLimit(limit))

	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if tracker != nil {
				tracker.TaskStarted()
				defer tracker.TaskFinished()
			}
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(gctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, domain.Interrupted(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.Interrupted(err)
	}
	return results, nil
}
