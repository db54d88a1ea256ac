// Package pool answers stake pool queries.
package pool

import (
	"context"
	"fmt"

	"github.com/badfoxmc/cardano-api/internal/domain"
)

// Indexer provides the stake pool calls of the chain indexer.
type Indexer interface {
	PoolMetadata(ctx context.Context, poolID string) (domain.PoolInfo, error)
	PoolDelegators(ctx context.Context, poolID string) ([]string, error)
}

// Options control optional pool fields.
type Options struct {
	WithDelegators bool
}

// Service answers stake pool queries.
type Service struct {
	indexer Indexer
}

// NewService creates a pool Service.
func NewService(indexer Indexer) *Service {
	return &Service{indexer: indexer}
}

// GetPool fetches the ticker of a pool and, optionally, every delegator stake key.
func (s *Service) GetPool(ctx context.Context, poolID string, opts Options) (domain.Pool, error) {
	info, err := s.indexer.PoolMetadata(ctx, poolID)
	if err != nil {
		return domain.Pool{}, err
	}

	p := domain.Pool{PoolID: poolID, Ticker: info.Ticker}
	if opts.WithDelegators {
		delegators, err := s.indexer.PoolDelegators(ctx, poolID)
		if err != nil {
			return domain.Pool{}, fmt.Errorf("fetching delegators of %s: %w", poolID, err)
		}
		if delegators == nil {
			delegators = []string{}
		}
		p.Delegators = delegators
	}
	return p, nil
}
