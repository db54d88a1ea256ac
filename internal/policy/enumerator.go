// Package policy enumerates the tokens minted under a policy.
package policy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/badfoxmc/cardano-api/internal/blockfrost"
	"github.com/badfoxmc/cardano-api/internal/domain"
	"github.com/badfoxmc/cardano-api/internal/fanout"
	"github.com/badfoxmc/cardano-api/internal/rank"
)

// Indexer lists the units of a policy.
type Indexer interface {
	AssetsByPolicy(ctx context.Context, policyID string, p blockfrost.Page, all bool) ([]domain.PolicyUnit, error)
}

// RankProvider fetches rarity ranks of a policy.
type RankProvider interface {
	PolicyRanks(ctx context.Context, policyID string) (*rank.Dataset, error)
}

// TokenBuilder builds lightweight tokens.
type TokenBuilder interface {
	Lightweight(ctx context.Context, unit domain.PolicyUnit, embedded domain.OffchainInfo) (domain.Token, error)
}

// Options control policy enumeration.
type Options struct {
	AllTokens  bool
	WithBurned bool
	WithRanks  bool
}

// Enumerator lists the tokens of a policy.
type Enumerator struct {
	indexer Indexer
	ranks   RankProvider
	tokens  TokenBuilder
	limit   int
	tracker fanout.Tracker
}

// NewEnumerator creates an Enumerator running at most limit token builds at once.
func NewEnumerator(indexer Indexer, ranks RankProvider, tokens TokenBuilder, limit int, tracker fanout.Tracker) *Enumerator {
	return &Enumerator{indexer: indexer, ranks: ranks, tokens: tokens, limit: limit, tracker: tracker}
}

// Enumerate lists the tokens of a policy in indexer order. Burned units are dropped
// unless WithBurned is set. With ranks, every token carries a rarity rank, 0 when the
// provider has none for it; an unranked policy fails with domain.ErrPolicyNotRanked.
func (e *Enumerator) Enumerate(ctx context.Context, policyID string, opts Options) (domain.Policy, error) {
	var dataset *rank.Dataset
	if opts.WithRanks {
		ds, err := e.ranks.PolicyRanks(ctx, policyID)
		if err != nil {
			return domain.Policy{}, err
		}
		dataset = ds
		slog.Debug("fetched rank dataset", "policy_id", policyID, "ranked", ds.Len())
	}

	units, err := e.indexer.AssetsByPolicy(ctx, policyID, blockfrost.Page{}, opts.AllTokens)
	if err != nil {
		return domain.Policy{}, err
	}

	units = lo.Filter(units, func(u domain.PolicyUnit, _ int) bool {
		return opts.WithBurned || domain.ParseQuantity(u.Quantity).IsPositive()
	})

	tokens, err := fanout.MapTracked(ctx, e.limit, e.tracker, units, func(ctx context.Context, u domain.PolicyUnit) (domain.RankedToken, error) {
		tok, err := e.tokens.Lightweight(ctx, u, domain.OffchainInfo{})
		if err != nil {
			return domain.RankedToken{}, err
		}
		ranked := domain.RankedToken{Token: tok}
		if opts.WithRanks {
			name := ""
			if tok.TokenName != nil {
				name = tok.TokenName.OnChain
			}
			r := dataset.Rank(tok.TokenID, name)
			ranked.RarityRank = &r
		}
		return ranked, nil
	})
	if err != nil {
		return domain.Policy{}, fmt.Errorf("building tokens of policy %s: %w", policyID, err)
	}

	return domain.Policy{PolicyID: policyID, Tokens: tokens}, nil
}
