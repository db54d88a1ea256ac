package registry

import (
	"context"
	"errors"
	"log/slog"

	"github.com/badfoxmc/cardano-api/internal/domain"
)

// Lookup fetches registry entries.
type Lookup interface {
	TokenInfo(ctx context.Context, tokenID string) (TokenInfo, error)
}

// Source names the tier a resolution came from.
type Source string

const (
	SourceEmbedded Source = "embedded"
	SourceRegistry Source = "registry"
	SourceNone     Source = "none"
)

// Resolution is a resolved decimals/ticker pair.
type Resolution struct {
	Decimals int
	Ticker   string
	Source   Source
}

// Resolver resolves decimals and tickers for fungible tokens.
type Resolver struct {
	lookup Lookup
}

// NewResolver creates a Resolver backed by lookup.
func NewResolver(lookup Lookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// Resolve returns the decimals and ticker of a fungible token. Embedded metadata
// carrying both fields wins over the registry. When the registry has no entry or
// fails, whatever the embedded metadata had is used, defaulting to 0 and "".
// Registry failures never fail the resolution; only context cancellation does.
func (r *Resolver) Resolve(ctx context.Context, tokenID string, embedded domain.OffchainInfo) (Resolution, error) {
	if embedded.Decimals != nil && embedded.Ticker != nil {
		return Resolution{Decimals: *embedded.Decimals, Ticker: *embedded.Ticker, Source: SourceEmbedded}, nil
	}

	info, err := r.lookup.TokenInfo(ctx, tokenID)
	if err == nil {
		return Resolution{Decimals: info.Decimals, Ticker: info.Ticker, Source: SourceRegistry}, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Resolution{}, domain.Interrupted(ctxErr)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		slog.Warn("registry lookup failed, using defaults", "token_id", tokenID, "error", err)
	}

	res := Resolution{Source: SourceNone}
	if embedded.Decimals != nil {
		res.Decimals = *embedded.Decimals
		res.Source = SourceEmbedded
	}
	if embedded.Ticker != nil {
		res.Ticker = *embedded.Ticker
		res.Source = SourceEmbedded
	}
	return res, nil
}
