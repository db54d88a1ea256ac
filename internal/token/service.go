package token

import (
	"context"
	"fmt"

	"github.com/badfoxmc/cardano-api/internal/blockfrost"
	"github.com/badfoxmc/cardano-api/internal/domain"
	"github.com/badfoxmc/cardano-api/internal/fanout"
)

// Indexer provides the chain indexer calls needed for token queries.
type Indexer interface {
	AssetByID(ctx context.Context, tokenID string) (domain.RawAsset, error)
	AssetAddresses(ctx context.Context, tokenID string, p blockfrost.Page) ([]domain.AddressHolding, error)
	Address(ctx context.Context, address string) (domain.AddressInfo, error)
	Transaction(ctx context.Context, txID string) (domain.TransactionInfo, error)
}

// Options control optional token enrichment.
type Options struct {
	PopulateMintTx bool
}

// Service answers token queries.
type Service struct {
	indexer    Indexer
	normalizer *Normalizer
	limit      int
	tracker    fanout.Tracker
}

// NewService creates a token Service running at most limit indexer calls at once.
func NewService(indexer Indexer, normalizer *Normalizer, limit int, tracker fanout.Tracker) *Service {
	return &Service{indexer: indexer, normalizer: normalizer, limit: limit, tracker: tracker}
}

// GetToken fetches and normalizes one token.
func (s *Service) GetToken(ctx context.Context, tokenID string, opts Options) (domain.PopulatedToken, error) {
	raw, err := s.indexer.AssetByID(ctx, tokenID)
	if err != nil {
		return domain.PopulatedToken{}, err
	}

	tok, err := s.normalizer.Normalize(ctx, raw)
	if err != nil {
		return domain.PopulatedToken{}, fmt.Errorf("normalizing %s: %w", tokenID, err)
	}

	if opts.PopulateMintTx && raw.MintTransactionID != "" {
		tx, err := s.indexer.Transaction(ctx, raw.MintTransactionID)
		if err != nil {
			return domain.PopulatedToken{}, fmt.Errorf("populating mint transaction of %s: %w", tokenID, err)
		}
		height := tx.BlockHeight
		tok.MintBlockHeight = &height
	}

	return tok, nil
}

// Owners returns one page of the holders of a token, each enriched with its stake
// key and script flag. Holder order is the indexer's ascending order.
func (s *Service) Owners(ctx context.Context, tokenID string, page int) (domain.TokenOwners, error) {
	if page < 1 {
		page = 1
	}

	holdings, err := s.indexer.AssetAddresses(ctx, tokenID, blockfrost.Page{Page: page, Count: blockfrost.PageSize, Order: blockfrost.OrderAsc})
	if err != nil {
		return domain.TokenOwners{}, err
	}

	owners, err := fanout.MapTracked(ctx, s.limit, s.tracker, holdings, func(ctx context.Context, h domain.AddressHolding) (domain.Owner, error) {
		info, err := s.indexer.Address(ctx, h.Address)
		if err != nil {
			return domain.Owner{}, err
		}
		return domain.Owner{
			Address:  info.Address,
			IsScript: info.IsScript,
			StakeKey: info.StakeKey,
			Quantity: domain.ParseQuantity(h.Quantity),
		}, nil
	})
	if err != nil {
		return domain.TokenOwners{}, fmt.Errorf("enriching owners of %s: %w", tokenID, err)
	}

	return domain.TokenOwners{TokenID: tokenID, Page: page, Owners: owners}, nil
}
