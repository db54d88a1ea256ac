package wallet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/badfoxmc/cardano-api/internal/domain"
	"github.com/badfoxmc/cardano-api/internal/fanout"
)

// ServiceIndexer provides every indexer call the wallet service makes.
type ServiceIndexer interface {
	Indexer
	Account(ctx context.Context, stakeKey string) (domain.AccountInfo, error)
	AccountAssets(ctx context.Context, stakeKey string) ([]domain.PolicyUnit, error)
	AssetByID(ctx context.Context, tokenID string) (domain.RawAsset, error)
}

// TokenBuilder builds lightweight tokens.
type TokenBuilder interface {
	Lightweight(ctx context.Context, unit domain.PolicyUnit, embedded domain.OffchainInfo) (domain.Token, error)
}

// Options control which optional wallet fields are filled.
type Options struct {
	AllAddresses  bool
	WithStakePool bool
	WithTokens    bool
}

// Service answers wallet queries.
type Service struct {
	resolver *Resolver
	indexer  ServiceIndexer
	tokens   TokenBuilder
	limit    int
	tracker  fanout.Tracker
}

// NewService creates a wallet Service running at most limit token lookups at once.
func NewService(indexer ServiceIndexer, classifier *Classifier, tokens TokenBuilder, limit int, tracker fanout.Tracker) *Service {
	return &Service{
		resolver: NewResolver(indexer, classifier),
		indexer:  indexer,
		tokens:   tokens,
		limit:    limit,
		tracker:  tracker,
	}
}

// Resolve exposes the identifier resolution of the service.
func (s *Service) Resolve(ctx context.Context, identifier string) (Resolved, error) {
	return s.resolver.Resolve(ctx, identifier)
}

// GetWallet resolves a wallet and fills the requested optional fields. Only the first
// address is kept unless AllAddresses is set.
func (s *Service) GetWallet(ctx context.Context, identifier string, opts Options) (domain.WalletIdentity, error) {
	resolved, err := s.resolver.Resolve(ctx, identifier)
	if err != nil {
		return domain.WalletIdentity{}, err
	}

	addresses := resolved.Addresses
	if !opts.AllAddresses && len(addresses) > 1 {
		addresses = addresses[:1]
	}
	w := domain.WalletIdentity{StakeKey: resolved.StakeKey, Addresses: addresses}

	if opts.WithStakePool {
		account, err := s.indexer.Account(ctx, w.StakeKey)
		if err != nil {
			return domain.WalletIdentity{}, fmt.Errorf("fetching stake pool of %s: %w", w.StakeKey, err)
		}
		poolID := account.PoolID
		w.PoolID = &poolID
	}

	if opts.WithTokens {
		tokens, err := s.walletTokens(ctx, w.StakeKey)
		if err != nil {
			return domain.WalletIdentity{}, err
		}
		w.Tokens = &tokens
	}

	return w, nil
}

// walletTokens lists every token held by a stake key. Fungible tokens fetch their
// indexer asset record so embedded registry data takes precedence over the registry.
func (s *Service) walletTokens(ctx context.Context, stakeKey string) ([]domain.Token, error) {
	units, err := s.indexer.AccountAssets(ctx, stakeKey)
	if err != nil {
		return nil, fmt.Errorf("listing tokens of %s: %w", stakeKey, err)
	}

	tokens, err := fanout.MapTracked(ctx, s.limit, s.tracker, units, func(ctx context.Context, unit domain.PolicyUnit) (domain.Token, error) {
		if !domain.IsFungible(domain.ParseQuantity(unit.Quantity)) {
			return s.tokens.Lightweight(ctx, unit, domain.OffchainInfo{})
		}

		asset, err := s.indexer.AssetByID(ctx, unit.TokenID)
		if err != nil {
			return domain.Token{}, err
		}
		embedded := domain.ParseOffchainInfo(asset.OffchainMetadata)
		tok, err := s.tokens.Lightweight(ctx, unit, embedded)
		if err != nil {
			return domain.Token{}, err
		}
		if embedded.Name != nil && tok.TokenName != nil {
			tok.TokenName.Display = *embedded.Name
		}
		return tok, nil
	})
	if err != nil {
		return nil, fmt.Errorf("building tokens of %s: %w", stakeKey, err)
	}

	slog.Debug("resolved wallet tokens", "stake_key", stakeKey, "count", len(tokens))
	return tokens, nil
}
