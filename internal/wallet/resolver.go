package wallet

import (
	"context"
	"fmt"

	"github.com/badfoxmc/cardano-api/internal/blockfrost"
	"github.com/badfoxmc/cardano-api/internal/domain"
)

// Indexer provides the chain indexer calls needed to resolve wallets.
type Indexer interface {
	Address(ctx context.Context, address string) (domain.AddressInfo, error)
	AccountAddresses(ctx context.Context, stakeKey string) ([]string, error)
	AssetAddresses(ctx context.Context, tokenID string, p blockfrost.Page) ([]domain.AddressHolding, error)
}

// Resolved is a wallet's stake key and its addresses in indexer order.
type Resolved struct {
	StakeKey  string
	Addresses []string
}

// Resolver resolves wallet identifiers.
type Resolver struct {
	indexer    Indexer
	classifier *Classifier
}

// NewResolver creates a Resolver.
func NewResolver(indexer Indexer, classifier *Classifier) *Resolver {
	return &Resolver{indexer: indexer, classifier: classifier}
}

// Resolve turns a stake key, address, $handle or binary-encoded address into the
// wallet's stake key and full address set. Unrecognized identifiers fail with
// domain.ErrInvalidIdentifier.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (Resolved, error) {
	stakeKey, err := r.StakeKey(ctx, identifier)
	if err != nil {
		return Resolved{}, err
	}

	addresses, err := r.indexer.AccountAddresses(ctx, stakeKey)
	if err != nil {
		return Resolved{}, fmt.Errorf("expanding %s: %w", stakeKey, err)
	}
	if addresses == nil {
		addresses = []string{}
	}
	return Resolved{StakeKey: stakeKey, Addresses: addresses}, nil
}

// StakeKey resolves an identifier to its stake key only.
func (r *Resolver) StakeKey(ctx context.Context, identifier string) (string, error) {
	id := r.classifier.Classify(identifier)

	switch id.Kind {
	case KindStakeKey:
		return id.Value, nil
	case KindAddress:
		return r.stakeKeyOfAddress(ctx, id.Value)
	case KindHandle:
		address, err := r.handleAddress(ctx, id.Value)
		if err != nil {
			return "", err
		}
		return r.stakeKeyOfAddress(ctx, address)
	case KindRawEncoded:
		return r.StakeKey(ctx, id.Decoded)
	default:
		return "", fmt.Errorf("%q: %w", identifier, domain.ErrInvalidIdentifier)
	}
}

func (r *Resolver) stakeKeyOfAddress(ctx context.Context, address string) (string, error) {
	info, err := r.indexer.Address(ctx, address)
	if err != nil {
		return "", err
	}
	if info.StakeKey == "" {
		return "", fmt.Errorf("address %s has no stake credential: %w", address, domain.ErrNotFound)
	}
	return info.StakeKey, nil
}

// handleAddress returns the address currently holding the NFT of a $handle.
func (r *Resolver) handleAddress(ctx context.Context, handle string) (string, error) {
	holders, err := r.indexer.AssetAddresses(ctx, domain.HandleTokenID(handle), blockfrost.Page{Count: 1})
	if err != nil {
		return "", fmt.Errorf("resolving handle %s: %w", handle, err)
	}
	if len(holders) == 0 || holders[0].Address == "" {
		return "", fmt.Errorf("handle %s has no holder: %w", handle, domain.ErrNotFound)
	}
	return holders[0].Address, nil
}
