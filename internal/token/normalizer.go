// Package token normalizes raw indexer asset records into canonical tokens.
package token

import (
	"context"
	"strings"

	"github.com/badfoxmc/cardano-api/internal/domain"
	"github.com/badfoxmc/cardano-api/internal/registry"
)

// DecimalsResolver resolves the decimals and ticker of a fungible token.
type DecimalsResolver interface {
	Resolve(ctx context.Context, tokenID string, embedded domain.OffchainInfo) (registry.Resolution, error)
}

// ImageFormatter turns an IPFS reference into an image.
type ImageFormatter interface {
	Format(ref string) domain.Image
}

// Normalizer builds canonical token records.
type Normalizer struct {
	decimals DecimalsResolver
	images   ImageFormatter
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(decimals DecimalsResolver, images ImageFormatter) *Normalizer {
	return &Normalizer{decimals: decimals, images: images}
}

// Normalize builds a fully populated token from a raw asset record. Malformed
// metadata degrades to empty values; only context cancellation fails.
func (n *Normalizer) Normalize(ctx context.Context, raw domain.RawAsset) (domain.PopulatedToken, error) {
	onchain := domain.ParseMetadata(raw.OnchainMetadata)
	offchain := domain.ParseMetadata(raw.OffchainMetadata)

	name := DecodeName(raw.AssetNameHex, raw.TokenID, raw.PolicyID)
	tok, err := n.token(ctx, raw.TokenID, name, raw.Quantity, domain.ParseOffchainInfo(raw.OffchainMetadata))
	if err != nil {
		return domain.PopulatedToken{}, err
	}

	display := domain.MetadataString(onchain, "name")
	if display == "" {
		display = domain.MetadataString(offchain, "name")
	}
	tok.TokenName.Display = display

	return domain.PopulatedToken{
		Token:             tok,
		Fingerprint:       raw.Fingerprint,
		PolicyID:          raw.PolicyID,
		SerialNumber:      SerialNumber(name),
		MintTransactionID: raw.MintTransactionID,
		Image:             n.Image(Thumb(onchain, offchain)),
		Files:             Files(onchain),
		Attributes:        ExtractAttributes(onchain, offchain, raw.MetadataStandard),
	}, nil
}

// Lightweight builds a token from a unit and its quantity alone: name decoding,
// fungibility, and decimals/ticker. Embedded registry data is used when known.
func (n *Normalizer) Lightweight(ctx context.Context, unit domain.PolicyUnit, embedded domain.OffchainInfo) (domain.Token, error) {
	policyID, assetNameHex := domain.SplitTokenID(unit.TokenID)
	return n.token(ctx, unit.TokenID, DecodeName(assetNameHex, unit.TokenID, policyID), unit.Quantity, embedded)
}

// Image classifies a raw image reference. Data URIs and https URLs are used as they
// are; everything else is an IPFS reference with commas stripped.
func (n *Normalizer) Image(thumb string) domain.Image {
	if IsDirectImage(thumb) {
		return domain.Image{URL: thumb}
	}
	return n.images.Format(strings.ReplaceAll(thumb, ",", ""))
}

func (n *Normalizer) token(ctx context.Context, tokenID, name, quantity string, embedded domain.OffchainInfo) (domain.Token, error) {
	onChain := domain.ParseQuantity(quantity)
	fungible := domain.IsFungible(onChain)

	var (
		decimals int
		ticker   string
	)
	if fungible {
		res, err := n.decimals.Resolve(ctx, tokenID, embedded)
		if err != nil {
			return domain.Token{}, err
		}
		decimals, ticker = res.Decimals, res.Ticker
	}

	return domain.Token{
		TokenID:     tokenID,
		IsFungible:  fungible,
		TokenAmount: domain.NewTokenAmount(onChain, decimals),
		TokenName: &domain.TokenName{
			OnChain: name,
			Ticker:  ticker,
		},
	}, nil
}
