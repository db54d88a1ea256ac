package blockfrost

import (
	"context"
	"fmt"
	"net/url"

	"github.com/samber/lo"

	"github.com/badfoxmc/cardano-api/internal/domain"
)

// AssetByID fetches one asset with its on-chain and embedded off-chain metadata.
func (c *Client) AssetByID(ctx context.Context, tokenID string) (domain.RawAsset, error) {
	var resp assetResponse
	if err := c.getJSON(ctx, "/assets/"+url.PathEscape(tokenID), &resp); err != nil {
		return domain.RawAsset{}, fmt.Errorf("fetching asset %s: %w", tokenID, err)
	}

	return domain.RawAsset{
		TokenID:           lo.Ternary(resp.Asset != "", resp.Asset, tokenID),
		PolicyID:          resp.PolicyID,
		Fingerprint:       resp.Fingerprint,
		AssetNameHex:      deref(resp.AssetName),
		Quantity:          resp.Quantity,
		MetadataStandard:  domain.MetadataStandard(deref(resp.OnchainMetadataStandard)),
		OnchainMetadata:   resp.OnchainMetadata,
		OffchainMetadata:  resp.Metadata,
		MintTransactionID: resp.InitialMintTxHash,
	}, nil
}

// AssetsByPolicy fetches the asset units minted under a policy: one page, or every
// page when all is set.
func (c *Client) AssetsByPolicy(ctx context.Context, policyID string, p Page, all bool) ([]domain.PolicyUnit, error) {
	path := "/assets/policy/" + url.PathEscape(policyID)

	var (
		items []unitQuantity
		err   error
	)
	if all {
		items, err = getAll[unitQuantity](ctx, c, path)
	} else {
		items, err = getPage[unitQuantity](ctx, c, path, p)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching assets of policy %s: %w", policyID, err)
	}

	return lo.Map(items, func(item unitQuantity, _ int) domain.PolicyUnit {
		return domain.PolicyUnit{TokenID: item.Asset, Quantity: item.Quantity}
	}), nil
}

// AssetAddresses fetches one page of the addresses currently holding an asset.
func (c *Client) AssetAddresses(ctx context.Context, tokenID string, p Page) ([]domain.AddressHolding, error) {
	items, err := getPage[addressQuantity](ctx, c, "/assets/"+url.PathEscape(tokenID)+"/addresses", p)
	if err != nil {
		return nil, fmt.Errorf("fetching holders of asset %s: %w", tokenID, err)
	}

	return lo.Map(items, func(item addressQuantity, _ int) domain.AddressHolding {
		return domain.AddressHolding{Address: item.Address, Quantity: item.Quantity}
	}), nil
}
