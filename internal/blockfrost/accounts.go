package blockfrost

import (
	"context"
	"fmt"
	"net/url"

	"github.com/samber/lo"

	"github.com/badfoxmc/cardano-api/internal/domain"
)

// Address fetches a payment address with its stake key and script flag.
func (c *Client) Address(ctx context.Context, address string) (domain.AddressInfo, error) {
	var resp addressResponse
	if err := c.getJSON(ctx, "/addresses/"+url.PathEscape(address), &resp); err != nil {
		return domain.AddressInfo{}, fmt.Errorf("fetching address %s: %w", address, err)
	}

	return domain.AddressInfo{
		Address:  lo.Ternary(resp.Address != "", resp.Address, address),
		Type:     resp.Type,
		IsScript: resp.Script,
		StakeKey: deref(resp.StakeAddress),
	}, nil
}

// Account fetches a stake account.
func (c *Client) Account(ctx context.Context, stakeKey string) (domain.AccountInfo, error) {
	var resp accountResponse
	if err := c.getJSON(ctx, "/accounts/"+url.PathEscape(stakeKey), &resp); err != nil {
		return domain.AccountInfo{}, fmt.Errorf("fetching account %s: %w", stakeKey, err)
	}

	return domain.AccountInfo{
		StakeKey: resp.StakeAddress,
		Active:   resp.Active,
		PoolID:   deref(resp.PoolID),
	}, nil
}

// AccountAddresses fetches every address associated with a stake key, in indexer order.
func (c *Client) AccountAddresses(ctx context.Context, stakeKey string) ([]string, error) {
	items, err := getAll[addressEntry](ctx, c, "/accounts/"+url.PathEscape(stakeKey)+"/addresses")
	if err != nil {
		return nil, fmt.Errorf("fetching addresses of %s: %w", stakeKey, err)
	}

	return lo.Map(items, func(item addressEntry, _ int) string { return item.Address }), nil
}

// AccountAssets fetches every asset held across the addresses of a stake key.
func (c *Client) AccountAssets(ctx context.Context, stakeKey string) ([]domain.PolicyUnit, error) {
	items, err := getAll[unitQuantity](ctx, c, "/accounts/"+url.PathEscape(stakeKey)+"/addresses/assets")
	if err != nil {
		return nil, fmt.Errorf("fetching assets of %s: %w", stakeKey, err)
	}

	return lo.Map(items, func(item unitQuantity, _ int) domain.PolicyUnit {
		return domain.PolicyUnit{TokenID: item.Unit, Quantity: item.Quantity}
	}), nil
}
