package blockfrost

import (
	"context"
	"fmt"
	"net/url"

	"github.com/samber/lo"

	"github.com/badfoxmc/cardano-api/internal/domain"
)

// PoolMetadata fetches the registered metadata of a stake pool.
func (c *Client) PoolMetadata(ctx context.Context, poolID string) (domain.PoolInfo, error) {
	var resp poolMetadataResponse
	if err := c.getJSON(ctx, "/pools/"+url.PathEscape(poolID)+"/metadata", &resp); err != nil {
		return domain.PoolInfo{}, fmt.Errorf("fetching pool %s: %w", poolID, err)
	}

	return domain.PoolInfo{
		PoolID: lo.Ternary(resp.PoolID != "", resp.PoolID, poolID),
		Ticker: deref(resp.Ticker),
		Name:   deref(resp.Name),
	}, nil
}

// PoolDelegators fetches the stake keys of every delegator of a pool.
func (c *Client) PoolDelegators(ctx context.Context, poolID string) ([]string, error) {
	items, err := getAll[addressEntry](ctx, c, "/pools/"+url.PathEscape(poolID)+"/delegators")
	if err != nil {
		return nil, fmt.Errorf("fetching delegators of %s: %w", poolID, err)
	}

	return lo.Map(items, func(item addressEntry, _ int) string { return item.Address }), nil
}
