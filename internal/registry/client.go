// Package registry resolves fungible token decimals and tickers from embedded
// metadata and the Cardano token registry.
package registry

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/badfoxmc/cardano-api/internal/metrics"
	"github.com/badfoxmc/cardano-api/internal/upstream"
)

// TokenInfo is what the registry knows about a token.
type TokenInfo struct {
	Decimals int
	Ticker   string
	Name     string
}

type property[T any] struct {
	Value T `json:"value"`
}

type metadataResponse struct {
	Subject  string            `json:"subject"`
	Decimals *property[int]    `json:"decimals"`
	Ticker   *property[string] `json:"ticker"`
	Name     *property[string] `json:"name"`
}

// Client is an HTTP client for the Cardano token registry.
type Client struct {
	http *upstream.Client
}

// NewClient creates a new token registry client.
func NewClient(baseURL string, maxRetries int, baseDelay, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		http: upstream.NewClient("registry", baseURL,
			upstream.WithRetry(maxRetries, baseDelay),
			upstream.WithTimeout(timeout),
			upstream.WithMetrics(m),
		),
	}
}

// TokenInfo fetches the registered decimals and ticker of a token. Unregistered tokens
// fail with domain.ErrNotFound.
func (c *Client) TokenInfo(ctx context.Context, tokenID string) (TokenInfo, error) {
	var resp metadataResponse
	if err := upstream.Classify(c.http.GetJSON(ctx, "/metadata/"+url.PathEscape(tokenID), &resp)); err != nil {
		return TokenInfo{}, fmt.Errorf("fetching registry entry %s: %w", tokenID, err)
	}

	var info TokenInfo
	if resp.Decimals != nil {
		info.Decimals = resp.Decimals.Value
	}
	if resp.Ticker != nil {
		info.Ticker = resp.Ticker.Value
	}
	if resp.Name != nil {
		info.Name = resp.Name.Value
	}
	return info, nil
}
