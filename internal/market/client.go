// Package market passes marketplace listings and activity through from jpg.store.
package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/badfoxmc/cardano-api/internal/domain"
	"github.com/badfoxmc/cardano-api/internal/metrics"
	"github.com/badfoxmc/cardano-api/internal/upstream"
)

// ActivityLimit is the number of activity entries requested per token.
const ActivityLimit = 50

// maxListingPages bounds policy listing pagination.
const maxListingPages = 200

// notFoundMessages are provider error messages that mean the token does not exist.
var notFoundMessages = []string{"Token not found", "Invalid or malformed asset ID"}

type errorResponse struct {
	Message string `json:"message"`
}

type activityResponse struct {
	Txs []json.RawMessage `json:"txs"`
}

// Client is an HTTP client for the jpg.store API.
type Client struct {
	http *upstream.Client
}

// NewClient creates a new marketplace client.
func NewClient(baseURL string, maxRetries int, baseDelay, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		http: upstream.NewClient("market", baseURL,
			upstream.WithRetry(maxRetries, baseDelay),
			upstream.WithTimeout(timeout),
			upstream.WithMetrics(m),
		),
	}
}

// Listings fetches the active listings of a policy: the first page, or every page
// when all is set.
func (c *Client) Listings(ctx context.Context, policyID string, all bool) ([]json.RawMessage, error) {
	var listings []json.RawMessage
	for page := 1; page <= maxListingPages; page++ {
		var items []json.RawMessage
		path := fmt.Sprintf("/policy/%s/listings?page=%d", url.PathEscape(policyID), page)
		if err := c.http.GetJSON(ctx, path, &items); err != nil {
			return nil, fmt.Errorf("fetching listings of %s: %w", policyID, classify(err))
		}
		listings = append(listings, items...)
		if !all || len(items) == 0 {
			break
		}
	}
	if listings == nil {
		listings = []json.RawMessage{}
	}
	return listings, nil
}

// Token fetches the marketplace record of a token.
func (c *Client) Token(ctx context.Context, tokenID string) (json.RawMessage, error) {
	var token json.RawMessage
	if err := c.http.GetJSON(ctx, "/token/"+url.PathEscape(tokenID), &token); err != nil {
		return nil, fmt.Errorf("fetching market token %s: %w", tokenID, classify(err))
	}
	return token, nil
}

// TokenActivity fetches the most recent marketplace activity of a token.
func (c *Client) TokenActivity(ctx context.Context, tokenID string) ([]json.RawMessage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(ActivityLimit))
	params.Set("offset", "0")

	body, err := c.http.Get(ctx, "/token/"+url.PathEscape(tokenID)+"/tx-history?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetching market activity of %s: %w", tokenID, classify(err))
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}
	var wrapped activityResponse
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("parsing market activity of %s: %w", tokenID, classify(err))
	}
	if wrapped.Txs == nil {
		wrapped.Txs = []json.RawMessage{}
	}
	return wrapped.Txs, nil
}

// classify maps the provider's token-not-found messages to domain.ErrNotFound before
// the generic status classification.
func classify(err error) error {
	var se *upstream.StatusError
	if errors.As(err, &se) {
		var resp errorResponse
		if json.Unmarshal([]byte(se.Body), &resp) == nil {
			for _, msg := range notFoundMessages {
				if strings.EqualFold(resp.Message, msg) {
					return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
				}
			}
		}
	}
	return upstream.Classify(err)
}
