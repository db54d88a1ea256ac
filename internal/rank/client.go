// Package rank fetches third-party rarity ranks for NFT policies.
package rank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/badfoxmc/cardano-api/internal/domain"
	"github.com/badfoxmc/cardano-api/internal/metrics"
	"github.com/badfoxmc/cardano-api/internal/upstream"
)

// policyNotFound is the error the provider returns for policies it has not ranked.
const policyNotFound = "Policy ID not found"

type rankedItem struct {
	AssetID     string `json:"assetID"`
	AssetName   string `json:"assetName"`
	Name        string `json:"name"`
	EncodedName string `json:"encodedName"`
	RarityRank  string `json:"rarityRank"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client is an HTTP client for the cnft.tools rank API.
type Client struct {
	http *upstream.Client
}

// NewClient creates a new rank provider client.
func NewClient(baseURL string, maxRetries int, baseDelay, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		http: upstream.NewClient("rank", baseURL,
			upstream.WithHeader("Accept", "application/json"),
			upstream.WithRetry(maxRetries, baseDelay),
			upstream.WithTimeout(timeout),
			upstream.WithMetrics(m),
		),
	}
}

// PolicyRanks fetches the rank dataset of a policy. A policy the provider has not
// ranked fails with domain.ErrPolicyNotRanked.
func (c *Client) PolicyRanks(ctx context.Context, policyID string) (*Dataset, error) {
	var items []rankedItem
	err := c.http.GetJSON(ctx, "/api/external/"+url.PathEscape(policyID), &items)
	if err != nil {
		if isPolicyNotFound(err) {
			return nil, fmt.Errorf("policy %s: %w", policyID, domain.ErrPolicyNotRanked)
		}
		return nil, fmt.Errorf("fetching ranks of %s: %w", policyID, upstream.Classify(err))
	}

	ds := NewDataset()
	for _, item := range items {
		rank, err := strconv.Atoi(strings.TrimSpace(item.RarityRank))
		if err != nil {
			slog.Warn("skipping ranked item with invalid rank", "policy_id", policyID, "asset", item.AssetID, "rank", item.RarityRank)
			continue
		}
		name := item.AssetName
		if name == "" {
			name = domain.HexToText(item.EncodedName)
		}
		tokenID := ""
		if item.EncodedName != "" {
			tokenID = policyID + item.EncodedName
		}
		ds.Add(tokenID, name, rank)
	}

	if n := ds.Collisions(); n > 0 {
		slog.Warn("rank dataset has duplicate token names", "policy_id", policyID, "duplicates", n)
	}
	return ds, nil
}

// isPolicyNotFound reports whether err is the provider's unknown-policy response,
// which may arrive with any non-2xx status.
func isPolicyNotFound(err error) bool {
	var se *upstream.StatusError
	if !errors.As(err, &se) {
		return false
	}
	var resp errorResponse
	if json.Unmarshal([]byte(se.Body), &resp) == nil && resp.Error == policyNotFound {
		return true
	}
	return strings.Contains(se.Body, policyNotFound)
}
