// Package blockfrost is the chain indexer client backed by the Blockfrost API.
package blockfrost

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/badfoxmc/cardano-api/internal/metrics"
	"github.com/badfoxmc/cardano-api/internal/upstream"
)

// PageSize is the largest page Blockfrost serves.
const PageSize = 100

// Order is the sort order of a paginated listing.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Page selects one page of a paginated listing. Zero values mean page 1, PageSize
// items, ascending.
type Page struct {
	Page  int
	Count int
	Order Order
}

func (p Page) query() string {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Count < 1 || p.Count > PageSize {
		p.Count = PageSize
	}
	if p.Order == "" {
		p.Order = OrderAsc
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(p.Page))
	params.Set("count", strconv.Itoa(p.Count))
	params.Set("order", string(p.Order))
	return params.Encode()
}

// Client is an HTTP client for the Blockfrost API with retry on 429.
type Client struct {
	http *upstream.Client
}

// NewClient creates a new Blockfrost API client authenticated with projectID.
func NewClient(baseURL, projectID string, maxRetries int, baseDelay, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		http: upstream.NewClient("blockfrost", baseURL,
			upstream.WithHeader("project_id", projectID),
			upstream.WithRetry(maxRetries, baseDelay),
			upstream.WithTimeout(timeout),
			upstream.WithMetrics(m),
		),
	}
}

// getJSON performs a GET request and classifies any failure into a domain error.
func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	return upstream.Classify(c.http.GetJSON(ctx, path, dest))
}

// getPage fetches one page of a listing under path.
func getPage[T any](ctx context.Context, c *Client, path string, p Page) ([]T, error) {
	var items []T
	if err := c.getJSON(ctx, path+"?"+p.query(), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// getAll walks a listing page by page until a short page is returned.
func getAll[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		items, err := getPage[T](ctx, c, path, Page{Page: page, Count: PageSize})
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		all = append(all, items...)
		if len(items) < PageSize {
			return all, nil
		}
	}
}
