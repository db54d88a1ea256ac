// Package upstream is the shared HTTP transport of every external provider client:
// pooled connections, retry on 429 with exponential backoff, and error classification.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/badfoxmc/cardano-api/internal/domain"
	"github.com/badfoxmc/cardano-api/internal/metrics"
)

// Default configuration values.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 5
	DefaultBaseDelay  = 1 * time.Second
)

// StatusError is a non-2xx response from a provider.
type StatusError struct {
	Provider   string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP %d from %s: %s", e.Provider, e.StatusCode, e.URL, e.Body)
}

// Client performs GET requests against one provider base URL.
type Client struct {
	provider   string
	baseURL    string
	httpClient *http.Client
	header     http.Header
	maxRetries int
	baseDelay  time.Duration
	metrics    *metrics.Metrics
}

// Option configures Client.
type Option func(*Client)

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetry sets the maximum number of 429 retries and the initial backoff.
// A negative count means no retries.
func WithRetry(maxRetries int, baseDelay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = max(maxRetries, 0)
		c.baseDelay = baseDelay
	}
}

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.header.Set(key, value)
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithMetrics records call latency, outcome and retries.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a client for provider rooted at baseURL.
func NewClient(provider, baseURL string, opts ...Option) *Client {
	c := &Client{
		provider:   provider,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		header:     make(http.Header),
		maxRetries: DefaultMaxRetries,
		baseDelay:  DefaultBaseDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provider returns the provider name used in errors, logs and metrics.
func (c *Client) Provider() string {
	return c.provider
}

// Get performs a GET request with retry on 429. Non-2xx responses are returned as
// *StatusError.
func (c *Client) Get(ctx context.Context, path string) (body []byte, err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveUpstream(c.provider, start, Classify(err)) }()

	url := c.baseURL + path

	var lastErr error
	for attempt := range c.maxRetries + 1 {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		for key, values := range c.header {
			req.Header[key] = values
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("executing request to %s: %w", c.provider, err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading response from %s: %w", c.provider, err)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return body, nil
		}

		lastErr = &StatusError{Provider: c.provider, URL: url, StatusCode: resp.StatusCode, Body: string(body)}
		if resp.StatusCode != http.StatusTooManyRequests || attempt == c.maxRetries {
			return nil, lastErr
		}

		delay := c.baseDelay * time.Duration(1<<uint(attempt))
		slog.Warn("upstream rate limited, retrying",
			"provider", c.provider, "attempt", attempt+1, "max_attempts", c.maxRetries+1, "delay", delay)
		c.metrics.RecordRetry(c.provider)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, lastErr
}

// GetJSON performs a GET request and unmarshals the JSON response into dest.
func (c *Client) GetJSON(ctx context.Context, path string, dest any) error {
	body, err := c.Get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("parsing JSON from %s%s: %w", c.provider, path, err)
	}
	return nil
}

// Classify maps a transport error onto the domain error kinds: 404 is ErrNotFound,
// 400 is ErrMalformedID, everything else is ErrUpstream. Errors that already carry a
// domain kind, and nil, are returned unchanged.
func Classify(err error) error {
	if err == nil || domain.Kind(err) != "internal" {
		return err
	}

	var se *StatusError
	if errors.As(err, &se) {
		switch se.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %w", domain.ErrMalformedID, err)
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
}

// StatusCode returns the HTTP status of a *StatusError in err's chain, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
