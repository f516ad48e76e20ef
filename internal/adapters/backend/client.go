// Package backend is the HTTP adapter for the music trend backend. It
// speaks the backend's exact wire shapes (/health, /trending,
// /analytics) and maps them to domain types.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/MallikarjunMiragi/Global-Music-Trend-Genre-Popularity-Pipeline/internal/core/domain"
	"github.com/MallikarjunMiragi/Global-Music-Trend-Genre-Popularity-Pipeline/internal/core/ports"
)

const defaultRequestTimeout = 10 * time.Second

// Client is an HTTP client for the trend backend.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxRetries  int
	baseBackoff time.Duration
}

// compile-time interface assertion
var _ ports.TrendProvider = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithRetry sets the retry budget for snapshot fetches.
func WithRetry(maxRetries int, baseBackoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.baseBackoff = baseBackoff
	}
}

// NewClient constructs a backend client. A nil httpClient gets a
// default with a bounded timeout so a stalled backend cannot wedge the
// poll loops.
func NewClient(httpClient *http.Client, baseURL string, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	c := &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxRetries:  defaultMaxRetries,
		baseBackoff: time.Duration(defaultBackoffMs) * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckHealth probes GET /health and parses the availability flags.
// Probes do not retry: the probe interval is the retry.
func (c *Client) CheckHealth(ctx context.Context) (ports.HealthReport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return ports.HealthReport{}, fmt.Errorf("backend adapter: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.HealthReport{}, transportError("health", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ports.HealthReport{}, &ports.RequestError{Op: "health", Kind: ports.KindHTTP, Status: resp.StatusCode}
	}

	var wh wireHealth
	if err := json.NewDecoder(resp.Body).Decode(&wh); err != nil {
		return ports.HealthReport{}, &ports.RequestError{Op: "health", Kind: ports.KindMalformed, Err: err}
	}

	return wh.toReport(), nil
}

// FetchTrending pulls GET /trending. A missing or non-array tracks
// field is an empty snapshot, not an error.
func (c *Client) FetchTrending(ctx context.Context) ([]domain.Track, error) {
	var wt wireTrending
	if err := c.getJSON(ctx, "trending", "/trending", &wt); err != nil {
		return nil, err
	}
	return wt.toDomain(), nil
}

// FetchAnalytics pulls GET /analytics and unwraps the summary object.
// An absent summary degrades to a zero summary.
func (c *Client) FetchAnalytics(ctx context.Context) (domain.AnalyticsSummary, error) {
	var wa wireAnalytics
	if err := c.getJSON(ctx, "analytics", "/analytics", &wa); err != nil {
		return domain.AnalyticsSummary{}, err
	}
	return wa.Summary.toDomain(), nil
}

// getJSON issues a retried GET and decodes the body into dst.
func (c *Client) getJSON(ctx context.Context, op, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("backend adapter: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return classifyRetryFailure(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ports.RequestError{Op: op, Kind: ports.KindHTTP, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &ports.RequestError{Op: op, Kind: ports.KindMalformed, Err: err}
	}
	return nil
}

// transportError classifies a round-trip failure as timeout or
// unreachable.
func transportError(op string, err error) error {
	kind := ports.KindUnreachable
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		kind = ports.KindTimeout
	}
	return &ports.RequestError{Op: op, Kind: kind, Err: err}
}

// classifyRetryFailure maps a doRequestWithRetry error to the taxonomy.
// Retries exhausted on HTTP status surface as KindHTTP with the last
// observed status.
func classifyRetryFailure(op string, err error) error {
	var se *statusError
	if errors.As(err, &se) {
		return &ports.RequestError{Op: op, Kind: ports.KindHTTP, Status: se.status, Err: err}
	}
	return transportError(op, err)
}
