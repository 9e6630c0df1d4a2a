// Package yahoo talks to the public Yahoo Finance endpoints and extracts prices
// and instrument names from their responses.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultChartURL is the v8 chart endpoint; the symbol is appended as a path segment.
	DefaultChartURL = "https://query1.finance.yahoo.com/v8/finance/chart"

	// DefaultQuoteURL is the v7 quote endpoint.
	DefaultQuoteURL = "https://query1.finance.yahoo.com/v7/finance/quote"

	// DefaultTimeout bounds every request.
	DefaultTimeout = 10 * time.Second

	// DefaultRateLimit is the number of requests per second the client allows itself.
	DefaultRateLimit = 2

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Client is the raw Yahoo Finance surface used by the quote lookup.
// Responses are returned as decoded, untyped JSON.
type Client interface {
	QueryChart(ctx context.Context, symbol string) (any, error)
	QueryQuote(ctx context.Context, symbol string) (any, error)
}

// FinanceClient provides methods for fetching financial data from Yahoo Finance API.
// It wraps an HTTP client and a rate limiter shared by all its requests.
type FinanceClient struct {
	chartURL   string
	quoteURL   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a FinanceClient.
type Option func(*FinanceClient)

// WithChartURL overrides the chart endpoint.
func WithChartURL(u string) Option {
	return func(c *FinanceClient) {
		c.chartURL = u
	}
}

// WithQuoteURL overrides the quote endpoint.
func WithQuoteURL(u string) Option {
	return func(c *FinanceClient) {
		c.quoteURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *FinanceClient) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *FinanceClient) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

// WithRateLimit sets the number of requests per second. Zero or less disables limiting.
func WithRateLimit(requestsPerSecond float64) Option {
	return func(c *FinanceClient) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		burst := int(requestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// NewFinanceClient creates a new Yahoo Finance client.
//
// Parameters:
//   - opts: Optional overrides for endpoints, HTTP client, timeout and rate limit
//
// Returns:
//   - *FinanceClient: A new client instance ready for use
func NewFinanceClient(opts ...Option) *FinanceClient {
	c := &FinanceClient{
		chartURL:   DefaultChartURL,
		quoteURL:   DefaultQuoteURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QueryChart fetches the last 5 days of daily chart data for a symbol.
// The response carries the instrument metadata, including the last traded
// price, and the daily close series.
//
// Parameters:
//   - ctx: Request context
//   - symbol: Ticker symbol (e.g., "AAPL", "2330.TW")
//
// Returns:
//   - any: Decoded JSON response
//   - error: If the request fails or Yahoo answers with an error status
func (c *FinanceClient) QueryChart(ctx context.Context, symbol string) (any, error) {
	u := fmt.Sprintf("%s/%s?interval=1d&range=5d", c.chartURL, url.PathEscape(symbol))
	return c.query(ctx, u)
}

// QueryQuote fetches the quote summary of a symbol.
//
// Parameters:
//   - ctx: Request context
//   - symbol: Ticker symbol
//
// Returns:
//   - any: Decoded JSON response
//   - error: If the request fails or Yahoo answers with an error status
func (c *FinanceClient) QueryQuote(ctx context.Context, symbol string) (any, error) {
	u := fmt.Sprintf("%s?symbols=%s", c.quoteURL, url.QueryEscape(symbol))
	return c.query(ctx, u)
}

// query executes a rate limited GET request and decodes the JSON body.
//
// The method sets required headers:
//   - User-Agent: Mimics a browser to avoid API blocking
//   - Accept: Requests JSON response format
func (c *FinanceClient) query(ctx context.Context, u string) (any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo returned status %d", resp.StatusCode)
	}

	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}
