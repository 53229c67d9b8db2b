// Package danelfin provides a client for the Danelfin AI-ranking API
package danelfin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/stockforge/stockforge/internal/common"
	"github.com/stockforge/stockforge/internal/interfaces"
	"github.com/stockforge/stockforge/internal/models"
)

const (
	DefaultBaseURL   = "https://apirest.danelfin.com"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// Client implements the RankingClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Danelfin client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a non-2xx upstream response.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("danelfin API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// Terminal reports whether the error is a filter-level rejection (400/403)
// that must stop date probing, as opposed to "no data for this date".
func (e *APIError) Terminal() bool {
	return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusForbidden
}

// get performs a rate-limited GET request authorized via the x-api-key header.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Danelfin API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		msg := string(body)
		if msg == "" {
			msg = resp.Status
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    msg,
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// GetRanking retrieves the ranking snapshot for one date and filter set.
func (c *Client) GetRanking(ctx context.Context, date string, filters models.RankingFilters) (*models.Snapshot, error) {
	params := filters.Values()
	params.Set("date", date)

	var snap models.Snapshot
	if err := c.get(ctx, "/ranking", params, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// GetSectors retrieves the sector catalog.
func (c *Client) GetSectors(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/sectors", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// GetSectorScores retrieves the score history for one sector slug.
func (c *Client) GetSectorScores(ctx context.Context, slug string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/sectors/"+url.PathEscape(slug), nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// GetIndustries retrieves the industry catalog.
func (c *Client) GetIndustries(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/industries", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// GetIndustryScores retrieves the score history for one industry slug.
func (c *Client) GetIndustryScores(ctx context.Context, slug string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/industries/"+url.PathEscape(slug), nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Ensure Client implements RankingClient
var _ interfaces.RankingClient = (*Client)(nil)
