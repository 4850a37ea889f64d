package saflii

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driven"
	"github.com/custodia-labs/lexai/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// UserAgent identifies lexai to SAFLII.
	UserAgent = "lexai/1.0 (+https://github.com/custodia-labs/lexai)"
)

// Ensure Client implements the interface.
var _ driven.SearchClient = (*Client)(nil)

// Config configures a SAFLII client.
type Config struct {
	// BaseURL is the search CGI endpoint. Defaults to domain.DefaultScrapeBaseURL.
	BaseURL string

	// RatePerSecond throttles requests. Non-positive disables throttling.
	RatePerSecond float64

	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// Client searches SAFLII.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *RateLimiter
	parser     *Parser
}

// NewClient creates a new SAFLII client.
func NewClient(cfg Config) (*Client, error) {
	raw := cfg.BaseURL
	if raw == "" {
		raw = domain.DefaultScrapeBaseURL
	}
	base, err := url.Parse(raw)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: saflii base URL %q", domain.ErrInvalidInput, raw)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		limiter:    NewRateLimiter(cfg.RatePerSecond),
		parser:     NewParser(base),
	}, nil
}

// Kind returns domain.SourceScrape.
func (c *Client) Kind() domain.SourceKind {
	return domain.SourceScrape
}

// SearchURL builds the boolean search URL for query and page.
func (c *Client) SearchURL(query string, page int) string {
	u := *c.baseURL
	// SAFLII expects the parameters in this order with meta pre-escaped.
	u.RawQuery = fmt.Sprintf(
		"method=boolean&query=%s&meta=%%2Fjurisdiction&mask_path=&submit=Search&pagenum=%d&rank=on",
		url.QueryEscape(query), page,
	)
	return u.String()
}

// Search fetches and parses the first result page. Structured filters
// are not supported by the endpoint and are ignored.
func (c *Client) Search(ctx context.Context, query domain.SearchQuery) ([]domain.CaseResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	searchURL := c.SearchURL(query.Query, 1)
	logger.Debug("Fetching SAFLII: %s", searchURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("saflii: build request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("saflii: %w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if err := c.limiter.CheckRateLimit(resp); err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, URL: searchURL}
	}

	// A body cut short is a network failure, not a malformed page.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("saflii: read body: %w: %v", domain.ErrSourceUnavailable, err)
	}
	return c.parser.Parse(bytes.NewReader(body))
}
