// Package wikipedia provides a client for the MediaWiki summary API
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/bobmcallan/insight/internal/common"
	"github.com/bobmcallan/insight/internal/interfaces"
	"github.com/bobmcallan/insight/internal/models"
)

const (
	DefaultBaseURL = "https://en.wikipedia.org/w/api.php"
	DefaultTimeout = 10 * time.Second

	userAgent = "insight/1.0 (research service)"
)

// Client implements the WikipediaClient interface
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     arbor.ILogger
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
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new MediaWiki client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: common.GetLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// queryResponse is the subset of the MediaWiki query response consumed.
type queryResponse struct {
	Query struct {
		Pages map[string]struct {
			Missing *string `json:"missing"`
			Title   string  `json:"title"`
			Extract string  `json:"extract"`
			FullURL string  `json:"fullurl"`
		} `json:"pages"`
	} `json:"query"`
}

// GetSummary retrieves the intro extract for a page title. A title with no
// matching page returns an empty summary with a nil error.
func (c *Client) GetSummary(ctx context.Context, title string) (*models.WikiSummary, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("prop", "extracts|info")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("titles", title)
	params.Set("redirects", "1")
	params.Set("inprop", "url")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug().Str("title", title).Msg("Wikipedia summary request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("wikipedia API returned %d: %s", resp.StatusCode, string(body))
	}

	var data queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	for _, page := range data.Query.Pages {
		if page.Missing != nil {
			continue
		}
		c.logger.Debug().Str("page", page.Title).Msg("Wikipedia summary found")
		return &models.WikiSummary{
			SourceResult: models.SourceResult{OK: true},
			Title:        page.Title,
			Summary:      page.Extract,
			URL:          page.FullURL,
		}, nil
	}

	// No matching entry: empty result, not an error.
	c.logger.Debug().Str("title", title).Msg("Wikipedia page not found")
	return &models.WikiSummary{SourceResult: models.SourceResult{OK: true}}, nil
}

// Ensure Client implements WikipediaClient
var _ interfaces.WikipediaClient = (*Client)(nil)
