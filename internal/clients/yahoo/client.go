// Package yahoo provides a client for the Yahoo Finance API
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

	"github.com/ternarybob/arbor"

	"github.com/bobmcallan/insight/internal/common"
	"github.com/bobmcallan/insight/internal/interfaces"
	"github.com/bobmcallan/insight/internal/models"
)

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second

	userAgent = "insight/1.0 (research service)"

	quoteSummaryModules = "price,summaryProfile,summaryDetail"
)

// Client implements the MarketDataClient interface
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     arbor.ILogger
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
func WithLogger(logger arbor.ILogger) ClientOption {
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

// NewClient creates a new Yahoo Finance client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.GetLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Yahoo API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
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
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Yahoo API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// rawValue handles Yahoo's {"raw": n, "fmt": "..."} number envelope, which
// occasionally arrives as a bare number instead.
type rawValue struct {
	Raw *float64
}

func (v *rawValue) UnmarshalJSON(data []byte) error {
	var envelope struct {
		Raw *float64 `json:"raw"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		v.Raw = envelope.Raw
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		v.Raw = &num
		return nil
	}
	// Unparseable values are treated as absent, not fatal.
	v.Raw = nil
	return nil
}

// quoteSummaryResponse is the subset of the quoteSummary endpoint consumed.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				Symbol    string   `json:"symbol"`
				LongName  string   `json:"longName"`
				ShortName string   `json:"shortName"`
				MarketCap rawValue `json:"marketCap"`
			} `json:"price"`
			SummaryProfile struct {
				Sector              string `json:"sector"`
				Industry            string `json:"industry"`
				LongBusinessSummary string `json:"longBusinessSummary"`
				Website             string `json:"website"`
				Country             string `json:"country"`
			} `json:"summaryProfile"`
			SummaryDetail struct {
				TrailingPE rawValue `json:"trailingPE"`
				ForwardPE  rawValue `json:"forwardPE"`
				Beta       rawValue `json:"beta"`
			} `json:"summaryDetail"`
		} `json:"result"`
		Error *apiErrorBody `json:"error"`
	} `json:"quoteSummary"`
}

type apiErrorBody struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// GetTickerInfo retrieves company metadata for a ticker
func (c *Client) GetTickerInfo(ctx context.Context, ticker string) (*models.TickerInfo, error) {
	path := fmt.Sprintf("/v10/finance/quoteSummary/%s", url.PathEscape(ticker))

	params := url.Values{}
	params.Set("modules", quoteSummaryModules)

	var resp quoteSummaryResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quoteSummary error for %s: %s", ticker, resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, nil
	}

	r := resp.QuoteSummary.Result[0]
	info := &models.TickerInfo{
		Symbol:              r.Price.Symbol,
		LongName:            r.Price.LongName,
		ShortName:           r.Price.ShortName,
		LongBusinessSummary: r.SummaryProfile.LongBusinessSummary,
		Sector:              r.SummaryProfile.Sector,
		Industry:            r.SummaryProfile.Industry,
		Website:             r.SummaryProfile.Website,
		Country:             r.SummaryProfile.Country,
		MarketCap:           r.Price.MarketCap.Raw,
		TrailingPE:          r.SummaryDetail.TrailingPE.Raw,
		ForwardPE:           r.SummaryDetail.ForwardPE.Raw,
		Beta:                r.SummaryDetail.Beta.Raw,
	}
	if info.Symbol == "" {
		info.Symbol = ticker
	}

	return info, nil
}

// chartResponse is the subset of the chart endpoint consumed.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiErrorBody `json:"error"`
	} `json:"chart"`
}

// GetHistory retrieves daily price/volume history, oldest first. Dates are
// normalized to ISO-8601 strings before they leave this client.
func (c *Client) GetHistory(ctx context.Context, ticker string, opts ...interfaces.HistoryOption) ([]models.HistoryBar, error) {
	p := &interfaces.HistoryParams{
		Range:    "3mo",
		Interval: "1d",
	}
	for _, opt := range opts {
		opt(p)
	}

	path := fmt.Sprintf("/v8/finance/chart/%s", url.PathEscape(ticker))

	urlParams := url.Values{}
	urlParams.Set("range", p.Range)
	urlParams.Set("interval", p.Interval)

	var resp chartResponse
	if err := c.get(ctx, path, urlParams, &resp); err != nil {
		return nil, err
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart error for %s: %s", ticker, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	r := resp.Chart.Result[0]
	quote := r.Indicators.Quote[0]

	bars := make([]models.HistoryBar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		bar := models.HistoryBar{
			Date: time.Unix(ts, 0).UTC().Format(time.RFC3339),
		}
		if v := at(quote.Close, i); v != nil {
			bar.Close = *v
		} else {
			continue // bar without a close is unusable downstream
		}
		if v := at(quote.Open, i); v != nil {
			bar.Open = *v
		}
		if v := at(quote.High, i); v != nil {
			bar.High = *v
		}
		if v := at(quote.Low, i); v != nil {
			bar.Low = *v
		}
		bar.Volume = atInt(quote.Volume, i)
		bars = append(bars, bar)
	}

	c.logger.Debug().Str("ticker", ticker).Int("bars", len(bars)).Msg("Yahoo history fetched")

	return bars, nil
}

func at(vals []*float64, i int) *float64 {
	if i < len(vals) {
		return vals[i]
	}
	return nil
}

func atInt(vals []*int64, i int) *int64 {
	if i < len(vals) {
		return vals[i]
	}
	return nil
}

// Ensure Client implements MarketDataClient
var _ interfaces.MarketDataClient = (*Client)(nil)
