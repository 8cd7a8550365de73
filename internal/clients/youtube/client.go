// Package youtube provides a client for the YouTube Data API v3
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/ternarybob/arbor"

	"github.com/bobmcallan/insight/internal/common"
	"github.com/bobmcallan/insight/internal/interfaces"
	"github.com/bobmcallan/insight/internal/models"
)

const (
	DefaultBaseURL   = "https://www.googleapis.com/youtube/v3"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second

	// commentPageSize is the API maximum for commentThreads.list.
	commentPageSize = 100
)

// ErrForbidden is returned on a 403 from the provider: invalid key, quota
// exhaustion, or comments disabled on a video. Callers treat it as a signal
// to skip, never to retry.
var ErrForbidden = errors.New("youtube API access forbidden")

// Client implements the YouTubeClient interface
type Client struct {
	baseURL    string
	apiKey     string
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

// NewClient creates a new YouTube Data API client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
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

// get performs a rate-limited GET request. A 403 maps to ErrForbidden.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	params.Set("key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("endpoint", path).Msg("YouTube API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		io.Copy(io.Discard, resp.Body)
		return ErrForbidden
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("youtube API returned %d on %s: %s", resp.StatusCode, path, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// searchResponse is the subset of search.list consumed.
type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

// SearchVideos searches for videos matching the query, ordered by relevance,
// restricted to items published after the given time.
func (c *Client) SearchVideos(ctx context.Context, query string, maxResults int, publishedAfter time.Time) ([]interfaces.VideoSearchItem, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("order", "relevance")
	if !publishedAfter.IsZero() {
		params.Set("publishedAfter", publishedAfter.UTC().Format("2006-01-02T15:04:05Z"))
	}

	var resp searchResponse
	if err := c.get(ctx, "/search", params, &resp); err != nil {
		return nil, err
	}

	items := make([]interfaces.VideoSearchItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID == "" {
			continue
		}
		items = append(items, interfaces.VideoSearchItem{
			VideoID: item.ID.VideoID,
			Title:   item.Snippet.Title,
		})
	}

	c.logger.Debug().Str("query", query).Int("videos", len(items)).Msg("YouTube search completed")

	return items, nil
}

// commentThreadsResponse is the subset of commentThreads.list consumed.
type commentThreadsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		Snippet struct {
			TopLevelComment struct {
				Snippet struct {
					AuthorDisplayName string `json:"authorDisplayName"`
					TextDisplay       string `json:"textDisplay"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

// GetComments pages through a video's top-level comment thread, ascending by
// page cursor, until maxComments are collected or pages run out.
func (c *Client) GetComments(ctx context.Context, videoID string, maxComments int) ([]models.Comment, error) {
	comments := make([]models.Comment, 0, maxComments)
	pageToken := ""

	for len(comments) < maxComments {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("videoId", videoID)
		params.Set("maxResults", strconv.Itoa(commentPageSize))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var resp commentThreadsResponse
		if err := c.get(ctx, "/commentThreads", params, &resp); err != nil {
			return nil, err
		}

		for _, item := range resp.Items {
			top := item.Snippet.TopLevelComment.Snippet
			comments = append(comments, models.Comment{
				Author: top.AuthorDisplayName,
				Text:   top.TextDisplay,
			})
			if len(comments) >= maxComments {
				break
			}
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	c.logger.Debug().Str("video_id", videoID).Int("comments", len(comments)).Msg("YouTube comments fetched")

	return comments, nil
}

// Ensure Client implements YouTubeClient
var _ interfaces.YouTubeClient = (*Client)(nil)
