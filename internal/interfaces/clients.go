// Package interfaces defines service contracts for Insight
package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/insight/internal/models"
)

// MarketDataClient provides access to the market-data provider.
type MarketDataClient interface {
	// GetTickerInfo retrieves company metadata for a ticker
	GetTickerInfo(ctx context.Context, ticker string) (*models.TickerInfo, error)

	// GetHistory retrieves daily price/volume history, oldest first,
	// with dates already normalized to ISO-8601 strings
	GetHistory(ctx context.Context, ticker string, opts ...HistoryOption) ([]models.HistoryBar, error)
}

// HistoryOption configures history requests
type HistoryOption func(*HistoryParams)

// HistoryParams holds history query parameters
type HistoryParams struct {
	Range    string // provider range token, e.g. "3mo"
	Interval string // bar interval, e.g. "1d"
}

// WithRange sets the history range
func WithRange(r string) HistoryOption {
	return func(p *HistoryParams) {
		p.Range = r
	}
}

// WithInterval sets the bar interval
func WithInterval(interval string) HistoryOption {
	return func(p *HistoryParams) {
		p.Interval = interval
	}
}

// WikipediaClient provides access to the encyclopedic-summary provider.
type WikipediaClient interface {
	// GetSummary retrieves the intro extract for a page title.
	// A missing page returns an empty summary and a nil error.
	GetSummary(ctx context.Context, title string) (*models.WikiSummary, error)
}

// YouTubeClient provides access to the video-platform search and comment API.
type YouTubeClient interface {
	// SearchVideos searches for videos matching the query, ordered by
	// relevance, restricted to items published after the given time
	SearchVideos(ctx context.Context, query string, maxResults int, publishedAfter time.Time) ([]VideoSearchItem, error)

	// GetComments pages through a video's top-level comment thread until
	// maxComments comments are collected or pages are exhausted
	GetComments(ctx context.Context, videoID string, maxComments int) ([]models.Comment, error)
}

// VideoSearchItem is one candidate video from a search call.
type VideoSearchItem struct {
	VideoID string
	Title   string
}

// LLMClient is the shared completion contract for the LLM provider.
type LLMClient interface {
	// Complete sends a single-prompt completion request and returns the
	// response text
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}
