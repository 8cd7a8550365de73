// Package models defines data structures for Insight
package models

import (
	"fmt"
	"math"
)

// TickerValidation is the result of resolving a ticker against the
// market-data provider. It is produced once per request and never mutated.
type TickerValidation struct {
	Valid       bool        `json:"valid"`
	CompanyName string      `json:"company_name,omitempty"`
	Message     string      `json:"message"`
	Info        *TickerInfo `json:"info,omitempty"`
}

// TickerInfo is the subset of provider company metadata the pipeline consumes.
// Unknown provider fields are dropped at the client boundary.
type TickerInfo struct {
	Symbol              string   `json:"symbol"`
	LongName            string   `json:"long_name,omitempty"`
	ShortName           string   `json:"short_name,omitempty"`
	LongBusinessSummary string   `json:"long_business_summary,omitempty"`
	Sector              string   `json:"sector,omitempty"`
	Industry            string   `json:"industry,omitempty"`
	Website             string   `json:"website,omitempty"`
	Country             string   `json:"country,omitempty"`
	MarketCap           *float64 `json:"market_cap,omitempty"`
	TrailingPE          *float64 `json:"trailing_pe,omitempty"`
	ForwardPE           *float64 `json:"forward_pe,omitempty"`
	Beta                *float64 `json:"beta,omitempty"`
}

// DisplayName returns the company display name, preferring the long name.
func (i *TickerInfo) DisplayName() string {
	if i == nil {
		return ""
	}
	if i.LongName != "" {
		return i.LongName
	}
	return i.ShortName
}

// TickerMetadata is the compact metadata extract carried on the final report.
type TickerMetadata struct {
	Name       string   `json:"name,omitempty"`
	Sector     string   `json:"sector,omitempty"`
	Industry   string   `json:"industry,omitempty"`
	MarketCap  *float64 `json:"market_cap,omitempty"`
	TrailingPE *float64 `json:"trailing_pe,omitempty"`
	ForwardPE  *float64 `json:"forward_pe,omitempty"`
	Beta       *float64 `json:"beta,omitempty"`
	Website    string   `json:"website,omitempty"`
	Country    string   `json:"country,omitempty"`
}

// ExtractTickerMetadata builds the compact metadata block from provider info.
func ExtractTickerMetadata(info *TickerInfo) TickerMetadata {
	if info == nil {
		return TickerMetadata{}
	}
	return TickerMetadata{
		Name:       info.DisplayName(),
		Sector:     info.Sector,
		Industry:   info.Industry,
		MarketCap:  info.MarketCap,
		TrailingPE: info.TrailingPE,
		ForwardPE:  info.ForwardPE,
		Beta:       info.Beta,
		Website:    info.Website,
		Country:    info.Country,
	}
}

// SourceResult records the local outcome of one source fetcher. Fetcher
// failures stay local: OK=false with a reason, and the payload zero value.
type SourceResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// HistoryBar represents a single day's price data. Date is an ISO-8601
// string: temporal provider types never leave the market fetcher.
type HistoryBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume *int64  `json:"volume"` // nil when the provider omits it; zero is a real trading halt
}

// MarketSnapshot holds everything fetched from the market-data provider.
type MarketSnapshot struct {
	SourceResult
	Info    *TickerInfo  `json:"info,omitempty"`
	Summary string       `json:"summary,omitempty"`
	History []HistoryBar `json:"history,omitempty"`
}

// WikiSummary holds the encyclopedic summary for a company.
// A company with no matching entry yields the zero value with OK=true.
type WikiSummary struct {
	SourceResult
	Title   string `json:"title,omitempty"`
	Summary string `json:"summary,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Comment is a single user comment, immutable once fetched.
type Comment struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// VideoComments groups the surviving comments for one video.
type VideoComments struct {
	VideoID     string    `json:"video_id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	TopComments []Comment `json:"top_comments"`
}

// CommentCorpus is the aggregate comment collection across videos.
type CommentCorpus struct {
	SourceResult
	Videos      []VideoComments `json:"videos"`
	AllComments []Comment       `json:"all_comments"`
}

// Sentiment is the overall investment sentiment label for a comment corpus.
type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
	SentimentUnknown Sentiment = "unknown"
)

// ParseSentiment maps free text onto a sentiment label, defaulting to unknown.
func ParseSentiment(s string) Sentiment {
	switch Sentiment(s) {
	case SentimentBullish, SentimentBearish, SentimentNeutral:
		return Sentiment(s)
	}
	return SentimentUnknown
}

// AnalysisSummary is the structured result of the LLM comment-corpus pass.
type AnalysisSummary struct {
	Source               string    `json:"source"`
	Summary              string    `json:"summary"`
	Sentiment            Sentiment `json:"sentiment"`
	Themes               []string  `json:"themes"`
	RepresentativeQuotes []string  `json:"representative_quotes"`
}

// MetricsSnapshot holds derived numeric indicators. Every derived field is a
// pointer: nil means the input data was insufficient. Stored values are
// always finite.
type MetricsSnapshot struct {
	Sector                 string   `json:"sector,omitempty"`
	Industry               string   `json:"industry,omitempty"`
	MarketCap              *float64 `json:"market_cap,omitempty"`
	TrailingPE             *float64 `json:"trailing_pe,omitempty"`
	ForwardPE              *float64 `json:"forward_pe,omitempty"`
	Beta                   *float64 `json:"beta,omitempty"`
	PeriodPctChange        *float64 `json:"period_pct_change,omitempty"`
	MA50                   *float64 `json:"ma_50,omitempty"`
	MA200                  *float64 `json:"ma_200,omitempty"`
	VolatilityAnnualApprox *float64 `json:"volatility_annual_approx,omitempty"`
	AvgVolume              *float64 `json:"avg_volume,omitempty"`
}

// Finite returns a pointer to v, or nil when v is NaN or infinite.
func Finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ComparatorResult is the terminal output of the multi-source fusion pass.
type ComparatorResult struct {
	Markdown   string            `json:"markdown"`
	Source     string            `json:"source"`
	InputsUsed map[string]string `json:"inputs_used,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// ReportHeader carries the report title, source list and generation time.
type ReportHeader struct {
	Title       string   `json:"title"`
	Sources     []string `json:"sources"`
	GeneratedAt string   `json:"generated_at"`
}

// Report is the aggregate research document for one ticker. It is assembled
// once per request and never mutated afterwards.
type Report struct {
	Ticker      string            `json:"ticker"`
	CompanyName string            `json:"company_name"`
	Header      ReportHeader      `json:"header"`
	Metadata    TickerMetadata    `json:"metadata"`
	Market      MarketSnapshot    `json:"market"`
	Wikipedia   WikiSummary       `json:"wikipedia"`
	Comments    CommentCorpus     `json:"youtube"`
	Social      []AnalysisSummary `json:"social_analyses"`
	Metrics     MetricsSnapshot   `json:"metrics"`
	MetricsText string            `json:"metrics_text"`
	Comparator  ComparatorResult  `json:"comparator"`
}

// ValidationError is returned when a ticker cannot be resolved. It is the
// only failure allowed to short-circuit report generation.
type ValidationError struct {
	Ticker string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ticker validation failed for %s: %s", e.Ticker, e.Reason)
}
