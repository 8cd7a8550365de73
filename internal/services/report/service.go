// Package report orchestrates the research report pipeline: ticker
// validation, multi-source collection, relevance filtering, metrics, and
// LLM synthesis.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/bobmcallan/insight/internal/clients/youtube"
	"github.com/bobmcallan/insight/internal/common"
	"github.com/bobmcallan/insight/internal/interfaces"
	"github.com/bobmcallan/insight/internal/metrics"
	"github.com/bobmcallan/insight/internal/models"
	"github.com/bobmcallan/insight/internal/relevance"
)

const (
	// DefaultMaxVideos is how many videos must yield surviving comments.
	DefaultMaxVideos = 5
	// DefaultMaxCommentsPerVideo caps comment collection per video.
	DefaultMaxCommentsPerVideo = 100

	// searchOverfetchFactor requests extra search candidates so videos with
	// disabled comments or off-topic titles can be skipped.
	searchOverfetchFactor = 3

	// topCommentsPerVideo is how many surviving comments are kept on the
	// per-video summary block.
	topCommentsPerVideo = 3

	// videoLookbackYears restricts search to recent content.
	videoLookbackYears = 5
)

// financialTitleKeywords gates search results to investment content.
var financialTitleKeywords = []string{
	"stock", "invest", "earnings", "analysis", "buy", "sell",
	"financial", "dividend", "valuation", "portfolio", "market",
}

// Service implements the ReportService interface
type Service struct {
	market     interfaces.MarketDataClient
	wikipedia  interfaces.WikipediaClient
	youtube    interfaces.YouTubeClient
	analysis   interfaces.AnalysisService
	youtubeKey string
	logger     arbor.ILogger
}

// NewService creates the report orchestrator. youtubeKey may be empty, in
// which case comment collection is skipped entirely.
func NewService(
	market interfaces.MarketDataClient,
	wikipedia interfaces.WikipediaClient,
	yt interfaces.YouTubeClient,
	analysis interfaces.AnalysisService,
	youtubeKey string,
) *Service {
	return &Service{
		market:     market,
		wikipedia:  wikipedia,
		youtube:    yt,
		analysis:   analysis,
		youtubeKey: youtubeKey,
		logger:     common.GetLogger(),
	}
}

// GenerateReport runs the full pipeline for a ticker. Only ticker validation
// failure aborts; every other source failure degrades inside the report.
func (s *Service) GenerateReport(ctx context.Context, ticker string, options interfaces.ReportOptions) (*models.Report, error) {
	if options.MaxVideos <= 0 {
		options.MaxVideos = DefaultMaxVideos
	}
	if options.MaxCommentsPerVideo <= 0 {
		options.MaxCommentsPerVideo = DefaultMaxCommentsPerVideo
	}

	validation := s.validateTicker(ctx, ticker)
	if !validation.Valid {
		return nil, &models.ValidationError{Ticker: ticker, Reason: validation.Message}
	}

	companyName := validation.CompanyName
	s.logger.Info().Str("ticker", ticker).Str("company", companyName).Msg("Ticker validated")

	market := s.fetchMarket(ctx, ticker, validation.Info)
	wiki := s.fetchWikipedia(ctx, companyName)
	comments := s.fetchComments(ctx, companyName, options)

	social := s.analysis.AnalyzeComments(ctx, comments.AllComments, "YouTube")

	snapshot := metrics.Compute(market.Info, market.History)
	metricsText := metrics.FormatText(snapshot)

	comparator := s.analysis.Fuse(ctx, interfaces.FusionInputs{
		BusinessSummary: market.Summary,
		WikiSummary:     wiki.Summary,
		MetricsText:     metricsText,
		Social:          []models.AnalysisSummary{social},
	})

	upper := strings.ToUpper(ticker)
	report := &models.Report{
		Ticker:      upper,
		CompanyName: companyName,
		Header: models.ReportHeader{
			Title:       fmt.Sprintf("Company Insight Report: %s (%s)", companyName, upper),
			Sources:     []string{"Yahoo Finance", "Wikipedia", "YouTube"},
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
		Metadata:    models.ExtractTickerMetadata(market.Info),
		Market:      market,
		Wikipedia:   wiki,
		Comments:    comments,
		Social:      []models.AnalysisSummary{social},
		Metrics:     snapshot,
		MetricsText: metricsText,
		Comparator:  comparator,
	}

	s.logger.Info().
		Str("ticker", upper).
		Int("comments", len(comments.AllComments)).
		Bool("market_ok", market.OK).
		Bool("wiki_ok", wiki.OK).
		Msg("Report generated")

	return report, nil
}

// validateTicker resolves a ticker against the market-data provider.
func (s *Service) validateTicker(ctx context.Context, ticker string) models.TickerValidation {
	info, err := s.market.GetTickerInfo(ctx, ticker)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Ticker info fetch failed")
		return models.TickerValidation{
			Valid:   false,
			Message: fmt.Sprintf("Failed to fetch ticker info: %v", err),
		}
	}
	if info == nil {
		return models.TickerValidation{
			Valid:   false,
			Message: fmt.Sprintf("Ticker %s not found or no info available", ticker),
		}
	}
	name := info.DisplayName()
	if name == "" {
		return models.TickerValidation{
			Valid:   false,
			Message: fmt.Sprintf("Ticker %s appears invalid (no company name found)", ticker),
			Info:    info,
		}
	}
	return models.TickerValidation{
		Valid:       true,
		CompanyName: name,
		Message:     "ok",
		Info:        info,
	}
}

// fetchMarket collects the business summary and price history. The validated
// info is reused rather than fetched a second time.
func (s *Service) fetchMarket(ctx context.Context, ticker string, info *models.TickerInfo) models.MarketSnapshot {
	snapshot := models.MarketSnapshot{
		SourceResult: models.SourceResult{OK: true},
		Info:         info,
	}
	if info != nil {
		snapshot.Summary = info.LongBusinessSummary
	}

	history, err := s.market.GetHistory(ctx, ticker)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Price history fetch failed")
		snapshot.OK = false
		snapshot.Error = err.Error()
		return snapshot
	}
	snapshot.History = history
	s.logger.Info().Str("ticker", ticker).Int("bars", len(history)).Msg("Price history fetched")
	return snapshot
}

// fetchWikipedia collects the encyclopedic summary by company name.
func (s *Service) fetchWikipedia(ctx context.Context, companyName string) models.WikiSummary {
	summary, err := s.wikipedia.GetSummary(ctx, companyName)
	if err != nil {
		s.logger.Warn().Err(err).Str("company", companyName).Msg("Wikipedia fetch failed")
		return models.WikiSummary{SourceResult: models.SourceResult{Error: err.Error()}}
	}
	return *summary
}

// fetchComments searches for financial videos about the company and collects
// relevance-filtered comments until enough videos have yielded survivors.
// Quota denial on search short-circuits; quota denial on a single video
// skips that video.
func (s *Service) fetchComments(ctx context.Context, companyName string, options interfaces.ReportOptions) models.CommentCorpus {
	corpus := models.CommentCorpus{
		SourceResult: models.SourceResult{OK: true},
		Videos:       []models.VideoComments{},
		AllComments:  []models.Comment{},
	}

	if s.youtubeKey == "" {
		s.logger.Info().Msg("YouTube API key not configured; skipping comment collection")
		return corpus
	}

	financialQuery := companyName + " stock analysis investment earnings"
	publishedAfter := time.Now().UTC().AddDate(-videoLookbackYears, 0, 0)

	videos, err := s.youtube.SearchVideos(ctx, financialQuery, options.MaxVideos*searchOverfetchFactor, publishedAfter)
	if err != nil {
		if errors.Is(err, youtube.ErrForbidden) {
			s.logger.Warn().Msg("YouTube API access forbidden; skipping comment collection")
			return corpus
		}
		s.logger.Warn().Err(err).Msg("YouTube search failed; continuing without comments")
		corpus.OK = false
		corpus.Error = err.Error()
		return corpus
	}

	videosWithComments := 0
	for _, video := range videos {
		if videosWithComments >= options.MaxVideos {
			break
		}

		if !hasFinancialTitle(video.Title) {
			s.logger.Debug().Str("title", video.Title).Msg("Skipping non-financial video")
			continue
		}

		raw, err := s.youtube.GetComments(ctx, video.VideoID, options.MaxCommentsPerVideo)
		if err != nil {
			s.logger.Debug().Err(err).Str("video_id", video.VideoID).Msg("Comment fetch failed; skipping video")
			continue
		}
		if len(raw) == 0 {
			continue
		}

		relevant := relevance.Filter(raw)
		if len(relevant) == 0 {
			s.logger.Debug().Str("title", video.Title).Msg("No relevant comments in video")
			continue
		}

		corpus.AllComments = append(corpus.AllComments, relevant...)
		videosWithComments++

		top := relevant
		if len(top) > topCommentsPerVideo {
			top = top[:topCommentsPerVideo]
		}
		corpus.Videos = append(corpus.Videos, models.VideoComments{
			VideoID:     video.VideoID,
			Title:       video.Title,
			URL:         "https://www.youtube.com/watch?v=" + video.VideoID,
			TopComments: top,
		})

		s.logger.Info().
			Str("title", video.Title).
			Int("relevant", len(relevant)).
			Int("total", len(raw)).
			Msg("Collected relevant comments from video")
	}

	s.logger.Info().
		Int("videos", videosWithComments).
		Int("comments", len(corpus.AllComments)).
		Msg("Comment collection completed")

	return corpus
}

// hasFinancialTitle reports whether a video title mentions any investment keyword.
func hasFinancialTitle(title string) bool {
	lower := strings.ToLower(title)
	for _, keyword := range financialTitleKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// Ensure Service implements ReportService
var _ interfaces.ReportService = (*Service)(nil)
