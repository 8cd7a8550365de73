// Package interfaces defines service contracts for Insight
package interfaces

import (
	"context"

	"github.com/bobmcallan/insight/internal/models"
)

// ReportService generates investment research reports.
type ReportService interface {
	// GenerateReport runs the full pipeline for a ticker: validate, fetch
	// all sources, filter and analyze comments, compute metrics, fuse.
	// A *models.ValidationError is returned when the ticker cannot be
	// resolved; every other sub-failure degrades inside the report.
	GenerateReport(ctx context.Context, ticker string, options ReportOptions) (*models.Report, error)
}

// ReportOptions configures report generation
type ReportOptions struct {
	MaxVideos           int // videos that must yield surviving comments (default 5)
	MaxCommentsPerVideo int // comment collection cap per video (default 100)
}

// AnalysisService runs the LLM synthesis passes.
type AnalysisService interface {
	// AnalyzeComments summarizes a comment corpus into sentiment and themes.
	// An empty corpus returns a neutral analysis without calling the provider.
	AnalyzeComments(ctx context.Context, comments []models.Comment, sourceName string) models.AnalysisSummary

	// Fuse merges all source summaries and metrics into the final markdown
	// report. Provider failure yields a placeholder with the error recorded.
	Fuse(ctx context.Context, inputs FusionInputs) models.ComparatorResult
}

// FusionInputs carries the prepared source material for the fusion pass.
// MetricsText is passed explicitly rather than smuggled on a fetched payload.
type FusionInputs struct {
	BusinessSummary string
	WikiSummary     string
	MetricsText     string
	Social          []models.AnalysisSummary
}
