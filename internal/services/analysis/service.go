// Package analysis runs the LLM synthesis passes over collected source data
package analysis

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/bobmcallan/insight/internal/common"
	"github.com/bobmcallan/insight/internal/interfaces"
	"github.com/bobmcallan/insight/internal/models"
)

const (
	// analysisMaxTokens bounds the structured comment-analysis response.
	analysisMaxTokens = 800
	// fusionMaxTokens bounds the final markdown report.
	fusionMaxTokens = 2048

	// maxSampleComments caps how many comments are sent per analysis call.
	maxSampleComments = 30
	// maxCommentChars truncates each sampled comment text.
	maxCommentChars = 800
)

// Service implements the AnalysisService interface
type Service struct {
	provider     interfaces.LLMClient
	providerName string
	logger       arbor.ILogger
}

// NewService creates an analysis service backed by the given LLM provider.
func NewService(provider interfaces.LLMClient, providerName string) *Service {
	return &Service{
		provider:     provider,
		providerName: providerName,
		logger:       common.GetLogger(),
	}
}

// analysisPayload mirrors the JSON contract of the comment-analysis prompt.
type analysisPayload struct {
	Sentiment            string   `json:"sentiment"`
	Themes               []string `json:"themes"`
	RepresentativeQuotes []string `json:"representative_quotes"`
	Summary              string   `json:"summary"`
}

// AnalyzeComments distills a comment corpus into sentiment, themes and a
// short summary. An empty corpus short-circuits to a neutral result without
// touching the provider.
func (s *Service) AnalyzeComments(ctx context.Context, comments []models.Comment, sourceName string) models.AnalysisSummary {
	if len(comments) == 0 {
		return models.AnalysisSummary{
			Source:               sourceName,
			Summary:              "",
			Sentiment:            models.SentimentNeutral,
			Themes:               []string{},
			RepresentativeQuotes: []string{},
		}
	}

	sampleTexts := make([]string, 0, maxSampleComments)
	for i, c := range comments {
		if i >= maxSampleComments {
			break
		}
		sampleTexts = append(sampleTexts, safeTruncate(c.Text, maxCommentChars))
	}

	prompt := buildCommentAnalysisPrompt(sampleTexts)

	resp, err := s.provider.Complete(ctx, prompt, analysisMaxTokens, 0.0)
	if err != nil {
		s.logger.Warn().Err(err).Str("source", sourceName).Msg("Comment analysis provider call failed")
		return models.AnalysisSummary{
			Source:               sourceName,
			Summary:              "(analysis failed)",
			Sentiment:            models.SentimentUnknown,
			Themes:               []string{},
			RepresentativeQuotes: []string{},
		}
	}

	if payload, ok := extractJSONPayload(resp); ok {
		return models.AnalysisSummary{
			Source:               sourceName,
			Summary:              payload.Summary,
			Sentiment:            models.ParseSentiment(payload.Sentiment),
			Themes:               payload.Themes,
			RepresentativeQuotes: payload.RepresentativeQuotes,
		}
	}

	s.logger.Warn().Str("source", sourceName).Msg("Failed to parse analysis response as JSON; keeping raw text")
	return models.AnalysisSummary{
		Source:    sourceName,
		Summary:   resp,
		Sentiment: models.SentimentUnknown,
	}
}

// Fuse combines the prepared source summaries and metrics into the final
// markdown report. Provider failure yields an error placeholder so the
// report still assembles.
func (s *Service) Fuse(ctx context.Context, inputs interfaces.FusionInputs) models.ComparatorResult {
	prompt := buildFusionPrompt(inputs.BusinessSummary, inputs.WikiSummary, inputs.MetricsText, inputs.Social)

	inputsUsed := map[string]string{
		"business_summary": inputs.BusinessSummary,
		"wiki_summary":     inputs.WikiSummary,
		"metrics_text":     inputs.MetricsText,
	}

	md, err := s.provider.Complete(ctx, prompt, fusionMaxTokens, 0.0)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Fusion provider call failed")
		return models.ComparatorResult{
			Markdown:   "# Error\nLLM comparator failed to run.",
			Source:     s.providerName,
			InputsUsed: inputsUsed,
			Error:      err.Error(),
		}
	}

	return models.ComparatorResult{
		Markdown:   md,
		Source:     s.providerName,
		InputsUsed: inputsUsed,
	}
}

// extractJSONPayload locates the outermost JSON object span in the response
// text and decodes it. Providers sometimes wrap the object in prose.
func extractJSONPayload(text string) (analysisPayload, bool) {
	trimmed := strings.TrimSpace(text)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end < start {
		return analysisPayload{}, false
	}

	var payload analysisPayload
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &payload); err != nil {
		return analysisPayload{}, false
	}
	return payload, true
}

// safeTruncate clips text to maxLen runes, marking the cut.
func safeTruncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}

// Ensure Service implements AnalysisService
var _ interfaces.AnalysisService = (*Service)(nil)
