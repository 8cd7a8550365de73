package llm

import (
	"context"
	"time"

	"github.com/ternarybob/arbor"
	"google.golang.org/genai"

	"github.com/bobmcallan/insight/internal/common"
	"github.com/bobmcallan/insight/internal/interfaces"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiClient implements the LLMClient interface using the Google Gemini API
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  arbor.ILogger
}

// NewGeminiClient creates a Gemini-backed LLM client from configuration.
func NewGeminiClient(ctx context.Context, config *common.LLMConfig) (*GeminiClient, error) {
	if config.GeminiKey == "" {
		return nil, &ProviderError{
			Provider: "gemini",
			Message:  "Gemini API key not configured (set GEMINI_API_KEY)",
		}
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &ProviderError{Provider: "gemini", Message: "failed to create client", Err: err}
	}

	model := config.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiClient{
		client:  genaiClient,
		model:   model,
		timeout: config.GetTimeout(),
		logger:  common.GetLogger(),
	}, nil
}

// Complete sends a single-turn prompt and returns the generated text.
func (c *GeminiClient) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	c.logger.Debug().
		Str("model", c.model).
		Int("max_tokens", maxTokens).
		Msg("Starting Gemini completion")

	temp := float32(temperature)
	maxOut := int32(maxTokens)
	genConfig := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: maxOut,
	}

	result, err := c.client.Models.GenerateContent(timeoutCtx, c.model, genai.Text(prompt), genConfig)
	if err != nil {
		return "", &ProviderError{Provider: "gemini", Message: "completion request failed", Err: err}
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", &ProviderError{Provider: "gemini", Message: "empty response"}
	}

	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	if text == "" {
		return "", &ProviderError{Provider: "gemini", Message: "empty response"}
	}

	c.logger.Debug().
		Int("response_length", len(text)).
		Dur("duration", time.Since(start)).
		Msg("Gemini completion finished")

	return text, nil
}

// Ensure GeminiClient implements LLMClient
var _ interfaces.LLMClient = (*GeminiClient)(nil)
