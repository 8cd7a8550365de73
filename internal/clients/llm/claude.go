package llm

import (
	"context"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"

	"github.com/bobmcallan/insight/internal/common"
	"github.com/bobmcallan/insight/internal/interfaces"
)

const DefaultClaudeModel = "claude-sonnet-4-20250514"

// ClaudeClient implements the LLMClient interface using the Anthropic API
type ClaudeClient struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
	logger  arbor.ILogger
}

// NewClaudeClient creates a Claude-backed LLM client from configuration.
func NewClaudeClient(config *common.LLMConfig) (*ClaudeClient, error) {
	if config.AnthropicKey == "" {
		return nil, &ProviderError{
			Provider: "claude",
			Message:  "Anthropic API key not configured (set ANTHROPIC_API_KEY)",
		}
	}

	model := config.Model
	if model == "" {
		model = DefaultClaudeModel
	}

	return &ClaudeClient{
		client:  anthropic.NewClient(option.WithAPIKey(config.AnthropicKey)),
		model:   model,
		timeout: config.GetTimeout(),
		logger:  common.GetLogger(),
	}, nil
}

// Complete sends a single-turn prompt and returns the generated text.
func (c *ClaudeClient) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	c.logger.Debug().
		Str("model", c.model).
		Int("max_tokens", maxTokens).
		Msg("Starting Claude completion")

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	resp, err := c.client.Messages.New(timeoutCtx, params)
	if err != nil {
		return "", &ProviderError{Provider: "claude", Message: "completion request failed", Err: err}
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	if text.Len() == 0 {
		return "", &ProviderError{Provider: "claude", Message: "empty response"}
	}

	c.logger.Debug().
		Int("response_length", text.Len()).
		Dur("duration", time.Since(start)).
		Msg("Claude completion finished")

	return text.String(), nil
}

// Ensure ClaudeClient implements LLMClient
var _ interfaces.LLMClient = (*ClaudeClient)(nil)
