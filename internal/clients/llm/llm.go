// Package llm provides language model provider clients
package llm

import (
	"context"
	"fmt"

	"github.com/bobmcallan/insight/internal/common"
	"github.com/bobmcallan/insight/internal/interfaces"
)

// ProviderError wraps a failure from a language model provider with enough
// context to attribute it in degraded report output.
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s provider error: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s provider error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// New creates the LLM client selected by configuration. Supported providers
// are "claude" (the default) and "gemini".
func New(ctx context.Context, config *common.LLMConfig) (interfaces.LLMClient, error) {
	switch config.Provider {
	case "", common.LLMProviderClaude:
		return NewClaudeClient(config)
	case common.LLMProviderGemini:
		return NewGeminiClient(ctx, config)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: claude, gemini)", config.Provider)
	}
}
