package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bobmcallan/insight/internal/common"
)

func TestNewClaudeClient_DefaultModel(t *testing.T) {
	config := &common.LLMConfig{AnthropicKey: "test-key"}

	client, err := NewClaudeClient(config)
	if err != nil {
		t.Fatalf("NewClaudeClient failed: %v", err)
	}
	if client.model != DefaultClaudeModel {
		t.Errorf("model = %s, want %s", client.model, DefaultClaudeModel)
	}
}

func TestNewClaudeClient_MissingKey(t *testing.T) {
	_, err := NewClaudeClient(&common.LLMConfig{})
	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if provErr.Provider != "claude" {
		t.Errorf("provider = %s, want claude", provErr.Provider)
	}
}

func TestNewGeminiClient_DefaultModel(t *testing.T) {
	config := &common.LLMConfig{GeminiKey: "test-key"}

	client, err := NewGeminiClient(context.Background(), config)
	if err != nil {
		t.Fatalf("NewGeminiClient failed: %v", err)
	}
	if client.model != DefaultGeminiModel {
		t.Errorf("model = %s, want %s", client.model, DefaultGeminiModel)
	}
}

func TestNewGeminiClient_MissingKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), &common.LLMConfig{})
	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if provErr.Provider != "gemini" {
		t.Errorf("provider = %s, want gemini", provErr.Provider)
	}
}

// Selecting gemini with the shipped defaults must not leak another
// provider's model id into the request.
func TestNew_GeminiUsesOwnDefaultModel(t *testing.T) {
	config := common.NewDefaultConfig()
	config.Clients.LLM.Provider = common.LLMProviderGemini
	config.Clients.LLM.GeminiKey = "test-key"

	client, err := New(context.Background(), &config.Clients.LLM)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	gemini, ok := client.(*GeminiClient)
	if !ok {
		t.Fatalf("expected *GeminiClient, got %T", client)
	}
	if gemini.model != DefaultGeminiModel {
		t.Errorf("model = %s, want %s", gemini.model, DefaultGeminiModel)
	}
}

func TestNew_EmptyProviderDefaultsToClaude(t *testing.T) {
	config := &common.LLMConfig{AnthropicKey: "test-key"}

	client, err := New(context.Background(), config)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, ok := client.(*ClaudeClient); !ok {
		t.Errorf("expected *ClaudeClient, got %T", client)
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), &common.LLMConfig{Provider: "openai"})
	if err == nil || !strings.Contains(err.Error(), "unknown LLM provider") {
		t.Errorf("expected unknown provider error, got %v", err)
	}
}
