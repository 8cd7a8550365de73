package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	if config.Server.Port != 8000 {
		t.Errorf("unexpected default port: %d", config.Server.Port)
	}
	if config.Clients.Yahoo.BaseURL != "https://query1.finance.yahoo.com" {
		t.Errorf("unexpected yahoo base URL: %s", config.Clients.Yahoo.BaseURL)
	}
	if config.Clients.LLM.Provider != LLMProviderClaude {
		t.Errorf("unexpected default provider: %s", config.Clients.LLM.Provider)
	}
	if config.Clients.LLM.Model != "" {
		t.Errorf("default model should be empty so providers pick their own: %s", config.Clients.LLM.Model)
	}
	if config.Clients.LLM.GetTimeout() != 60*time.Second {
		t.Errorf("unexpected LLM timeout: %s", config.Clients.LLM.GetTimeout())
	}
	if config.Clients.Yahoo.GetTimeout() != 10*time.Second {
		t.Errorf("unexpected yahoo timeout: %s", config.Clients.Yahoo.GetTimeout())
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "insight.toml")
	content := `
environment = "production"

[server]
port = 9000

[clients.llm]
provider = "gemini"
model = "gemini-2.5-flash"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Environment != "production" || !config.IsProduction() {
		t.Errorf("environment not applied: %s", config.Environment)
	}
	if config.Server.Port != 9000 {
		t.Errorf("port not applied: %d", config.Server.Port)
	}
	if config.Clients.LLM.Provider != LLMProviderGemini {
		t.Errorf("provider not applied: %s", config.Clients.LLM.Provider)
	}
	// Defaults survive partial files
	if config.Clients.Wikipedia.BaseURL != "https://en.wikipedia.org/w/api.php" {
		t.Errorf("default lost after merge: %s", config.Clients.Wikipedia.BaseURL)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Server.Port != 8000 {
		t.Errorf("expected defaults for missing file, got port %d", config.Server.Port)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("INSIGHT_PORT", "8123")
	t.Setenv("INSIGHT_LOG_LEVEL", "debug")
	t.Setenv("ANTHROPIC_API_KEY", "test-anthropic")
	t.Setenv("YOUTUBE_API_KEY", "test-youtube")
	t.Setenv("INSIGHT_LLM_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "test-gemini")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Server.Port != 8123 {
		t.Errorf("INSIGHT_PORT not applied: %d", config.Server.Port)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("INSIGHT_LOG_LEVEL not applied: %s", config.Logging.Level)
	}
	if config.Clients.LLM.AnthropicKey != "test-anthropic" {
		t.Errorf("ANTHROPIC_API_KEY not applied")
	}
	if config.Clients.YouTube.APIKey != "test-youtube" {
		t.Errorf("YOUTUBE_API_KEY not applied")
	}
	if config.Clients.LLM.Provider != LLMProviderGemini {
		t.Errorf("INSIGHT_LLM_PROVIDER not lowercased: %s", config.Clients.LLM.Provider)
	}
	if config.Clients.LLM.APIKey() != "test-gemini" {
		t.Errorf("APIKey should follow provider, got %s", config.Clients.LLM.APIKey())
	}
}

func TestCORSOrigins(t *testing.T) {
	config := NewDefaultConfig()
	config.APIURL = "https://insight.example.com"

	origins := config.CORSOrigins()
	if origins[0] != "https://insight.example.com" {
		t.Errorf("expected API URL first, got %v", origins)
	}

	found := false
	for _, o := range origins {
		if o == "http://localhost:3000" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected local dev origin present, got %v", origins)
	}
}
