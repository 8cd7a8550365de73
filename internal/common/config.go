// Package common provides shared utilities for Insight
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Insight
type Config struct {
	Environment string        `toml:"environment"`
	APIURL      string        `toml:"api_url"` // externally advertised base URL, used for CORS allow-listing
	Server      ServerConfig  `toml:"server"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Yahoo     YahooConfig     `toml:"yahoo"`
	Wikipedia WikipediaConfig `toml:"wikipedia"`
	YouTube   YouTubeConfig   `toml:"youtube"`
	LLM       LLMConfig       `toml:"llm"`
}

// YahooConfig holds market-data provider configuration
type YahooConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *YahooConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// WikipediaConfig holds encyclopedic-summary provider configuration
type WikipediaConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *WikipediaConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// YouTubeConfig holds video-platform API configuration.
// An empty APIKey disables the comment-corpus feature entirely.
type YouTubeConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *YouTubeConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// LLMProvider selects the AI provider backing the synthesizer.
type LLMProvider string

const (
	// LLMProviderClaude uses the Anthropic API (default)
	LLMProviderClaude LLMProvider = "claude"
	// LLMProviderGemini uses the Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
)

// LLMConfig holds LLM provider configuration
type LLMConfig struct {
	Provider     LLMProvider `toml:"provider"`
	AnthropicKey string      `toml:"anthropic_api_key"`
	GeminiKey    string      `toml:"gemini_api_key"`
	Model        string      `toml:"model"`
	Timeout      string      `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *LLMConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// APIKey returns the key for the configured provider.
func (c *LLMConfig) APIKey() string {
	if c.Provider == LLMProviderGemini {
		return c.GeminiKey
	}
	return c.AnthropicKey
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level    string   `toml:"level"`
	Outputs  []string `toml:"outputs"`
	FilePath string   `toml:"file_path"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		APIURL:      "http://localhost:8000",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Clients: ClientsConfig{
			Yahoo: YahooConfig{
				BaseURL:   "https://query1.finance.yahoo.com",
				RateLimit: 5,
				Timeout:   "10s",
			},
			Wikipedia: WikipediaConfig{
				BaseURL: "https://en.wikipedia.org/w/api.php",
				Timeout: "10s",
			},
			YouTube: YouTubeConfig{
				BaseURL:   "https://www.googleapis.com/youtube/v3",
				RateLimit: 5,
				Timeout:   "10s",
			},
			LLM: LLMConfig{
				Provider: LLMProviderClaude,
				// Model stays empty here; each provider client applies its
				// own default when no override is configured.
				Timeout: "60s",
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Outputs:  []string{"console"},
			FilePath: "./logs/insight.log",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("INSIGHT_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("INSIGHT_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("INSIGHT_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("INSIGHT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if url := os.Getenv("INSIGHT_API_URL"); url != "" {
		config.APIURL = url
	}

	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.Clients.LLM.AnthropicKey = key
	}

	if model := os.Getenv("ANTHROPIC_MODEL"); model != "" {
		config.Clients.LLM.Model = model
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Clients.LLM.GeminiKey = key
	}

	if provider := os.Getenv("INSIGHT_LLM_PROVIDER"); provider != "" {
		config.Clients.LLM.Provider = LLMProvider(strings.ToLower(provider))
	}

	if key := os.Getenv("YOUTUBE_API_KEY"); key != "" {
		config.Clients.YouTube.APIKey = key
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// CORSOrigins returns the inbound origins allowed by the CORS middleware:
// the advertised API URL plus the local dev frontends.
func (c *Config) CORSOrigins() []string {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:5173",
	}
	if c.APIURL != "" {
		origins = append([]string{c.APIURL}, origins...)
	}
	return origins
}
