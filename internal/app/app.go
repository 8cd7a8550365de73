// Package app wires configuration, clients, and services into a runnable
// application core shared by the server and CLI entrypoints.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/bobmcallan/insight/internal/clients/llm"
	"github.com/bobmcallan/insight/internal/clients/wikipedia"
	"github.com/bobmcallan/insight/internal/clients/yahoo"
	"github.com/bobmcallan/insight/internal/clients/youtube"
	"github.com/bobmcallan/insight/internal/common"
	"github.com/bobmcallan/insight/internal/interfaces"
	"github.com/bobmcallan/insight/internal/services/analysis"
	"github.com/bobmcallan/insight/internal/services/report"
)

// App holds all initialized clients and services. It is the shared core used
// by cmd/insight-server and cmd/insight-cli.
type App struct {
	Config          *common.Config
	Logger          arbor.ILogger
	MarketClient    interfaces.MarketDataClient
	WikipediaClient interfaces.WikipediaClient
	YouTubeClient   interfaces.YouTubeClient
	LLMClient       interfaces.LLMClient
	AnalysisService interfaces.AnalysisService
	ReportService   interfaces.ReportService
	StartupTime     time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, clients and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	binDir := getBinaryDir()

	// Resolve config: explicit path, INSIGHT_CONFIG, binary dir, then dev fallback
	if configPath == "" {
		configPath = os.Getenv("INSIGHT_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "insight.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/insight.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.InitLogger(config.Logging)

	marketClient := yahoo.NewClient(
		yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL),
		yahoo.WithRateLimit(config.Clients.Yahoo.RateLimit),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
		yahoo.WithLogger(logger),
	)

	wikipediaClient := wikipedia.NewClient(
		wikipedia.WithBaseURL(config.Clients.Wikipedia.BaseURL),
		wikipedia.WithTimeout(config.Clients.Wikipedia.GetTimeout()),
		wikipedia.WithLogger(logger),
	)

	youtubeClient := youtube.NewClient(
		config.Clients.YouTube.APIKey,
		youtube.WithBaseURL(config.Clients.YouTube.BaseURL),
		youtube.WithRateLimit(config.Clients.YouTube.RateLimit),
		youtube.WithTimeout(config.Clients.YouTube.GetTimeout()),
		youtube.WithLogger(logger),
	)

	llmClient, err := llm.New(ctx, &config.Clients.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	analysisService := analysis.NewService(llmClient, string(config.Clients.LLM.Provider))

	reportService := report.NewService(
		marketClient,
		wikipediaClient,
		youtubeClient,
		analysisService,
		config.Clients.YouTube.APIKey,
	)

	logger.Info().
		Str("environment", config.Environment).
		Str("llm_provider", string(config.Clients.LLM.Provider)).
		Bool("youtube_enabled", config.Clients.YouTube.APIKey != "").
		Msg("Application initialized")

	return &App{
		Config:          config,
		Logger:          logger,
		MarketClient:    marketClient,
		WikipediaClient: wikipediaClient,
		YouTubeClient:   youtubeClient,
		LLMClient:       llmClient,
		AnalysisService: analysisService,
		ReportService:   reportService,
		StartupTime:     time.Now(),
	}, nil
}
