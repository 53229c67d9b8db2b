// Package app wires configuration, clients, storage, and services into the
// shared core used by cmd/stockforge-server.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/stockforge/stockforge/internal/clients/danelfin"
	"github.com/stockforge/stockforge/internal/clients/finnhub"
	"github.com/stockforge/stockforge/internal/common"
	"github.com/stockforge/stockforge/internal/interfaces"
	"github.com/stockforge/stockforge/internal/services/enrich"
	"github.com/stockforge/stockforge/internal/services/portfolio"
	"github.com/stockforge/stockforge/internal/services/ranking"
	"github.com/stockforge/stockforge/internal/storage/surrealdb"
)

// App holds all initialized clients, services, and storage.
type App struct {
	Config *common.Config
	Logger *common.Logger

	// Storage is nil when no storage address is configured; the server then
	// runs stateless and the portfolio endpoints answer 503.
	Storage *surrealdb.Manager

	// RankingClient is nil when the ranking API key is absent.
	RankingClient    interfaces.RankingClient
	RankingService   interfaces.RankingService
	PortfolioService interfaces.PortfolioService

	StartupTime time.Time

	scheduler *scheduler
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes the application. configPath may be empty, in which case
// STOCKFORGE_CONFIG, then the binary directory, then config/ are consulted.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	if configPath == "" {
		configPath = os.Getenv("STOCKFORGE_CONFIG")
	}
	if configPath == "" {
		binDir := getBinaryDir()
		configPath = filepath.Join(binDir, "stockforge.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/stockforge.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level, config.Logging.Format)

	// Storage is opt-in. A broken storage config should not take the ranking
	// endpoints down with it.
	var storageManager *surrealdb.Manager
	if config.Storage.Address != "" {
		storageManager, err = surrealdb.NewManager(logger, config)
		if err != nil {
			logger.Warn().Err(err).Msg("Storage unavailable - portfolio endpoints disabled")
			storageManager = nil
		}
	} else {
		logger.Info().Msg("No storage address configured - running stateless")
	}

	var rankingClient interfaces.RankingClient
	if config.Clients.Danelfin.APIKey != "" {
		rankingClient = danelfin.NewClient(config.Clients.Danelfin.APIKey,
			danelfin.WithBaseURL(config.Clients.Danelfin.BaseURL),
			danelfin.WithLogger(logger),
			danelfin.WithRateLimit(config.Clients.Danelfin.RateLimit),
			danelfin.WithTimeout(config.Clients.Danelfin.GetTimeout()),
		)
	} else {
		logger.Warn().Msg("Ranking API key not configured - ranking endpoints will answer 500")
	}

	var companyClient interfaces.CompanyDataClient
	if config.Clients.Finnhub.APIKey != "" {
		companyClient = finnhub.NewClient(config.Clients.Finnhub.APIKey,
			finnhub.WithBaseURL(config.Clients.Finnhub.BaseURL),
			finnhub.WithLogger(logger),
			finnhub.WithRateLimit(config.Clients.Finnhub.RateLimit),
			finnhub.WithTimeout(config.Clients.Finnhub.GetTimeout()),
		)
	} else {
		logger.Info().Msg("Company data API key not configured - enrichment disabled")
	}

	enrichService := enrich.NewService(companyClient, logger)

	var rankingService interfaces.RankingService
	if rankingClient != nil {
		rankingService = ranking.NewService(rankingClient, enrichService, logger)
	}

	var portfolioService interfaces.PortfolioService
	if storageManager != nil {
		portfolioService = portfolio.NewService(storageManager.PortfolioStore(), logger)
	}

	a := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		RankingClient:    rankingClient,
		RankingService:   rankingService,
		PortfolioService: portfolioService,
		StartupTime:      startupStart,
	}

	if err := a.startScheduler(); err != nil {
		logger.Warn().Err(err).Msg("Failed to start warm-cache scheduler")
	}

	return a, nil
}

// Close releases background resources in reverse initialization order.
func (a *App) Close() error {
	a.stopScheduler()
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			return err
		}
	}
	return nil
}
