// Package common provides shared utilities for StockForge
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for StockForge
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Clients     ClientsConfig   `toml:"clients"`
	Logging     LoggingConfig   `toml:"logging"`
	Auth        AuthConfig      `toml:"auth"`
	Scheduler   SchedulerConfig `toml:"scheduler"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds SurrealDB connection settings for the portfolio store.
// An empty Address disables server-side portfolios entirely.
type StorageConfig struct {
	Address   string `toml:"address"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Danelfin DanelfinConfig `toml:"danelfin"`
	Finnhub  FinnhubConfig  `toml:"finnhub"`
}

// DanelfinConfig holds ranking API configuration
type DanelfinConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *DanelfinConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// FinnhubConfig holds company-data API configuration
type FinnhubConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *FinnhubConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// AuthConfig holds bearer-token validation settings. Tokens are issued by an
// external identity provider; the server only verifies the shared secret.
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

// SchedulerConfig holds the warm-cache schedule. An empty spec disables it.
type SchedulerConfig struct {
	WarmCacheSpec string `toml:"warm_cache_spec"` // cron spec, e.g. "0 */4 * * *"
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Namespace: "stockforge",
			Database:  "stockforge",
		},
		Clients: ClientsConfig{
			Danelfin: DanelfinConfig{
				BaseURL:   "https://apirest.danelfin.com",
				RateLimit: 10,
				Timeout:   "30s",
			},
			Finnhub: FinnhubConfig{
				BaseURL:   "https://finnhub.io/api/v1",
				RateLimit: 10,
				Timeout:   "30s",
			},
		},
		Auth: AuthConfig{
			JWTSecret: "dev-jwt-secret-change-in-production",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
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
	if env := os.Getenv("STOCKFORGE_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("STOCKFORGE_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("STOCKFORGE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("STOCKFORGE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if addr := os.Getenv("STOCKFORGE_STORAGE_ADDRESS"); addr != "" {
		config.Storage.Address = addr
	}
	if user := os.Getenv("STOCKFORGE_STORAGE_USERNAME"); user != "" {
		config.Storage.Username = user
	}
	if pass := os.Getenv("STOCKFORGE_STORAGE_PASSWORD"); pass != "" {
		config.Storage.Password = pass
	}

	if v := os.Getenv("STOCKFORGE_AUTH_JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}

	if v := os.Getenv("STOCKFORGE_WARM_CACHE_SPEC"); v != "" {
		config.Scheduler.WarmCacheSpec = v
	}

	// API keys follow the upstream vendors' conventional variable names,
	// with STOCKFORGE_-prefixed fallbacks.
	config.Clients.Danelfin.APIKey = resolveAPIKey(
		config.Clients.Danelfin.APIKey, "DANELFIN_API_KEY", "STOCKFORGE_DANELFIN_API_KEY")
	config.Clients.Finnhub.APIKey = resolveAPIKey(
		config.Clients.Finnhub.APIKey, "FINNHUB_API_KEY", "STOCKFORGE_FINNHUB_API_KEY")
}

// resolveAPIKey returns the first non-empty environment value, else the fallback.
func resolveAPIKey(fallback string, envNames ...string) string {
	for _, name := range envNames {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return fallback
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
