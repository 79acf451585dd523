// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the sheet source, LLM providers, cache TTL, and server timeouts.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Google Sheets Configuration
	SheetID         string        // Spreadsheet document ID
	CoursesSheet    string        // Worksheet name for courses (default: "courses")
	FAQSheet        string        // Worksheet name for FAQ entries (default: "faq")
	SheetTimeout    time.Duration // Timeout for a single sheet fetch
	SheetMaxRetries int           // Retries with exponential backoff on transient failures

	// LLM Configuration
	OpenAIAPIKey  string // OpenAI API key (primary generation provider)
	OpenAIModel   string // Chat model (default: gpt-4o-mini)
	OpenAIBaseURL string // Optional OpenAI-compatible endpoint override
	GeminiAPIKey  string // Gemini API key (fallback generation provider)
	GeminiModel   string // Gemini model (default: gemini-2.5-flash)

	// Admin / Metrics Authentication
	AdminToken      string // Shared secret for POST /admin/refresh (empty = endpoint disabled)
	MetricsUsername string // Username for /metrics Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics Basic Auth (empty = no auth)

	// Error tracking (Better Stack via Sentry SDK)
	SentryToken       string
	SentryHost        string
	SentryEnvironment string

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data Configuration
	DataDir         string        // Directory for the SQLite snapshot database
	CacheTTL        time.Duration // Absolute expiration for dataset snapshots (default: 300s)
	RefreshInterval time.Duration // Period of the background dataset refresh job

	// Request budget for the full answer pipeline
	RequestBudget time.Duration

	// Per-subscriber rate limiting (token bucket)
	UserRateLimitBurst        float64 // Maximum burst tokens per subscriber (default: 5)
	UserRateLimitRefillPerSec float64 // Tokens refilled per second (default: 0.2 = 1 per 5s)
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first, then reads from env vars.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		SheetID:         getEnv("SHEET_ID", ""),
		CoursesSheet:    getEnv("COURSES_SHEET", "courses"),
		FAQSheet:        getEnv("FAQ_SHEET", "faq"),
		SheetTimeout:    getDurationEnv("SHEET_TIMEOUT", SheetRequest),
		SheetMaxRetries: getIntEnv("SHEET_MAX_RETRIES", 3),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		AdminToken:      getEnv("ADMIN_TOKEN", ""),
		MetricsUsername: getEnv("METRICS_USERNAME", "prometheus"),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),

		SentryToken:       getEnv("SENTRY_TOKEN", ""),
		SentryHost:        getEnv("SENTRY_HOST", ""),
		SentryEnvironment: getEnv("SENTRY_ENVIRONMENT", "production"),

		Port:            getEnv("PORT", "5000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		DataDir:         getEnv("DATA_DIR", "./data"),
		CacheTTL:        getDurationEnv("CACHE_TTL", 300*time.Second),
		RefreshInterval: getDurationEnv("REFRESH_INTERVAL", 300*time.Second),

		RequestBudget: getDurationEnv("REQUEST_BUDGET", RequestProcessing),

		UserRateLimitBurst:        getFloatEnv("USER_RATE_LIMIT_BURST", 5.0),
		UserRateLimitRefillPerSec: getFloatEnv("USER_RATE_LIMIT_REFILL_PER_SEC", 0.2), // 1 per 5s
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.SheetID == "" {
		errs = append(errs, errors.New("SHEET_ID is required"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("DATA_DIR is required"))
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must be positive, got %v", c.CacheTTL))
	}
	if c.SheetTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHEET_TIMEOUT must be positive, got %v", c.SheetTimeout))
	}
	if c.SheetMaxRetries < 0 {
		errs = append(errs, fmt.Errorf("SHEET_MAX_RETRIES cannot be negative, got %d", c.SheetMaxRetries))
	}
	if c.RequestBudget <= 0 {
		errs = append(errs, fmt.Errorf("REQUEST_BUDGET must be positive, got %v", c.RequestBudget))
	}
	if c.RefreshInterval <= 0 {
		errs = append(errs, fmt.Errorf("REFRESH_INTERVAL must be positive, got %v", c.RefreshInterval))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// HasGenerator returns true if at least one LLM provider is configured.
func (c *Config) HasGenerator() bool {
	return c.OpenAIAPIKey != "" || c.GeminiAPIKey != ""
}

// SQLitePath returns the full path to the SQLite snapshot database file.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "snapshots.db")
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
