// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the server, session store and rate limiting.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Session store backends.
const (
	SessionBackendMemory = "memory"
	SessionBackendSQLite = "sqlite"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration
	Environment     string // Deployment environment tag for error tracking

	// Session Configuration
	SessionBackend       string        // "memory" (default) or "sqlite"
	SessionTTL           time.Duration // Idle lifetime before a session is evicted
	SessionSweepInterval time.Duration // How often the eviction loop runs
	DataDir              string        // Data directory for the SQLite backend

	// Rate Limits (Token Bucket Algorithm)
	VisitorRateBurst        float64 // Maximum burst tokens per visitor
	VisitorRateRefillPerSec float64 // Tokens refilled per second

	// Observability
	BetterStackToken    string // Better Stack Logs token (empty = local logging only)
	BetterStackEndpoint string // Better Stack Logs ingesting host
	SentryToken         string // Better Stack Errors token (empty = Sentry disabled)
	SentryHost          string // Better Stack Errors ingesting host
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv(EnvPort, "3000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, 30*time.Second),
		Environment:     getEnv(EnvEnvironment, "production"),

		SessionBackend:       getEnv(EnvSessionBackend, SessionBackendMemory),
		SessionTTL:           getDurationEnv(EnvSessionTTL, SessionTTL),
		SessionSweepInterval: getDurationEnv(EnvSessionSweep, SessionSweepInterval),
		DataDir:              getEnv(EnvDataDir, getDefaultDataDir()),

		VisitorRateBurst:        getFloatEnv(EnvVisitorRateBurst, 10.0),
		VisitorRateRefillPerSec: getFloatEnv(EnvVisitorRateRefill, 0.5), // 1 message per 2s sustained

		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, "https://in.logs.betterstack.com"),
		SentryToken:         getEnv(EnvSentryToken, ""),
		SentryHost:          getEnv(EnvSentryHost, "errors.betterstack.com"),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	switch c.SessionBackend {
	case SessionBackendMemory, SessionBackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown session backend %q", c.SessionBackend))
	}
	if c.SessionBackend == SessionBackendSQLite && c.DataDir == "" {
		errs = append(errs, errors.New("SELEC_DATA_DIR is required for the sqlite backend"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("SELEC_SESSION_TTL must be positive, got %v", c.SessionTTL))
	}
	if c.SessionSweepInterval <= 0 {
		errs = append(errs, fmt.Errorf("SELEC_SESSION_SWEEP_INTERVAL must be positive, got %v", c.SessionSweepInterval))
	}
	if c.VisitorRateBurst < 1 {
		errs = append(errs, fmt.Errorf("SELEC_VISITOR_RATE_BURST must be at least 1, got %v", c.VisitorRateBurst))
	}
	if c.VisitorRateRefillPerSec <= 0 {
		errs = append(errs, fmt.Errorf("SELEC_VISITOR_RATE_REFILL must be positive, got %v", c.VisitorRateRefillPerSec))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SQLitePath returns the full path to the SQLite session database file
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "sessions.db")
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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

// getDefaultDataDir returns platform-specific default data directory
func getDefaultDataDir() string {
	if runtime.GOOS == "windows" {
		return "./data"
	}
	return "/data"
}
