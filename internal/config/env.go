// Package config defines environment variable keys for configuration.
package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Server
	EnvPort            = "PORT"
	EnvLogLevel        = "SELEC_LOG_LEVEL"
	EnvShutdownTimeout = "SELEC_SHUTDOWN_TIMEOUT"

	// Sessions
	EnvSessionBackend = "SELEC_SESSION_BACKEND"
	EnvSessionTTL     = "SELEC_SESSION_TTL"
	EnvSessionSweep   = "SELEC_SESSION_SWEEP_INTERVAL"
	EnvDataDir        = "SELEC_DATA_DIR"

	// Rate Limits
	EnvVisitorRateBurst  = "SELEC_VISITOR_RATE_BURST"
	EnvVisitorRateRefill = "SELEC_VISITOR_RATE_REFILL"

	// Observability
	EnvBetterStackToken    = "SELEC_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "SELEC_BETTERSTACK_ENDPOINT"
	EnvSentryToken         = "SELEC_SENTRY_TOKEN"
	EnvSentryHost          = "SELEC_SENTRY_HOST"
	EnvEnvironment         = "SELEC_ENVIRONMENT"
)
