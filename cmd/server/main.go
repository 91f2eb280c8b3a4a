// Package main provides the SalesIQ chatbot server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/selec-cl/salesiq-bot-go/internal/buildinfo"
	"github.com/selec-cl/salesiq-bot-go/internal/config"
	"github.com/selec-cl/salesiq-bot-go/internal/flow"
	"github.com/selec-cl/salesiq-bot-go/internal/logger"
	"github.com/selec-cl/salesiq-bot-go/internal/metrics"
	"github.com/selec-cl/salesiq-bot-go/internal/ratelimit"
	"github.com/selec-cl/salesiq-bot-go/internal/sentry"
	"github.com/selec-cl/salesiq-bot-go/internal/session"
	"github.com/selec-cl/salesiq-bot-go/internal/storage"
	"github.com/selec-cl/salesiq-bot-go/internal/webhook"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})
	log.Info("Starting Selec SalesIQ bot server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit)

	// Initialize error tracking (disabled when no token is configured)
	if err := sentry.Initialize(sentry.Config{
		Token:       cfg.SentryToken,
		Host:        cfg.SentryHost,
		Environment: cfg.Environment,
		Release:     buildinfo.Version,
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize error tracking")
	}
	defer sentry.Flush(2 * time.Second)

	// Create session store
	store, err := newStore(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create session store")
	}
	defer func() { _ = store.Close() }()

	// Create Prometheus registry
	registry := prometheus.NewRegistry()

	// Register Go and process collectors
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	// Create metrics
	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Create conversation engine
	engine := flow.NewEngine(log, m)

	// Create webhook handler
	webhookHandler := webhook.NewHandler(webhook.HandlerConfig{
		Logger:  log,
		Metrics: m,
		Engine:  engine,
		Store:   store,
		RateLimit: ratelimit.PerKeyConfig{
			MaxTokens:     cfg.VisitorRateBurst,
			RefillRate:    cfg.VisitorRateRefillPerSec,
			CleanupPeriod: 5 * time.Minute,
		},
	})
	log.Info("Webhook handler created")

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))

	// Setup routes
	setupRoutes(router, webhookHandler, store, registry)

	// Create HTTP server with timeouts sized for webhook traffic
	// See internal/config/timeouts.go for detailed explanations
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  config.WebhookHTTPRead,
		WriteTimeout: config.WebhookHTTPWrite,
		IdleTimeout:  config.WebhookHTTPIdle,
	}

	// Start background jobs
	jobsCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	jobs, jobsCtx := errgroup.WithContext(jobsCtx)
	jobs.Go(func() error {
		evictIdleSessions(jobsCtx, store, cfg, m, log)
		return nil
	})
	jobs.Go(func() error {
		updateSessionMetrics(jobsCtx, store, m, log)
		return nil
	})

	// Start server in goroutine
	go func() {
		log.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Stop webhook handler background goroutines
	webhookHandler.Stop()

	// Cancel context to stop background jobs
	cancelJobs()

	jobsDone := make(chan struct{})
	go func() {
		_ = jobs.Wait()
		close(jobsDone)
	}()

	select {
	case <-jobsDone:
		log.Info("All background jobs stopped")
	case <-time.After(5 * time.Second):
		log.Warn("Timeout waiting for background jobs to stop")
	}

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	// Shutdown server gracefully
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Close session store
	if err := store.Close(); err != nil {
		log.WithError(err).Error("Failed to close session store")
	}

	log.Info("Server stopped")
}

// newStore builds the configured session store backend.
func newStore(cfg *config.Config, log *logger.Logger) (session.Store, error) {
	switch cfg.SessionBackend {
	case config.SessionBackendSQLite:
		db, err := storage.New(cfg.SQLitePath())
		if err != nil {
			return nil, err
		}
		log.Info("SQLite session store connected", "path", cfg.SQLitePath())
		return storage.NewSessionStore(db), nil
	default:
		log.Info("Using in-memory session store")
		return session.NewMemoryStore(), nil
	}
}
