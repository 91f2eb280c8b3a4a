// Package main provides the SalesIQ chatbot server entry point.
package main

import (
	"context"
	"time"

	"github.com/selec-cl/salesiq-bot-go/internal/config"
	"github.com/selec-cl/salesiq-bot-go/internal/logger"
	"github.com/selec-cl/salesiq-bot-go/internal/metrics"
	"github.com/selec-cl/salesiq-bot-go/internal/session"
)

// sessionMetricsInterval is how often the active-sessions gauge refreshes.
const sessionMetricsInterval = 30 * time.Second

// evictIdleSessions periodically removes sessions idle past the TTL.
// Visitors whose session was evicted simply start again at the menu.
func evictIdleSessions(ctx context.Context, store session.Store, cfg *config.Config, m *metrics.Metrics, log *logger.Logger) {
	log.Info("Session eviction job started",
		"ttl", cfg.SessionTTL.String(),
		"interval", cfg.SessionSweepInterval.String())

	ticker := time.NewTicker(cfg.SessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Session eviction job stopped")
			return
		case <-ticker.C:
			opCtx, cancel := context.WithTimeout(ctx, config.StoreOperation)
			evicted, err := store.EvictIdle(opCtx, cfg.SessionTTL)
			cancel()

			if err != nil {
				log.WithError(err).Error("Session eviction failed")
				continue
			}
			if evicted > 0 {
				m.RecordSessionEvicted(evicted)
				log.Info("Idle sessions evicted", "count", evicted)
			}
		}
	}
}

// updateSessionMetrics keeps the active-sessions gauge current.
func updateSessionMetrics(ctx context.Context, store session.Store, m *metrics.Metrics, log *logger.Logger) {
	ticker := time.NewTicker(sessionMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			opCtx, cancel := context.WithTimeout(ctx, config.StoreOperation)
			count, err := store.Count(opCtx)
			cancel()

			if err != nil {
				log.WithError(err).Warn("Failed to count sessions for metrics")
				continue
			}
			m.SetSessionsActive(count)
		}
	}
}
