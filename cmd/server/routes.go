// Package main provides the SalesIQ chatbot server entry point.
package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/selec-cl/salesiq-bot-go/internal/session"
	"github.com/selec-cl/salesiq-bot-go/internal/webhook"
)

// setupRoutes configures all HTTP routes
func setupRoutes(router *gin.Engine, webhookHandler *webhook.Handler, store session.Store, registry *prometheus.Registry) {
	// Root endpoint - plain text uptime check, kept for the widget's
	// configured probe URL.
	rootHandler := func(c *gin.Context) {
		c.String(http.StatusOK, "Webhook server running")
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Health check endpoints
	// Liveness Probe - checks if the application is alive (minimal check)
	// This should NEVER check dependencies - only that the process is running
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness Probe - checks if the application is ready to serve traffic
	readyHandler := func(c *gin.Context) {
		if err := store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": err.Error(),
			})
			return
		}

		sessions, _ := store.Count(c.Request.Context())

		c.JSON(http.StatusOK, gin.H{
			"status":   "ready",
			"sessions": sessions,
		})
	}
	router.GET("/ready", readyHandler)
	router.HEAD("/ready", readyHandler)

	// SalesIQ webhook endpoint. GET answers browser checks, POST carries
	// the actual events.
	router.GET("/salesiq-webhook", webhookHandler.HandleProbe)
	router.POST("/salesiq-webhook", webhookHandler.Handle)

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}
