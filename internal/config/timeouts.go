// Package config provides centralized timeout constants for the application.
//
// The webhook flow is entirely in-memory (or a local SQLite lookup), so the
// budgets here are tight: SalesIQ expects the reply payload in the HTTP
// response itself, and a slow answer shows the visitor a stalled widget.
package config

import "time"

// Webhook timeouts
const (
	// WebhookProcessing is the timeout for handling a single chat event.
	// Covers session lookup, flow dispatch and session save. The flow never
	// performs network I/O, so anything beyond a few seconds means the
	// session backend is wedged and the request should be abandoned.
	WebhookProcessing = 5 * time.Second

	// WebhookHTTPRead is the HTTP server read timeout.
	// SalesIQ event envelopes are small JSON documents.
	WebhookHTTPRead = 10 * time.Second

	// WebhookHTTPWrite is the HTTP server write timeout.
	// Must accommodate WebhookProcessing plus response serialization.
	WebhookHTTPWrite = 10 * time.Second

	// WebhookHTTPIdle is the HTTP server idle timeout for keep-alive connections.
	WebhookHTTPIdle = 120 * time.Second
)

// Session store timeouts
const (
	// StoreOperation is the timeout for a single SQLite session read/write.
	StoreOperation = 2 * time.Second

	// SessionTTL is the default idle lifetime of a conversation session.
	// The original service kept sessions for the whole process lifetime;
	// an abandoned chat has no value after this long.
	SessionTTL = 12 * time.Hour

	// SessionSweepInterval is how often the eviction loop scans for
	// expired sessions.
	SessionSweepInterval = 10 * time.Minute
)
