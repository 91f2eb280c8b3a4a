// Package ctxutil provides type-safe context value management.
// Uses private key types to prevent collisions.
package ctxutil

import (
	"context"
)

type contextKey string

const (
	visitorIDKey contextKey = "ctxutil.visitorID"
	requestIDKey contextKey = "ctxutil.requestID"
)

// WithVisitorID adds a visitor ID to the context.
// Visitor IDs come from the SalesIQ event envelope and key the
// conversation session, rate limiting and log correlation.
func WithVisitorID(ctx context.Context, visitorID string) context.Context {
	return context.WithValue(ctx, visitorIDKey, visitorID)
}

// GetVisitorID retrieves the visitor ID from the context.
// Returns the visitor ID if found, empty string otherwise.
func GetVisitorID(ctx context.Context) string {
	if v := ctx.Value(visitorIDKey); v != nil {
		if visitorID, ok := v.(string); ok && visitorID != "" {
			return visitorID
		}
	}
	return ""
}

// WithRequestID adds a request ID to the context for tracing.
// Request ID is generated per webhook request for log correlation.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
// Returns the request ID and true if found, empty string and false otherwise.
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok
}

// PreserveTracing creates a detached context that preserves tracing values.
// The new context is independent of the parent's cancellation and deadlines.
//
// Use for background work that needs tracing but must outlive the HTTP
// request, such as session eviction triggered from the webhook path.
func PreserveTracing(ctx context.Context) context.Context {
	newCtx := context.Background()

	if visitorID := GetVisitorID(ctx); visitorID != "" {
		newCtx = WithVisitorID(newCtx, visitorID)
	}
	if requestID, ok := GetRequestID(ctx); ok && requestID != "" {
		newCtx = WithRequestID(newCtx, requestID)
	}

	return newCtx
}
