package ctxutil

import (
	"context"
	"testing"
	"time"
)

func TestVisitorIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := GetVisitorID(ctx); got != "" {
		t.Errorf("GetVisitorID on empty context = %q, want empty", got)
	}

	ctx = WithVisitorID(ctx, "visitor-123")
	if got := GetVisitorID(ctx); got != "visitor-123" {
		t.Errorf("GetVisitorID = %q, want %q", got, "visitor-123")
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if _, ok := GetRequestID(ctx); ok {
		t.Error("GetRequestID on empty context should report not found")
	}

	ctx = WithRequestID(ctx, "req-abc")
	requestID, ok := GetRequestID(ctx)
	if !ok || requestID != "req-abc" {
		t.Errorf("GetRequestID = %q, %v, want %q, true", requestID, ok, "req-abc")
	}
}

func TestPreserveTracingDetachesCancellation(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	parent = WithVisitorID(parent, "visitor-456")
	parent = WithRequestID(parent, "req-def")

	detached := PreserveTracing(parent)
	cancel()

	if detached.Err() != nil {
		t.Error("detached context should not inherit cancellation")
	}
	if got := GetVisitorID(detached); got != "visitor-456" {
		t.Errorf("visitor ID not preserved: got %q", got)
	}
	if requestID, ok := GetRequestID(detached); !ok || requestID != "req-def" {
		t.Errorf("request ID not preserved: got %q, %v", requestID, ok)
	}
}
