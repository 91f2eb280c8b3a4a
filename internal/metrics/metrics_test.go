package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	if m == nil {
		t.Fatal("New() returned nil")
	}

	// Verify all metric fields are initialized
	if m.WebhookDurationSeconds == nil {
		t.Error("WebhookDurationSeconds is nil")
	}
	if m.WebhookRequestsTotal == nil {
		t.Error("WebhookRequestsTotal is nil")
	}
	if m.StateTransitionsTotal == nil {
		t.Error("StateTransitionsTotal is nil")
	}
	if m.SubmissionsTotal == nil {
		t.Error("SubmissionsTotal is nil")
	}
	if m.UnrecognizedTotal == nil {
		t.Error("UnrecognizedTotal is nil")
	}
	if m.SessionsActive == nil {
		t.Error("SessionsActive is nil")
	}
	if m.SessionsTotal == nil {
		t.Error("SessionsTotal is nil")
	}
	if m.SessionsEvicted == nil {
		t.Error("SessionsEvicted is nil")
	}
	if m.HTTPErrorsTotal == nil {
		t.Error("HTTPErrorsTotal is nil")
	}
	if m.RateLimiterDropped == nil {
		t.Error("RateLimiterDropped is nil")
	}
}

func TestRecordWebhook(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordWebhook("trigger", "success", 0.001)
	m.RecordWebhook("message", "success", 0.002)
	m.RecordWebhook("message", "rate_limited", 0.0)

	got := testutil.ToFloat64(m.WebhookRequestsTotal.WithLabelValues("message", "success"))
	if got != 1 {
		t.Errorf("message/success counter = %v, want 1", got)
	}
}

func TestRecordStateTransition(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordStateTransition("menu_principal", "cotizacion_bloque")
	m.RecordStateTransition("menu_principal", "cotizacion_bloque")
	m.RecordStateTransition("postventa_detalle", "menu_principal")

	got := testutil.ToFloat64(m.StateTransitionsTotal.WithLabelValues("menu_principal", "cotizacion_bloque"))
	if got != 2 {
		t.Errorf("transition counter = %v, want 2", got)
	}
}

func TestSessionMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordSessionCreated()
	m.RecordSessionResumed()
	m.RecordSessionResumed()
	m.SetSessionsActive(7)
	m.RecordSessionEvicted(3)

	if got := testutil.ToFloat64(m.SessionsActive); got != 7 {
		t.Errorf("SessionsActive = %v, want 7", got)
	}
	if got := testutil.ToFloat64(m.SessionsTotal.WithLabelValues("resumed")); got != 2 {
		t.Errorf("resumed counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.SessionsEvicted); got != 3 {
		t.Errorf("SessionsEvicted = %v, want 3", got)
	}
}

func TestRecordHTTPErrorAndDrops(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordHTTPError("bad_payload", "/salesiq-webhook")
	m.RecordRateLimiterDrop("visitor")
	m.RecordSubmission("quote")
	m.RecordSubmission("postsale")
	m.RecordUnrecognized()
}
