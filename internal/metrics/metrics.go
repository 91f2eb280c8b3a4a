package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Webhook metrics
	WebhookDurationSeconds *prometheus.HistogramVec
	WebhookRequestsTotal   *prometheus.CounterVec

	// Conversation flow metrics
	StateTransitionsTotal *prometheus.CounterVec
	SubmissionsTotal      *prometheus.CounterVec
	UnrecognizedTotal     prometheus.Counter

	// Session store metrics
	SessionsActive  prometheus.Gauge
	SessionsTotal   *prometheus.CounterVec
	SessionsEvicted prometheus.Counter

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		// Webhook metrics
		WebhookDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "salesiq_webhook_duration_seconds",
				Help:    "Webhook processing duration in seconds by event type",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}, // In-memory flow, sub-second expected
			},
			[]string{"event_type"}, // event_type: trigger, message, other
		),

		WebhookRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "salesiq_webhook_requests_total",
				Help: "Total number of webhook requests by event type and status",
			},
			[]string{"event_type", "status"}, // status: success, error, rate_limited
		),

		// Conversation flow metrics
		StateTransitionsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "salesiq_state_transitions_total",
				Help: "Total number of conversation state transitions",
			},
			[]string{"from", "to"},
		),

		SubmissionsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "salesiq_submissions_total",
				Help: "Total number of completed quote and post-sale submissions",
			},
			[]string{"flow"}, // flow: quote, postsale
		),

		UnrecognizedTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "salesiq_unrecognized_messages_total",
				Help: "Total number of menu messages that matched no option",
			},
		),

		// Session store metrics
		SessionsActive: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "salesiq_sessions_active",
				Help: "Current number of live conversation sessions",
			},
		),

		SessionsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "salesiq_sessions_total",
				Help: "Total number of session store operations by kind",
			},
			[]string{"kind"}, // kind: created, resumed
		),

		SessionsEvicted: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "salesiq_sessions_evicted_total",
				Help: "Total number of sessions evicted after idle TTL",
			},
		),

		// HTTP metrics
		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "salesiq_http_errors_total",
				Help: "Total HTTP errors by type and path",
			},
			[]string{"error_type", "path"}, // error_type: bad_payload, store, etc.
		),

		// Rate limiter metrics
		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "salesiq_rate_limiter_dropped_total",
				Help: "Total number of requests dropped by rate limiter",
			},
			[]string{"limiter_type"}, // limiter_type: visitor, global
		),
	}

	return m
}

// RecordWebhook records a webhook request
func (m *Metrics) RecordWebhook(eventType, status string, duration float64) {
	m.WebhookRequestsTotal.WithLabelValues(eventType, status).Inc()
	m.WebhookDurationSeconds.WithLabelValues(eventType).Observe(duration)
}

// RecordStateTransition records a conversation state transition
func (m *Metrics) RecordStateTransition(from, to string) {
	m.StateTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordSubmission records a completed quote or post-sale submission
func (m *Metrics) RecordSubmission(flow string) {
	m.SubmissionsTotal.WithLabelValues(flow).Inc()
}

// RecordUnrecognized records a menu message that matched no option
func (m *Metrics) RecordUnrecognized() {
	m.UnrecognizedTotal.Inc()
}

// SetSessionsActive updates the live session gauge
func (m *Metrics) SetSessionsActive(count int) {
	m.SessionsActive.Set(float64(count))
}

// RecordSessionCreated records a lazily created session
func (m *Metrics) RecordSessionCreated() {
	m.SessionsTotal.WithLabelValues("created").Inc()
}

// RecordSessionResumed records a lookup that found an existing session
func (m *Metrics) RecordSessionResumed() {
	m.SessionsTotal.WithLabelValues("resumed").Inc()
}

// RecordSessionEvicted records a session removed by the TTL cleanup loop
func (m *Metrics) RecordSessionEvicted(count int) {
	m.SessionsEvicted.Add(float64(count))
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType, path string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType, path).Inc()
}

// RecordRateLimiterDrop records a request dropped by rate limiter
func (m *Metrics) RecordRateLimiterDrop(limiterType string) {
	m.RateLimiterDropped.WithLabelValues(limiterType).Inc()
}
