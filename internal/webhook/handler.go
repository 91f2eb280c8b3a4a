// Package webhook handles SalesIQ webhook requests and dispatches them to
// the conversation engine.
package webhook

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/selec-cl/salesiq-bot-go/internal/ctxutil"
	"github.com/selec-cl/salesiq-bot-go/internal/flow"
	"github.com/selec-cl/salesiq-bot-go/internal/logger"
	"github.com/selec-cl/salesiq-bot-go/internal/metrics"
	"github.com/selec-cl/salesiq-bot-go/internal/ratelimit"
	"github.com/selec-cl/salesiq-bot-go/internal/salesiq"
	"github.com/selec-cl/salesiq-bot-go/internal/sentry"
	"github.com/selec-cl/salesiq-bot-go/internal/session"
)

// maxBodyBytes caps the webhook request body. SalesIQ payloads are a few
// KB; anything larger is not a chat message.
const maxBodyBytes = 64 * 1024

// msgTooManyRequests answers visitors who flood the chat. It goes through
// the normal reply channel so the widget renders it like any other bubble.
const msgTooManyRequests = "Estamos recibiendo muchos mensajes suyos. Por favor, espere unos segundos e intente nuevamente."

// Webhook outcome labels for the requests metric.
const (
	statusOK          = "ok"
	statusRateLimited = "rate_limited"
	statusStoreError  = "store_error"
)

// Handler answers SalesIQ webhook requests. Every request gets HTTP 200
// with a well-formed reply document; store failures degrade to a one-shot
// session so the visitor still gets an answer.
type Handler struct {
	logger  *logger.Logger
	metrics *metrics.Metrics
	engine  *flow.Engine
	store   session.Store
	limiter *ratelimit.PerKeyLimiter
}

// HandlerConfig holds configuration for creating a new Handler
type HandlerConfig struct {
	Logger    *logger.Logger
	Metrics   *metrics.Metrics
	Engine    *flow.Engine
	Store     session.Store
	RateLimit ratelimit.PerKeyConfig
}

// NewHandler creates a new webhook handler.
func NewHandler(cfg HandlerConfig) *Handler {
	h := &Handler{
		logger:  cfg.Logger.WithModule("webhook"),
		metrics: cfg.Metrics,
		engine:  cfg.Engine,
		store:   cfg.Store,
		limiter: ratelimit.NewPerKeyLimiter(cfg.RateLimit),
	}

	h.limiter.OnDrop(func() {
		h.metrics.RecordRateLimiterDrop("visitor")
	})

	return h
}

// Handle is the Gin handler for POST on the webhook endpoint.
func (h *Handler) Handle(c *gin.Context) {
	start := time.Now()

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		body = nil
	}

	ev := salesiq.ParseEvent(body)
	visitorID := ev.VisitorID()

	ctx := ctxutil.WithVisitorID(c.Request.Context(), visitorID)

	eventType := ev.Handler
	if eventType == "" {
		eventType = "unknown"
	}

	reply, status := h.dispatch(ctx, ev, visitorID)

	h.metrics.RecordWebhook(eventType, status, time.Since(start).Seconds())

	// SalesIQ disables the bot on non-2xx answers, so the status is 200
	// no matter what happened above.
	c.JSON(http.StatusOK, reply)
}

func (h *Handler) dispatch(ctx context.Context, ev *salesiq.Event, visitorID string) (*salesiq.Reply, string) {
	switch ev.Handler {
	case salesiq.HandlerTrigger, salesiq.HandlerMessage:
	default:
		return h.engine.Handle(ctx, ev, nil), statusOK
	}

	if !h.limiter.Allow(visitorID) {
		h.logger.WarnContext(ctx, "visitor rate limited")
		return salesiq.NewReply(msgTooManyRequests), statusRateLimited
	}

	unlock := h.store.Lock(visitorID)
	defer unlock()

	status := statusOK

	sess, created, err := h.store.GetOrCreate(ctx, visitorID)
	if err != nil {
		h.logger.WithError(err).ErrorContext(ctx, "session load failed; using one-shot session")
		sentry.CaptureExceptionWithContext(ctx, err)

		// The conversation still works within this request; it just
		// won't remember anything afterwards.
		sess = session.New(visitorID)
		status = statusStoreError
	} else if created {
		h.metrics.RecordSessionCreated()
	} else {
		h.metrics.RecordSessionResumed()
	}

	reply := h.engine.Handle(ctx, ev, sess)

	if status == statusOK {
		if err := h.store.Save(ctx, sess); err != nil {
			h.logger.WithError(err).ErrorContext(ctx, "session save failed")
			sentry.CaptureExceptionWithContext(ctx, err)
			status = statusStoreError
		}
	}

	return reply, status
}

// HandleProbe is the Gin handler for GET on the webhook endpoint, kept for
// quick checks from a browser.
func (h *Handler) HandleProbe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Use POST desde Zoho SalesIQ",
	})
}

// Stop releases the handler's background resources.
func (h *Handler) Stop() {
	h.limiter.Stop()
}
