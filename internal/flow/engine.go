// Package flow implements the conversation state machine: the option menu,
// the single-message quote form and the step-by-step post-sale intake.
//
// The engine is deliberately total. Whatever event and session it is given,
// it returns a well-formed reply; unrecognized input and corrupted state
// both resolve to a polite reset instead of an error.
package flow

import (
	"context"
	"strings"

	"github.com/selec-cl/salesiq-bot-go/internal/logger"
	"github.com/selec-cl/salesiq-bot-go/internal/metrics"
	"github.com/selec-cl/salesiq-bot-go/internal/salesiq"
	"github.com/selec-cl/salesiq-bot-go/internal/session"
	"github.com/selec-cl/salesiq-bot-go/internal/textnorm"
)

// Flow labels used by the submissions metric.
const (
	flowQuote    = "quote"
	flowPostSale = "postsale"
)

// Engine dispatches webhook events against a visitor's session.
type Engine struct {
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewEngine creates the conversation engine.
func NewEngine(log *logger.Logger, m *metrics.Metrics) *Engine {
	return &Engine{
		logger:  log.WithModule("flow"),
		metrics: m,
	}
}

// Handle answers one webhook event. The caller holds the visitor's session
// lock; for handlers other than trigger and message sess may be nil, since
// those events never touch the session.
func (e *Engine) Handle(ctx context.Context, ev *salesiq.Event, sess *session.Session) *salesiq.Reply {
	switch ev.Handler {
	case salesiq.HandlerTrigger:
		return e.handleTrigger(ctx, sess)
	case salesiq.HandlerMessage:
		return e.handleMessage(ctx, sess, ev.MessageText())
	default:
		return salesiq.NewReply(msgAcknowledged)
	}
}

func (e *Engine) handleTrigger(ctx context.Context, sess *session.Session) *salesiq.Reply {
	e.transition(ctx, sess, session.StateMainMenu)

	return salesiq.NewReply(msgWelcome, msgPickOption).
		WithSelect(OptionQuote, OptionPostSale)
}

func (e *Engine) handleMessage(ctx context.Context, sess *session.Session, text string) *salesiq.Reply {
	switch sess.State {
	case session.StateStart, session.StateMainMenu:
		return e.handleMenu(ctx, sess, text)
	case session.StateQuoteBlock:
		return e.handleQuoteBlock(ctx, sess, text)
	case session.StatePostSaleName,
		session.StatePostSaleTaxID,
		session.StatePostSaleInvoice,
		session.StatePostSaleDetail:
		return e.handlePostSale(ctx, sess, text)
	default:
		// Corrupted or unknown state, e.g. read back from an older
		// deployment's storage. Reset to the menu.
		e.logger.WarnContext(ctx, "resetting session with unknown state",
			"state", sess.State.String())
		e.metrics.RecordUnrecognized()
		e.transition(ctx, sess, session.StateMainMenu)

		return salesiq.NewReply(msgNotUnderstood1, msgNotUnderstood2)
	}
}

// wantsQuote also covers the full labels "Solicitud Cotización" and
// "cotización", since both contain the stem.
func wantsQuote(norm string) bool {
	return strings.Contains(norm, "cotiz")
}

func wantsPostSale(norm string) bool {
	return strings.Contains(norm, "postventa") || strings.Contains(norm, "post venta")
}

func (e *Engine) handleMenu(ctx context.Context, sess *session.Session, text string) *salesiq.Reply {
	norm := textnorm.Normalize(text)

	// Quote matching runs first: a message naming both options is taken
	// as a quote request.
	if wantsQuote(norm) {
		e.transition(ctx, sess, session.StateQuoteBlock)
		return salesiq.NewReply(msgQuoteForm)
	}

	if wantsPostSale(norm) {
		e.transition(ctx, sess, session.StatePostSaleName)
		return salesiq.NewReply(msgPostSaleIntro, msgPostSaleAskName)
	}

	e.metrics.RecordUnrecognized()

	return salesiq.NewReply(msgMenuRetry1, msgMenuRetry2).
		WithSelect(OptionQuote, OptionPostSale)
}

func (e *Engine) handleQuoteBlock(ctx context.Context, sess *session.Session, text string) *salesiq.Reply {
	form := ParseQuoteForm(text)
	form.SaveTo(sess)

	e.transition(ctx, sess, session.StateMainMenu)
	e.metrics.RecordSubmission(flowQuote)
	e.logger.InfoContext(ctx, "quote request registered")

	return salesiq.NewReply(msgQuoteRegistered, form.Summary(), msgQuoteFollowUp)
}

func (e *Engine) handlePostSale(ctx context.Context, sess *session.Session, text string) *salesiq.Reply {
	// Answers are stored as typed, not normalized.
	switch sess.State {
	case session.StatePostSaleName:
		sess.Set(keyPSName, text)
		e.transition(ctx, sess, session.StatePostSaleTaxID)
		return salesiq.NewReply(msgPostSaleAskTaxID)

	case session.StatePostSaleTaxID:
		sess.Set(keyPSTaxID, text)
		e.transition(ctx, sess, session.StatePostSaleInvoice)
		return salesiq.NewReply(msgPostSaleAskInvoice)

	case session.StatePostSaleInvoice:
		sess.Set(keyPSInvoice, text)
		e.transition(ctx, sess, session.StatePostSaleDetail)
		return salesiq.NewReply(msgPostSaleAskDetail)

	case session.StatePostSaleDetail:
		sess.Set(keyPSDetail, text)
		summary := PostSaleCaseFrom(sess).Summary()

		e.transition(ctx, sess, session.StateMainMenu)
		e.metrics.RecordSubmission(flowPostSale)
		e.logger.InfoContext(ctx, "post-sale case registered")

		return salesiq.NewReply(msgPostSaleRegistered, summary, msgPostSaleFollowUp)

	default:
		e.transition(ctx, sess, session.StateMainMenu)
		return salesiq.NewReply(msgConversationError1, msgConversationError2)
	}
}

func (e *Engine) transition(_ context.Context, sess *session.Session, to session.State) {
	if sess.State != to {
		e.metrics.RecordStateTransition(sess.State.String(), to.String())
	}
	sess.State = to
}
