// Package session tracks per-visitor conversation state.
// Each visitor of the chat widget owns one Session that records which step
// of the conversation they are in and the answers collected so far.
package session

import (
	"time"
)

// State is one named step in the conversation flow. It is a closed
// enumeration: the flow engine matches exhaustively on it, and anything
// outside the known values is treated as a corrupted session and recovered
// by resetting to the main menu.
type State int

const (
	// StateInvalid marks a state that could not be decoded, e.g. an
	// unrecognized value read back from a persisted session.
	StateInvalid State = iota - 1

	// StateStart is the lazily created default before the first trigger.
	// It behaves exactly like StateMainMenu.
	StateStart

	// StateMainMenu is the option menu (quote vs. post-sale).
	StateMainMenu

	// StateQuoteBlock waits for the whole quote form in a single message.
	StateQuoteBlock

	// StatePostSaleName through StatePostSaleDetail form the strict
	// four-step post-sale intake sequence.
	StatePostSaleName
	StatePostSaleTaxID
	StatePostSaleInvoice
	StatePostSaleDetail
)

// stateNames maps states to their wire/storage names. The names are kept
// from the original service so persisted sessions and dashboards stay
// readable.
var stateNames = map[State]string{
	StateStart:           "inicio",
	StateMainMenu:        "menu_principal",
	StateQuoteBlock:      "cotizacion_bloque",
	StatePostSaleName:    "postventa_nombre",
	StatePostSaleTaxID:   "postventa_rut",
	StatePostSaleInvoice: "postventa_numero_factura",
	StatePostSaleDetail:  "postventa_detalle",
}

// String returns the storage name of the state, or "unknown" for values
// outside the enumeration.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsValid reports whether s is one of the known conversation states.
func (s State) IsValid() bool {
	_, ok := stateNames[s]
	return ok
}

// ParseState maps a storage name back to its State.
// Unknown names yield StateInvalid and false; the flow engine turns that
// into a main-menu recovery rather than an error.
func ParseState(name string) (State, bool) {
	for state, n := range stateNames {
		if n == name {
			return state, true
		}
	}
	return StateInvalid, false
}

// Session is the conversation record for one visitor.
// All mutation happens under the store's per-visitor lock.
type Session struct {
	VisitorID string
	State     State
	Data      map[string]string
	UpdatedAt time.Time
}

// New creates a session in the default state with empty data.
func New(visitorID string) *Session {
	return &Session{
		VisitorID: visitorID,
		State:     StateStart,
		Data:      make(map[string]string),
		UpdatedAt: time.Now(),
	}
}

// Set stores an accumulated answer under the given field name.
func (s *Session) Set(key, value string) {
	if s.Data == nil {
		s.Data = make(map[string]string)
	}
	s.Data[key] = value
}

// Get returns the accumulated answer for the given field name, or "".
func (s *Session) Get(key string) string {
	return s.Data[key]
}

// Clone returns a deep copy of the session. Stores hand out copies so
// callers never share mutable state across goroutines.
func (s *Session) Clone() *Session {
	data := make(map[string]string, len(s.Data))
	for k, v := range s.Data {
		data[k] = v
	}
	return &Session{
		VisitorID: s.VisitorID,
		State:     s.State,
		Data:      data,
		UpdatedAt: s.UpdatedAt,
	}
}
