// Package salesiq models the Zoho SalesIQ webhook wire format: the inbound
// event envelope and the outbound reply document.
//
// SalesIQ payloads vary between widget versions, so decoding is deliberately
// lenient. Missing or malformed fields degrade to zero values instead of
// errors; the conversation flow treats an empty message like any other
// unrecognized input.
package salesiq

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Handler values SalesIQ sends. Anything else is acknowledged generically.
const (
	HandlerTrigger = "trigger"
	HandlerMessage = "message"
)

// AnonymousVisitor is the visitor id used when the payload carries no
// usable identifier at all. Those visitors share one session.
const AnonymousVisitor = "anon"

// flexString decodes a JSON string or number into a string, since SalesIQ
// sends visitor ids in both shapes.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		// Not a string and not a number; drop it rather than fail the
		// whole envelope.
		*f = ""
		return nil
	}
	*f = flexString(n.String())
	return nil
}

// Visitor is the identification block of the envelope. None of the fields
// are guaranteed to be present.
type Visitor struct {
	ID        flexString `json:"id"`
	VisitorID flexString `json:"visitor_id"`
	Email     flexString `json:"email"`
	Phone     flexString `json:"phone"`
	IP        flexString `json:"ip"`
}

// Event is the inbound webhook envelope.
type Event struct {
	Handler   string  `json:"handler"`
	Operation string  `json:"operation"`
	Visitor   Visitor `json:"visitor"`

	Message json.RawMessage `json:"message"`
	Request struct {
		Message json.RawMessage `json:"message"`
	} `json:"request"`
}

// ParseEvent decodes a webhook body. A body that is not a JSON object
// yields an empty event, which downstream code answers with the generic
// acknowledgement.
func ParseEvent(body []byte) *Event {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return &Event{}
	}
	return &ev
}

// VisitorID returns a stable identifier for the visitor: the first
// non-empty of id, visitor_id, email, phone and ip, or AnonymousVisitor.
func (e *Event) VisitorID() string {
	for _, candidate := range []flexString{
		e.Visitor.ID,
		e.Visitor.VisitorID,
		e.Visitor.Email,
		e.Visitor.Phone,
		e.Visitor.IP,
	} {
		if candidate != "" {
			return string(candidate)
		}
	}
	return AnonymousVisitor
}

// MessageText extracts the visitor's message text. It looks at the
// root-level message first, then request.message; each may be an object
// with a text or value field, or a bare string. The result is trimmed.
func (e *Event) MessageText() string {
	if text := textFromRaw(e.Message); text != "" {
		return text
	}
	return textFromRaw(e.Request.Message)
}

func textFromRaw(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	if raw[0] == '{' {
		var obj struct {
			Text  flexString `json:"text"`
			Value flexString `json:"value"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return ""
		}
		if obj.Text != "" {
			return strings.TrimSpace(string(obj.Text))
		}
		return strings.TrimSpace(string(obj.Value))
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}
