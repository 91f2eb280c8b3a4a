package salesiq

import (
	"encoding/json"
	"testing"
)

func TestParseEventLenient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"not json", "hello"},
		{"json array", `[1, 2, 3]`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ev := ParseEvent([]byte(tt.body))
			if ev == nil {
				t.Fatal("ParseEvent() = nil")
			}
			if ev.Handler != "" {
				t.Errorf("Handler = %q, want empty", ev.Handler)
			}
			if got := ev.VisitorID(); got != AnonymousVisitor {
				t.Errorf("VisitorID() = %q, want %q", got, AnonymousVisitor)
			}
			if got := ev.MessageText(); got != "" {
				t.Errorf("MessageText() = %q, want empty", got)
			}
		})
	}
}

func TestEventVisitorIDFallbackChain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"id wins",
			`{"visitor": {"id": "v-1", "email": "a@b.cl", "ip": "1.2.3.4"}}`,
			"v-1",
		},
		{
			"numeric id",
			`{"visitor": {"id": 123456}}`,
			"123456",
		},
		{
			"visitor_id next",
			`{"visitor": {"visitor_id": "vid-7", "email": "a@b.cl"}}`,
			"vid-7",
		},
		{
			"email next",
			`{"visitor": {"email": "a@b.cl", "phone": "+569", "ip": "1.2.3.4"}}`,
			"a@b.cl",
		},
		{
			"phone next",
			`{"visitor": {"phone": "+56912345678", "ip": "1.2.3.4"}}`,
			"+56912345678",
		},
		{
			"ip last",
			`{"visitor": {"ip": "1.2.3.4"}}`,
			"1.2.3.4",
		},
		{
			"all empty",
			`{"visitor": {"id": "", "email": null}}`,
			AnonymousVisitor,
		},
		{
			"no visitor block",
			`{"handler": "message"}`,
			AnonymousVisitor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ev := ParseEvent([]byte(tt.body))
			if got := ev.VisitorID(); got != tt.want {
				t.Errorf("VisitorID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEventMessageText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"root object text",
			`{"message": {"text": "hola"}}`,
			"hola",
		},
		{
			"root object value",
			`{"message": {"value": "Servicio PostVenta"}}`,
			"Servicio PostVenta",
		},
		{
			"text preferred over value",
			`{"message": {"text": "a", "value": "b"}}`,
			"a",
		},
		{
			"root bare string",
			`{"message": "  cotizacion  "}`,
			"cotizacion",
		},
		{
			"request fallback",
			`{"request": {"message": {"text": "postventa"}}}`,
			"postventa",
		},
		{
			"root wins over request",
			`{"message": {"text": "uno"}, "request": {"message": {"text": "dos"}}}`,
			"uno",
		},
		{
			"empty root falls through to request",
			`{"message": {"text": ""}, "request": {"message": "dos"}}`,
			"dos",
		},
		{
			"numeric text",
			`{"message": {"text": 42}}`,
			"42",
		},
		{
			"no message anywhere",
			`{"handler": "message"}`,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ev := ParseEvent([]byte(tt.body))
			if got := ev.MessageText(); got != tt.want {
				t.Errorf("MessageText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReplyJSONShape(t *testing.T) {
	t.Parallel()

	reply := NewReply("Hola", "Elija una opción").WithSelect("Solicitud Cotización", "Servicio PostVenta")

	raw, err := json.Marshal(reply)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded["action"] != "reply" {
		t.Errorf("action = %v, want reply", decoded["action"])
	}
	replies, ok := decoded["replies"].([]any)
	if !ok || len(replies) != 2 {
		t.Fatalf("replies = %v, want two entries", decoded["replies"])
	}
	input, ok := decoded["input"].(map[string]any)
	if !ok {
		t.Fatalf("input = %v, want object", decoded["input"])
	}
	if input["type"] != "select" {
		t.Errorf("input.type = %v, want select", input["type"])
	}
	options, ok := input["options"].([]any)
	if !ok || len(options) != 2 {
		t.Errorf("input.options = %v, want two entries", input["options"])
	}
}

func TestReplyOmitsInputWhenAbsent(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(NewReply("Hola"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := decoded["input"]; ok {
		t.Error("input present, want omitted")
	}
}

func TestReplyEmptyRepliesNotNull(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(NewReply())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(raw) != `{"action":"reply","replies":[]}` {
		t.Errorf("Marshal() = %s, want empty array for replies", raw)
	}
}
