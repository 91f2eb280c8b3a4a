package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/selec-cl/salesiq-bot-go/internal/ctxutil"
)

func TestContextHandlerEnrichment(t *testing.T) {
	tests := []struct {
		name         string
		setupContext func(context.Context) context.Context
		wantFields   map[string]string
	}{
		{
			name: "extracts all context values",
			setupContext: func(ctx context.Context) context.Context {
				ctx = ctxutil.WithVisitorID(ctx, "visitor-12345")
				ctx = ctxutil.WithRequestID(ctx, "req-abc-123")
				return ctx
			},
			wantFields: map[string]string{
				"visitor_id": "visitor-12345",
				"request_id": "req-abc-123",
			},
		},
		{
			name: "extracts partial context values",
			setupContext: func(ctx context.Context) context.Context {
				return ctxutil.WithVisitorID(ctx, "visitor-99")
			},
			wantFields: map[string]string{
				"visitor_id": "visitor-99",
			},
		},
		{
			name:         "handles empty context",
			setupContext: func(ctx context.Context) context.Context { return ctx },
			wantFields:   map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler := NewContextHandler(slog.NewJSONHandler(&buf, nil))
			log := slog.New(handler)

			ctx := tt.setupContext(context.Background())
			log.InfoContext(ctx, "test")

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("Failed to parse log output: %v", err)
			}

			for key, want := range tt.wantFields {
				if entry[key] != want {
					t.Errorf("field %s = %v, want %q", key, entry[key], want)
				}
			}
			if _, ok := tt.wantFields["visitor_id"]; !ok {
				if _, present := entry["visitor_id"]; present {
					t.Error("visitor_id present on context without one")
				}
			}
		})
	}
}

func TestContextHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := NewContextHandler(slog.NewJSONHandler(&buf, nil))
	log := slog.New(handler).With("service", "salesiq-bot")

	ctx := ctxutil.WithRequestID(context.Background(), "req-1")
	log.InfoContext(ctx, "test")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse log output: %v", err)
	}
	if entry["service"] != "salesiq-bot" {
		t.Errorf("service = %v, want %q", entry["service"], "salesiq-bot")
	}
	if entry["request_id"] != "req-1" {
		t.Errorf("request_id = %v, want %q", entry["request_id"], "req-1")
	}
}
