package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestLoggerTraceCorrelation(t *testing.T) {
	t.Run("stamps trace and span ids inside an active span", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLoggerWithWriter(&buf, slog.LevelInfo)

		tp := sdktrace.NewTracerProvider()
		defer func() { _ = tp.Shutdown(context.Background()) }()

		ctx, span := tp.Tracer("test").Start(context.Background(), "create order")
		defer span.End()

		logger.InfoContext(ctx, "order created", "order_id", "665f1f77bcf86cd799439011")

		entry := logLine(t, &buf)

		if entry["trace_id"] != TraceID(ctx) {
			t.Errorf("expected trace_id %q, got %v", TraceID(ctx), entry["trace_id"])
		}
		if entry["span_id"] != SpanID(ctx) {
			t.Errorf("expected span_id %q, got %v", SpanID(ctx), entry["span_id"])
		}
		if entry["order_id"] != "665f1f77bcf86cd799439011" {
			t.Errorf("expected order_id attribute, got %v", entry["order_id"])
		}
	})

	t.Run("omits trace fields outside a span", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLoggerWithWriter(&buf, slog.LevelInfo)

		logger.InfoContext(context.Background(), "http request", "path", "/orders")

		entry := logLine(t, &buf)

		if _, ok := entry["trace_id"]; ok {
			t.Error("expected no trace_id outside a span")
		}
		if _, ok := entry["span_id"]; ok {
			t.Error("expected no span_id outside a span")
		}
	})

	t.Run("preserves attrs and groups added through the slog API", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLoggerWithWriter(&buf, slog.LevelInfo).
			With("service", "orders-api").
			WithGroup("request")

		logger.Info("handled", "status", 200)

		entry := logLine(t, &buf)

		if entry["service"] != "orders-api" {
			t.Errorf("expected service attr, got %v", entry["service"])
		}

		group, ok := entry["request"].(map[string]any)
		if !ok {
			t.Fatalf("expected request group, got %v", entry["request"])
		}
		if group["status"] != float64(200) {
			t.Errorf("expected status 200 in group, got %v", group["status"])
		}
	})

	t.Run("filters records below the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLoggerWithWriter(&buf, slog.LevelWarn)

		logger.Info("dropped")

		if buf.Len() != 0 {
			t.Errorf("expected debug output suppressed, got %q", buf.String())
		}

		logger.Warn("kept")
		if buf.Len() == 0 {
			t.Error("expected warn output emitted")
		}
	})
}
