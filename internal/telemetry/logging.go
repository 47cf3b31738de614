package telemetry

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// NewLogger builds the service's JSON logger. Records emitted with a context
// that carries an active span are stamped with trace_id and span_id so log
// lines can be joined to traces.
func NewLogger(level slog.Level) *slog.Logger {
	return NewLoggerWithWriter(os.Stdout, level)
}

// NewLoggerWithWriter is NewLogger with an explicit sink, for tests.
func NewLoggerWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	json := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(spanContextHandler{inner: json})
}

// spanContextHandler decorates a handler with trace correlation attributes
// taken from the record's context.
type spanContextHandler struct {
	inner slog.Handler
}

func (h spanContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h spanContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if traceID := TraceID(ctx); traceID != "" {
		r.AddAttrs(slog.String("trace_id", traceID))
	}
	if spanID := SpanID(ctx); spanID != "" {
		r.AddAttrs(slog.String("span_id", spanID))
	}
	return h.inner.Handle(ctx, r)
}

func (h spanContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return spanContextHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h spanContextHandler) WithGroup(name string) slog.Handler {
	return spanContextHandler{inner: h.inner.WithGroup(name)}
}
