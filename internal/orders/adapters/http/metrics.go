package http

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records the request-level instruments emitted by the middleware
// stack: a per-route duration histogram and a total counter that also carries
// the response status.
type Metrics struct {
	requestsTotal   metric.Int64Counter
	requestDuration metric.Float64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	requestsTotal, err := meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create http_requests_total counter: %w", err)
	}

	requestDuration, err := meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create http_request_duration histogram: %w", err)
	}

	return &Metrics{
		requestsTotal:   requestsTotal,
		requestDuration: requestDuration,
	}, nil
}

// RecordRequest records one served request. The status code only labels the
// counter; keying the histogram by it would explode its cardinality for no
// latency insight.
func (m *Metrics) RecordRequest(ctx context.Context, method, path string, statusCode int, durationSeconds float64) {
	route := []attribute.KeyValue{
		attribute.String("method", method),
		attribute.String("path", path),
	}

	m.requestsTotal.Add(ctx, 1, metric.WithAttributes(
		append(route, attribute.Int("status_code", statusCode))...,
	))
	m.requestDuration.Record(ctx, durationSeconds, metric.WithAttributes(route...))
}
