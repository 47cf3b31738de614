package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	ordersCreatedTotal metric.Int64Counter
	ordersUpdatedTotal metric.Int64Counter
	ordersDeletedTotal metric.Int64Counter
	writeDuration      metric.Float64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.ordersCreatedTotal, err = meter.Int64Counter(
		"orders_created_total",
		metric.WithDescription("Total number of orders created"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create orders_created_total counter: %w", err)
	}

	m.ordersUpdatedTotal, err = meter.Int64Counter(
		"orders_updated_total",
		metric.WithDescription("Total number of order patch operations"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create orders_updated_total counter: %w", err)
	}

	m.ordersDeletedTotal, err = meter.Int64Counter(
		"orders_deleted_total",
		metric.WithDescription("Total number of orders deleted"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create orders_deleted_total counter: %w", err)
	}

	m.writeDuration, err = meter.Float64Histogram(
		"order_write_duration_seconds",
		metric.WithDescription("Duration of order write operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order_write_duration histogram: %w", err)
	}

	return m, nil
}

func (m *Metrics) RecordOrderCreated(ctx context.Context, success bool) {
	m.ordersCreatedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", statusLabel(success)),
	))
}

func (m *Metrics) RecordOrderUpdated(ctx context.Context, success bool) {
	m.ordersUpdatedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", statusLabel(success)),
	))
}

func (m *Metrics) RecordOrderDeleted(ctx context.Context, removed bool) {
	m.ordersDeletedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("removed", removed),
	))
}

func (m *Metrics) RecordWriteDuration(ctx context.Context, operation string, durationSeconds float64) {
	m.writeDuration.Record(ctx, durationSeconds, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
