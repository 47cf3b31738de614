package telemetry

import (
	"context"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// DiscardTraceExporter returns a span exporter that drops everything. Tests
// pass it to Setup so no collector is needed.
func DiscardTraceExporter() sdktrace.SpanExporter { return discardSpanExporter{} }

// DiscardMetricExporter returns a metric exporter that drops everything.
func DiscardMetricExporter() sdkmetric.Exporter { return discardMetricExporter{} }

type discardSpanExporter struct{}

func (discardSpanExporter) ExportSpans(context.Context, []sdktrace.ReadOnlySpan) error { return nil }
func (discardSpanExporter) Shutdown(context.Context) error                             { return nil }

type discardMetricExporter struct{}

func (discardMetricExporter) Temporality(sdkmetric.InstrumentKind) metricdata.Temporality {
	return metricdata.CumulativeTemporality
}

func (discardMetricExporter) Aggregation(sdkmetric.InstrumentKind) sdkmetric.Aggregation {
	return sdkmetric.AggregationDefault{}
}

func (discardMetricExporter) Export(context.Context, *metricdata.ResourceMetrics) error { return nil }
func (discardMetricExporter) ForceFlush(context.Context) error                          { return nil }
func (discardMetricExporter) Shutdown(context.Context) error                            { return nil }
