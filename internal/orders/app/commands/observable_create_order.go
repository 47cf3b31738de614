package commands

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mfcarvalho/orders-api/internal/auth"
	"github.com/mfcarvalho/orders-api/internal/orders/domain"
	"github.com/mfcarvalho/orders-api/internal/orders/metrics"
	"github.com/mfcarvalho/orders-api/internal/telemetry"
)

type ObservableCreateOrderHandler struct {
	handler CreateOrderHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableCreateOrderHandler(handler CreateOrderHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableCreateOrderHandler {
	return &ObservableCreateOrderHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableCreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "CreateOrderCommand.Handle")
	defer span.End()

	start := time.Now()
	var success bool
	defer func() {
		duration := time.Since(start).Seconds()
		o.metrics.RecordWriteDuration(ctx, "create", duration)
		o.metrics.RecordOrderCreated(ctx, success)
	}()

	attrs := []any{"item_count", len(cmd.Items)}
	if subject, ok := auth.SubjectFromContext(ctx); ok {
		attrs = append(attrs, "subject", subject)
	}
	o.logger.InfoContext(ctx, "creating order", attrs...)

	order, err := o.handler.Handle(ctx, cmd)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "failed to create order", "error", err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", order.ID),
		attribute.Int64("order.customer_id", order.CustomerID),
		attribute.Float64("order.total_value", order.TotalValue),
		attribute.String("order.status", order.Status),
	)

	o.logger.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"customer_id", order.CustomerID,
		"total_value", order.TotalValue,
	)

	success = true
	telemetry.SetSpanSuccess(span)

	return order, nil
}
