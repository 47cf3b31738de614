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

type ObservableUpdateOrderHandler struct {
	handler UpdateOrderHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableUpdateOrderHandler(handler UpdateOrderHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableUpdateOrderHandler {
	return &ObservableUpdateOrderHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableUpdateOrderHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "UpdateOrderCommand.Handle")
	defer span.End()

	start := time.Now()
	var success bool
	defer func() {
		duration := time.Since(start).Seconds()
		o.metrics.RecordWriteDuration(ctx, "update", duration)
		o.metrics.RecordOrderUpdated(ctx, success)
	}()

	attrs := []any{"order_id", cmd.OrderID, "items_patched", cmd.Patch.Items != nil}
	if subject, ok := auth.SubjectFromContext(ctx); ok {
		attrs = append(attrs, "subject", subject)
	}
	o.logger.InfoContext(ctx, "patching order", attrs...)

	order, err := o.handler.Handle(ctx, cmd)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "failed to patch order",
			"error", err,
			"order_id", cmd.OrderID,
		)
		return nil, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", order.ID),
		attribute.Float64("order.total_value", order.TotalValue),
		attribute.String("order.status", order.Status),
	)

	o.logger.InfoContext(ctx, "order patched",
		"order_id", order.ID,
		"total_value", order.TotalValue,
	)

	success = true
	telemetry.SetSpanSuccess(span)

	return order, nil
}
