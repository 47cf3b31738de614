package adapters

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mfcarvalho/orders-api/internal/mongodb"
	"github.com/mfcarvalho/orders-api/internal/orders/domain"
	"github.com/mfcarvalho/orders-api/internal/orders/ports"
	"github.com/mfcarvalho/orders-api/internal/telemetry"
)

// ObservableRepository decorates a repository with spans and query metrics.
type ObservableRepository struct {
	repo    ports.OrderRepository
	metrics *mongodb.Metrics
}

func NewObservableRepository(repo ports.OrderRepository, metrics *mongodb.Metrics) *ObservableRepository {
	return &ObservableRepository{
		repo:    repo,
		metrics: metrics,
	}
}

var _ ports.OrderRepository = (*ObservableRepository)(nil)

func (r *ObservableRepository) Create(ctx context.Context, order domain.Order) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.Create")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("operation", "create"),
		attribute.Int64("order.customer_id", order.CustomerID),
	)

	start := time.Now()
	created, err := r.repo.Create(ctx, order)
	r.metrics.RecordQuery(ctx, "create_order", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.String("order.id", created.ID))
	telemetry.SetSpanSuccess(span)
	return created, nil
}

func (r *ObservableRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.GetByID")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", id),
		attribute.String("operation", "get_by_id"),
	)

	start := time.Now()
	order, err := r.repo.GetByID(ctx, id)
	r.metrics.RecordQuery(ctx, "get_order_by_id", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.SetSpanSuccess(span)
	return order, nil
}

func (r *ObservableRepository) List(ctx context.Context, page ports.ListPage) ([]domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.List")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("operation", "list"),
		attribute.Int64("skip", page.Skip),
		attribute.Int64("limit", page.Limit),
	)

	start := time.Now()
	orders, err := r.repo.List(ctx, page)
	r.metrics.RecordQuery(ctx, "list_orders", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int("result.count", len(orders)))
	telemetry.SetSpanSuccess(span)
	return orders, nil
}

func (r *ObservableRepository) Update(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.Update")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", id),
		attribute.String("operation", "update"),
		attribute.Bool("patch.items", patch.Items != nil),
	)

	start := time.Now()
	order, err := r.repo.Update(ctx, id, patch)
	r.metrics.RecordQuery(ctx, "update_order", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.SetSpanSuccess(span)
	return order, nil
}

func (r *ObservableRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.Delete")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", id),
		attribute.String("operation", "delete"),
	)

	start := time.Now()
	removed, err := r.repo.Delete(ctx, id)
	r.metrics.RecordQuery(ctx, "delete_order", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return false, err
	}

	telemetry.AddSpanAttributes(span, attribute.Bool("result.removed", removed))
	telemetry.SetSpanSuccess(span)
	return removed, nil
}
