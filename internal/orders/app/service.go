package app

import (
	"context"
	"log/slog"

	"github.com/mfcarvalho/orders-api/internal/orders/app/commands"
	"github.com/mfcarvalho/orders-api/internal/orders/app/queries"
	"github.com/mfcarvalho/orders-api/internal/orders/domain"
	"github.com/mfcarvalho/orders-api/internal/orders/metrics"
	"github.com/mfcarvalho/orders-api/internal/orders/ports"
)

// Service bundles the order use cases exposed by the API.
type Service struct {
	repo               ports.OrderRepository
	metrics            *metrics.Metrics
	createOrderHandler commands.CreateOrderHandler
	updateOrderHandler commands.UpdateOrderHandler
	getOrderHandler    *queries.GetOrderQueryHandler
	listOrdersHandler  *queries.ListOrdersQueryHandler
}

// NewService wires required dependencies. Mutating use cases are wrapped
// with the observable decorators.
func NewService(
	repo ports.OrderRepository,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Service {
	createHandler := commands.NewObservableCreateOrderHandler(
		commands.NewCreateOrderCommandHandler(repo), logger, m)
	updateHandler := commands.NewObservableUpdateOrderHandler(
		commands.NewUpdateOrderCommandHandler(repo), logger, m)

	return &Service{
		repo:               repo,
		metrics:            m,
		createOrderHandler: createHandler,
		updateOrderHandler: updateHandler,
		getOrderHandler:    queries.NewGetOrderQueryHandler(repo),
		listOrdersHandler:  queries.NewListOrdersQueryHandler(repo),
	}
}

// CreateOrderInput captures the JSON payload for creating an order.
type CreateOrderInput struct {
	CustomerID      *int64        `json:"customer_id"`
	Items           []domain.Item `json:"items"`
	ShippingAddress *string       `json:"shipping_address"`
}

// CreateOrder validates, normalizes and persists a new order.
func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	cmd := commands.CreateOrderCommand{
		CustomerID:      input.CustomerID,
		Items:           input.Items,
		ShippingAddress: input.ShippingAddress,
	}
	return s.createOrderHandler.Handle(ctx, cmd)
}

// GetOrder retrieves an order by its external id.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.getOrderHandler.Handle(ctx, queries.GetOrderQuery{OrderID: id})
}

// ListOrders returns orders most recent first.
func (s *Service) ListOrders(ctx context.Context, skip, limit int64) ([]domain.Order, error) {
	return s.listOrdersHandler.Handle(ctx, queries.ListOrdersQuery{Skip: skip, Limit: limit})
}

// UpdateOrder applies a sparse patch to an existing order.
func (s *Service) UpdateOrder(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error) {
	return s.updateOrderHandler.Handle(ctx, commands.UpdateOrderCommand{OrderID: id, Patch: patch})
}

// DeleteOrder removes an order, reporting whether a record was removed.
func (s *Service) DeleteOrder(ctx context.Context, id string) (bool, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err == nil {
		s.metrics.RecordOrderDeleted(ctx, removed)
	}
	return removed, err
}
