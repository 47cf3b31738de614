package commands

import (
	"context"
	"time"

	"github.com/mfcarvalho/orders-api/internal/orders/domain"
	"github.com/mfcarvalho/orders-api/internal/orders/ports"
)

// CreateOrderCommand captures a request to create an order. Total value,
// status and creation time are always assigned server-side.
type CreateOrderCommand struct {
	CustomerID      *int64
	Items           []domain.Item
	ShippingAddress *string
}

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error)
}

type CreateOrderCommandHandler struct {
	repo ports.OrderRepository
	now  func() time.Time
}

func NewCreateOrderCommandHandler(repo ports.OrderRepository) *CreateOrderCommandHandler {
	return &CreateOrderCommandHandler{
		repo: repo,
		now:  time.Now,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	order, err := domain.NewOrder(domain.CreateOrderInput{
		CustomerID:      cmd.CustomerID,
		Items:           cmd.Items,
		ShippingAddress: cmd.ShippingAddress,
	}, h.now())
	if err != nil {
		return nil, err
	}

	return h.repo.Create(ctx, order)
}
