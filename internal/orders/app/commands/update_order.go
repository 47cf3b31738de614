package commands

import (
	"context"
	"strings"

	"github.com/mfcarvalho/orders-api/internal/orders/domain"
	"github.com/mfcarvalho/orders-api/internal/orders/ports"
)

// UpdateOrderCommand captures a sparse patch against an existing order.
type UpdateOrderCommand struct {
	OrderID string
	Patch   domain.OrderPatch
}

// Validate rejects empty patches before the gateway is ever reached and
// checks any fields the patch does carry.
func (c UpdateOrderCommand) Validate() error {
	if strings.TrimSpace(c.OrderID) == "" {
		return &domain.ValidationError{Fields: []string{"order id is required"}}
	}
	if c.Patch.IsEmpty() {
		return &domain.ValidationError{Fields: []string{"patch must contain at least one field"}}
	}
	return c.Patch.Validate()
}

type UpdateOrderHandler interface {
	Handle(ctx context.Context, cmd UpdateOrderCommand) (*domain.Order, error)
}

type UpdateOrderCommandHandler struct {
	repo ports.OrderRepository
}

func NewUpdateOrderCommandHandler(repo ports.OrderRepository) *UpdateOrderCommandHandler {
	return &UpdateOrderCommandHandler{repo: repo}
}

func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*domain.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.repo.Update(ctx, cmd.OrderID, cmd.Patch)
}
