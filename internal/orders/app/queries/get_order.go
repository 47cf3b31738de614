package queries

import (
	"context"
	"strings"

	"github.com/mfcarvalho/orders-api/internal/orders/domain"
	"github.com/mfcarvalho/orders-api/internal/orders/ports"
)

// GetOrderQuery represents a request to retrieve an order by its external id.
type GetOrderQuery struct {
	OrderID string
}

// Validate ensures the query carries an id at all. Whether the id is
// well-formed key syntax is the repository's concern; both malformed and
// absent ids surface as not found.
func (q GetOrderQuery) Validate() error {
	if strings.TrimSpace(q.OrderID) == "" {
		return ports.ErrNotFound
	}
	return nil
}

// GetOrderQueryHandler executes GetOrderQuery and returns the order if found.
type GetOrderQueryHandler struct {
	repo ports.OrderRepository
}

// NewGetOrderQueryHandler constructs a GetOrderQueryHandler.
func NewGetOrderQueryHandler(repo ports.OrderRepository) *GetOrderQueryHandler {
	return &GetOrderQueryHandler{repo: repo}
}

// Handle executes the query and retrieves the order.
func (h *GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*domain.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.repo.GetByID(ctx, query.OrderID)
}
