package queries

import (
	"context"
	"fmt"

	"github.com/mfcarvalho/orders-api/internal/orders/domain"
	"github.com/mfcarvalho/orders-api/internal/orders/ports"
)

const (
	// DefaultLimit is applied when the caller does not ask for a page size.
	DefaultLimit = 10
	// MaxLimit caps a single page.
	MaxLimit = 100
)

// ListOrdersQuery represents a paginated request for recent orders.
type ListOrdersQuery struct {
	Skip  int64
	Limit int64
}

// Validate enforces the pagination bounds here, on the caller side of the
// gateway; the repository trusts the values it receives.
func (q ListOrdersQuery) Validate() error {
	var fields []string
	if q.Skip < 0 {
		fields = append(fields, "skip must not be negative")
	}
	if q.Limit < 1 || q.Limit > MaxLimit {
		fields = append(fields, fmt.Sprintf("limit must be between 1 and %d", MaxLimit))
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ListOrdersQueryHandler executes ListOrdersQuery.
type ListOrdersQueryHandler struct {
	repo ports.OrderRepository
}

// NewListOrdersQueryHandler constructs a ListOrdersQueryHandler.
func NewListOrdersQueryHandler(repo ports.OrderRepository) *ListOrdersQueryHandler {
	return &ListOrdersQueryHandler{repo: repo}
}

// Handle returns orders sorted most recent first.
func (h *ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]domain.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.repo.List(ctx, ports.ListPage{Skip: query.Skip, Limit: query.Limit})
}
