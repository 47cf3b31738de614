package memory

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mfcarvalho/orders-api/internal/orders/domain"
	"github.com/mfcarvalho/orders-api/internal/orders/ports"
)

// Repository provides an in-memory gateway useful for local development and
// tests. It keeps the store adapter's contract, ObjectId-hex ids included,
// so id-syntax behavior is identical to the MongoDB adapter.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

// NewRepository constructs an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{orders: make(map[string]domain.Order)}
}

var _ ports.OrderRepository = (*Repository)(nil)

// detach copies the items slice so callers can't reach the stored record's
// backing array through a returned order.
func detach(order domain.Order) domain.Order {
	items := make([]domain.Item, len(order.Items))
	copy(items, order.Items)
	order.Items = items
	return order
}

// Create assigns a fresh id and stores the order.
func (r *Repository) Create(_ context.Context, order domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = primitive.NewObjectID().Hex()
	r.orders[order.ID] = detach(order)

	stored := detach(r.orders[order.ID])
	return &stored, nil
}

// GetByID fetches a single order. A malformed id is indistinguishable from
// an absent one.
func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, ports.ErrNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	found := detach(order)
	return &found, nil
}

// List returns orders sorted by creation time descending, ties broken by
// descending id, honoring the caller-validated skip and limit.
func (r *Repository) List(_ context.Context, page ports.ListPage) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		all = append(all, detach(order))
	}

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	start := int(page.Skip)
	if start >= len(all) {
		return []domain.Order{}, nil
	}

	end := start + int(page.Limit)
	if end > len(all) {
		end = len(all)
	}

	result := make([]domain.Order, end-start)
	copy(result, all[start:end])

	return result, nil
}

// Update merges the patch into the stored record and persists the result.
func (r *Repository) Update(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, ports.ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}

	merged := domain.ApplyPatch(current, patch)
	r.orders[id] = merged

	stored := detach(merged)
	return &stored, nil
}

// Delete removes the record, reporting whether anything was removed.
func (r *Repository) Delete(_ context.Context, id string) (bool, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return false, nil
	}
	delete(r.orders, id)
	return true, nil
}
