package ports

import (
	"context"
	"errors"

	"github.com/mfcarvalho/orders-api/internal/orders/domain"
)

// OrderRepository exposes the persistence operations required by the
// application layer. Implementations translate between the store's internal
// primary key and the external string id; the internal key never crosses
// this boundary, and neither do raw driver errors.
type OrderRepository interface {
	// Create persists a normalized order, then re-reads and returns the
	// stored record with its assigned id.
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
	// GetByID returns ErrNotFound both for a well-formed id with no match
	// and for an id that is not valid key syntax.
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// List returns orders sorted by creation time descending. Bounds are
	// enforced by the caller; the repository trusts the values it receives.
	List(ctx context.Context, page ListPage) ([]domain.Order, error)
	// Update merges the patch into the current record, recomputing the total
	// when items change, and persists the result. Last-writer-wins.
	Update(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error)
	// Delete removes the record and reports whether one was actually
	// removed. A malformed id yields (false, nil), never an error.
	Delete(ctx context.Context, id string) (bool, error)
}

// ListPage narrows list queries by offset and page size.
type ListPage struct {
	Skip  int64
	Limit int64
}

var (
	// ErrNotFound is returned when the requested order does not exist or its
	// id is not a well-formed identifier.
	ErrNotFound = errors.New("order not found")

	// ErrDuplicateKey is returned when the store rejects a write because of
	// a uniqueness constraint.
	ErrDuplicateKey = errors.New("resource already exists")
)
