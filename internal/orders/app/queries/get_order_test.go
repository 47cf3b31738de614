package queries_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mfcarvalho/orders-api/internal/orders/app/queries"
	"github.com/mfcarvalho/orders-api/internal/orders/domain"
	"github.com/mfcarvalho/orders-api/internal/orders/ports"
)

type mockRepository struct {
	getFn  func(ctx context.Context, id string) (*domain.Order, error)
	listFn func(ctx context.Context, page ports.ListPage) ([]domain.Order, error)
}

func (m *mockRepository) Create(ctx context.Context, order domain.Order) (*domain.Order, error) {
	return &order, nil
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, ports.ErrNotFound
}

func (m *mockRepository) List(ctx context.Context, page ports.ListPage) ([]domain.Order, error) {
	if m.listFn != nil {
		return m.listFn(ctx, page)
	}
	return []domain.Order{}, nil
}

func (m *mockRepository) Update(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error) {
	return nil, ports.ErrNotFound
}

func (m *mockRepository) Delete(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func TestGetOrder(t *testing.T) {
	t.Run("returns the order from the repository", func(t *testing.T) {
		want := &domain.Order{ID: "665f1f77bcf86cd799439011", TotalValue: 25.50}
		repo := &mockRepository{
			getFn: func(ctx context.Context, id string) (*domain.Order, error) {
				if id != want.ID {
					t.Errorf("expected id %s, got %s", want.ID, id)
				}
				return want, nil
			},
		}
		handler := queries.NewGetOrderQueryHandler(repo)

		order, err := handler.Handle(context.Background(), queries.GetOrderQuery{OrderID: want.ID})

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}

		if order != want {
			t.Error("expected repository result returned unchanged")
		}
	})

	t.Run("treats a blank id as not found without touching the repository", func(t *testing.T) {
		called := false
		repo := &mockRepository{
			getFn: func(ctx context.Context, id string) (*domain.Order, error) {
				called = true
				return nil, ports.ErrNotFound
			},
		}
		handler := queries.NewGetOrderQueryHandler(repo)

		_, err := handler.Handle(context.Background(), queries.GetOrderQuery{OrderID: "  "})

		if !errors.Is(err, ports.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got: %v", err)
		}

		if called {
			t.Error("expected repository to not be called for a blank id")
		}
	})

	t.Run("propagates not found", func(t *testing.T) {
		handler := queries.NewGetOrderQueryHandler(&mockRepository{})

		_, err := handler.Handle(context.Background(), queries.GetOrderQuery{OrderID: "665f1f77bcf86cd799439011"})

		if !errors.Is(err, ports.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got: %v", err)
		}
	})
}
