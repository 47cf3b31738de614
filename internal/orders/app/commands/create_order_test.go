package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mfcarvalho/orders-api/internal/orders/app/commands"
	"github.com/mfcarvalho/orders-api/internal/orders/domain"
	"github.com/mfcarvalho/orders-api/internal/orders/ports"
)

type mockRepository struct {
	createFn func(ctx context.Context, order domain.Order) (*domain.Order, error)
	updateFn func(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error)
}

func (m *mockRepository) Create(ctx context.Context, order domain.Order) (*domain.Order, error) {
	if m.createFn != nil {
		return m.createFn(ctx, order)
	}
	stored := order
	stored.ID = "665f1f77bcf86cd799439011"
	return &stored, nil
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return nil, ports.ErrNotFound
}

func (m *mockRepository) List(ctx context.Context, page ports.ListPage) ([]domain.Order, error) {
	return nil, nil
}

func (m *mockRepository) Update(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return nil, ports.ErrNotFound
}

func (m *mockRepository) Delete(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func int64Ptr(v int64) *int64 { return &v }

func TestCreateOrder(t *testing.T) {
	t.Run("creates pending order with computed total", func(t *testing.T) {
		repo := &mockRepository{}
		handler := commands.NewCreateOrderCommandHandler(repo)

		cmd := commands.CreateOrderCommand{
			CustomerID: int64Ptr(42),
			Items: []domain.Item{
				{ProductID: 1, Quantity: 2, Price: 10.00},
				{ProductID: 2, Quantity: 1, Price: 5.50},
			},
		}

		order, err := handler.Handle(context.Background(), cmd)

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}

		if order == nil {
			t.Fatal("expected order to be returned, got nil")
		}

		if order.TotalValue != 25.50 {
			t.Errorf("expected total 25.50, got %v", order.TotalValue)
		}

		if order.Status != domain.StatusPending {
			t.Errorf("expected status %s, got %s", domain.StatusPending, order.Status)
		}

		if order.ID == "" {
			t.Error("expected order ID to be assigned by the repository")
		}
	})

	t.Run("returns validation error when customer_id is missing", func(t *testing.T) {
		repo := &mockRepository{}
		handler := commands.NewCreateOrderCommandHandler(repo)

		cmd := commands.CreateOrderCommand{
			Items: []domain.Item{{ProductID: 1, Quantity: 1, Price: 9.99}},
		}

		order, err := handler.Handle(context.Background(), cmd)

		if err == nil {
			t.Fatal("expected error, got nil")
		}

		var validationErr *domain.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %T", err)
		}

		if order != nil {
			t.Errorf("expected nil order, got %+v", order)
		}
	})

	t.Run("returns validation error when items are empty", func(t *testing.T) {
		repo := &mockRepository{}
		handler := commands.NewCreateOrderCommandHandler(repo)

		cmd := commands.CreateOrderCommand{CustomerID: int64Ptr(42)}

		order, err := handler.Handle(context.Background(), cmd)

		if err == nil {
			t.Fatal("expected error, got nil")
		}

		if order != nil {
			t.Errorf("expected nil order, got %+v", order)
		}
	})

	t.Run("does not reach the repository on invalid input", func(t *testing.T) {
		called := false
		repo := &mockRepository{
			createFn: func(ctx context.Context, order domain.Order) (*domain.Order, error) {
				called = true
				return &order, nil
			},
		}
		handler := commands.NewCreateOrderCommandHandler(repo)

		cmd := commands.CreateOrderCommand{
			CustomerID: int64Ptr(42),
			Items:      []domain.Item{{ProductID: 1, Quantity: -1, Price: 9.99}},
		}

		if _, err := handler.Handle(context.Background(), cmd); err == nil {
			t.Fatal("expected error, got nil")
		}

		if called {
			t.Error("expected repository to not be called for invalid input")
		}
	})

	t.Run("returns error when repository fails", func(t *testing.T) {
		repoErr := errors.New("store unreachable")
		repo := &mockRepository{
			createFn: func(ctx context.Context, order domain.Order) (*domain.Order, error) {
				return nil, repoErr
			},
		}
		handler := commands.NewCreateOrderCommandHandler(repo)

		cmd := commands.CreateOrderCommand{
			CustomerID: int64Ptr(42),
			Items:      []domain.Item{{ProductID: 1, Quantity: 1, Price: 9.99}},
		}

		order, err := handler.Handle(context.Background(), cmd)

		if !errors.Is(err, repoErr) {
			t.Fatalf("expected repository error, got: %v", err)
		}

		if order != nil {
			t.Errorf("expected nil order, got %+v", order)
		}
	})

	t.Run("surfaces duplicate key as a distinct error", func(t *testing.T) {
		repo := &mockRepository{
			createFn: func(ctx context.Context, order domain.Order) (*domain.Order, error) {
				return nil, ports.ErrDuplicateKey
			},
		}
		handler := commands.NewCreateOrderCommandHandler(repo)

		cmd := commands.CreateOrderCommand{
			CustomerID: int64Ptr(42),
			Items:      []domain.Item{{ProductID: 1, Quantity: 1, Price: 9.99}},
		}

		_, err := handler.Handle(context.Background(), cmd)

		if !errors.Is(err, ports.ErrDuplicateKey) {
			t.Fatalf("expected ErrDuplicateKey, got: %v", err)
		}
	})
}
