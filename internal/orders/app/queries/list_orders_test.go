package queries_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mfcarvalho/orders-api/internal/orders/app/queries"
	"github.com/mfcarvalho/orders-api/internal/orders/domain"
	"github.com/mfcarvalho/orders-api/internal/orders/ports"
)

func TestListOrdersQueryValidate(t *testing.T) {
	testCases := []struct {
		name    string
		query   queries.ListOrdersQuery
		wantErr bool
	}{
		{name: "defaults are valid", query: queries.ListOrdersQuery{Skip: 0, Limit: queries.DefaultLimit}},
		{name: "maximum limit is valid", query: queries.ListOrdersQuery{Limit: queries.MaxLimit}},
		{name: "negative skip", query: queries.ListOrdersQuery{Skip: -1, Limit: 10}, wantErr: true},
		{name: "zero limit", query: queries.ListOrdersQuery{Limit: 0}, wantErr: true},
		{name: "limit above maximum", query: queries.ListOrdersQuery{Limit: queries.MaxLimit + 1}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.query.Validate()

			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var validationErr *domain.ValidationError
				if !errors.As(err, &validationErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
		})
	}
}

func TestListOrders(t *testing.T) {
	t.Run("passes pagination through to the repository", func(t *testing.T) {
		var gotPage ports.ListPage
		repo := &mockRepository{
			listFn: func(ctx context.Context, page ports.ListPage) ([]domain.Order, error) {
				gotPage = page
				return []domain.Order{{ID: "665f1f77bcf86cd799439011"}}, nil
			},
		}
		handler := queries.NewListOrdersQueryHandler(repo)

		orders, err := handler.Handle(context.Background(), queries.ListOrdersQuery{Skip: 20, Limit: 5})

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}

		if gotPage.Skip != 20 || gotPage.Limit != 5 {
			t.Errorf("expected page {20 5}, got %+v", gotPage)
		}

		if len(orders) != 1 {
			t.Errorf("expected 1 order, got %d", len(orders))
		}
	})

	t.Run("does not reach the repository with invalid bounds", func(t *testing.T) {
		called := false
		repo := &mockRepository{
			listFn: func(ctx context.Context, page ports.ListPage) ([]domain.Order, error) {
				called = true
				return nil, nil
			},
		}
		handler := queries.NewListOrdersQueryHandler(repo)

		if _, err := handler.Handle(context.Background(), queries.ListOrdersQuery{Skip: -1, Limit: 10}); err == nil {
			t.Fatal("expected error, got nil")
		}

		if called {
			t.Error("expected repository to not be called for invalid bounds")
		}
	})
}
