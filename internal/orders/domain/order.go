package domain

import (
	"fmt"
	"math"
	"time"
)

// StatusPending is the status every order is created with. Status is
// otherwise a free-form string; the service enforces no transition rules.
const StatusPending = "PENDING"

// Item is a single line entry within an order. Items are immutable once
// embedded in an order; a patch replaces the whole list.
type Item struct {
	ProductID int64   `json:"product_id" bson:"product_id"`
	Quantity  int64   `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
}

// Subtotal returns quantity x price rounded to 2 decimal places.
func (i Item) Subtotal() float64 {
	return round2(float64(i.Quantity) * i.Price)
}

// Order represents a customer purchase request managed by the system. The ID
// is the external form of the store's primary key, assigned exactly once on
// creation; TotalValue is always derived from Items, never client-supplied.
type Order struct {
	ID              string    `json:"id"`
	CustomerID      int64     `json:"customer_id"`
	Items           []Item    `json:"items"`
	ShippingAddress *string   `json:"shipping_address"`
	TotalValue      float64   `json:"total_value"`
	CreatedAt       time.Time `json:"created_at"`
	Status          string    `json:"status"`
}

// CreateOrderInput captures the client payload for creating an order.
// CustomerID is a pointer so a missing field is distinguishable from zero.
type CreateOrderInput struct {
	CustomerID      *int64  `json:"customer_id"`
	Items           []Item  `json:"items"`
	ShippingAddress *string `json:"shipping_address"`
}

// OrderPatch is a sparse update: nil fields are absent and leave the stored
// value untouched. A present Items list triggers a total recomputation.
type OrderPatch struct {
	CustomerID      *int64  `json:"customer_id"`
	Items           []Item  `json:"items"`
	ShippingAddress *string `json:"shipping_address"`
	Status          *string `json:"status"`
}

// ValidationError reports every field constraint violated by an input.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	msg := "invalid order input"
	for _, f := range e.Fields {
		msg += ": " + f
	}
	return msg
}

// Validate ensures the input adheres to business constraints, collecting all
// violations rather than stopping at the first.
func (in CreateOrderInput) Validate() error {
	var fields []string
	if in.CustomerID == nil {
		fields = append(fields, "customer_id is required")
	}
	fields = append(fields, validateItems(in.Items)...)
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// IsEmpty reports whether the patch carries no fields at all.
func (p OrderPatch) IsEmpty() bool {
	return p.CustomerID == nil && p.Items == nil && p.ShippingAddress == nil && p.Status == nil
}

// Validate checks only the fields present in the patch.
func (p OrderPatch) Validate() error {
	if p.Items == nil {
		return nil
	}
	if fields := validateItems(p.Items); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateItems(items []Item) []string {
	if len(items) == 0 {
		return []string{"items must contain at least one item"}
	}
	var fields []string
	for i, item := range items {
		if item.ProductID <= 0 {
			fields = append(fields, fmt.Sprintf("items[%d].product_id must be positive", i))
		}
		if item.Quantity <= 0 {
			fields = append(fields, fmt.Sprintf("items[%d].quantity must be positive", i))
		}
		if item.Price <= 0 {
			fields = append(fields, fmt.Sprintf("items[%d].price must be positive", i))
		}
	}
	return fields
}

// ComputeTotal sums quantity x price across items. Only the final sum is
// rounded, to 2 decimal places; per-item products are accumulated raw.
func ComputeTotal(items []Item) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.Price
	}
	return round2(total)
}

// NewOrder validates and normalizes an input into a persistable order. The
// external id is assigned later, by the store, on insert.
func NewOrder(input CreateOrderInput, now time.Time) (Order, error) {
	if err := input.Validate(); err != nil {
		return Order{}, err
	}

	items := make([]Item, len(input.Items))
	copy(items, input.Items)

	return Order{
		CustomerID:      *input.CustomerID,
		Items:           items,
		ShippingAddress: input.ShippingAddress,
		TotalValue:      ComputeTotal(items),
		CreatedAt:       now.UTC(),
		Status:          StatusPending,
	}, nil
}

// ApplyPatch overlays present patch fields onto the order. ID and CreatedAt
// always carry over; patching Items recomputes TotalValue so the total
// invariant holds in the merged record.
func ApplyPatch(order Order, patch OrderPatch) Order {
	merged := order
	if patch.CustomerID != nil {
		merged.CustomerID = *patch.CustomerID
	}
	if patch.Items != nil {
		items := make([]Item, len(patch.Items))
		copy(items, patch.Items)
		merged.Items = items
		merged.TotalValue = ComputeTotal(items)
	}
	if patch.ShippingAddress != nil {
		merged.ShippingAddress = patch.ShippingAddress
	}
	if patch.Status != nil {
		merged.Status = *patch.Status
	}
	return merged
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
