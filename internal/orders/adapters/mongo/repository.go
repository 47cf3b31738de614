package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mfcarvalho/orders-api/internal/orders/domain"
	"github.com/mfcarvalho/orders-api/internal/orders/ports"
)

// Repository is the MongoDB-backed order persistence gateway. Documents are
// keyed by ObjectId; the hex form of that key is the only identifier ever
// exposed across the port.
type Repository struct {
	coll *driver.Collection
}

// NewRepository constructs a Repository over the orders collection.
func NewRepository(coll *driver.Collection) *Repository {
	return &Repository{coll: coll}
}

// orderDocument is the persisted record shape. Items decode straight into
// the canonical domain type so nothing downstream branches on representation.
type orderDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	CustomerID      int64              `bson:"customer_id"`
	Items           []domain.Item      `bson:"items"`
	ShippingAddress *string            `bson:"shipping_address,omitempty"`
	TotalValue      float64            `bson:"total_value"`
	CreatedAt       time.Time          `bson:"created_at"`
	Status          string             `bson:"status"`
}

func toDocument(order domain.Order) orderDocument {
	return orderDocument{
		CustomerID:      order.CustomerID,
		Items:           order.Items,
		ShippingAddress: order.ShippingAddress,
		TotalValue:      order.TotalValue,
		CreatedAt:       order.CreatedAt,
		Status:          order.Status,
	}
}

func (d orderDocument) toDomain() domain.Order {
	return domain.Order{
		ID:              d.ID.Hex(),
		CustomerID:      d.CustomerID,
		Items:           d.Items,
		ShippingAddress: d.ShippingAddress,
		TotalValue:      d.TotalValue,
		CreatedAt:       d.CreatedAt.UTC(),
		Status:          d.Status,
	}
}

func (r *Repository) Create(ctx context.Context, order domain.Order) (*domain.Order, error) {
	result, err := r.coll.InsertOne(ctx, toDocument(order))
	if err != nil {
		if driver.IsDuplicateKeyError(err) {
			return nil, ports.ErrDuplicateKey
		}
		return nil, fmt.Errorf("insert order: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert order: unexpected inserted id type %T", result.InsertedID)
	}

	// The response is always the stored record re-read by primary key; if
	// the re-read fails the whole create fails.
	var doc orderDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, fmt.Errorf("read back created order: %w", err)
	}

	created := doc.toDomain()
	return &created, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id can never match a document; skip the lookup.
		return nil, ports.ErrNotFound
	}

	var doc orderDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	order := doc.toDomain()
	return &order, nil
}

func (r *Repository) List(ctx context.Context, page ports.ListPage) ([]domain.Order, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(page.Skip).
		SetLimit(page.Limit)

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []domain.Order{}
	for cursor.Next(ctx) {
		var doc orderDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, doc.toDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, nil
}

func (r *Repository) Update(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ports.ErrNotFound
	}

	var doc orderDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	merged := domain.ApplyPatch(doc.toDomain(), patch)

	// The merged record, recomputed total included, is persisted in a single
	// replace. Concurrent updates race under last-writer-wins.
	replacement := toDocument(merged)
	replacement.ID = oid
	replacement.CreatedAt = doc.CreatedAt

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, replacement)
	if err != nil {
		if driver.IsDuplicateKeyError(err) {
			return nil, ports.ErrDuplicateKey
		}
		return nil, fmt.Errorf("replace order: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, ports.ErrNotFound
	}

	return &merged, nil
}

func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete order: %w", err)
	}

	return result.DeletedCount > 0, nil
}
