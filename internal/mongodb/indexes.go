package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the indexes the list and filter paths rely on: a
// descending sort index on created_at and lookup indexes on customer_id and
// status. They are a performance precondition, not a correctness
// requirement, so startup only runs this behind the bootstrap flag.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create order indexes: %w", err)
	}

	return nil
}
