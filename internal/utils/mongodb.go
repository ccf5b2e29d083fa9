package utils

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// DefaultQueryTimeout is the default timeout for MongoDB queries
const DefaultQueryTimeout = 10 * time.Second

// FindOneWithTimeout performs a MongoDB FindOne operation with timeout
func FindOneWithTimeout(ctx context.Context, collection *mongo.Collection, filter bson.M, result interface{}, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return collection.FindOne(ctx, filter).Decode(result)
}

// UpsertOneWithTimeout performs a MongoDB upsert operation with timeout
func UpsertOneWithTimeout(ctx context.Context, collection *mongo.Collection, filter bson.M, update bson.M, timeout time.Duration) (*mongo.UpdateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	return collection.UpdateOne(ctx, filter, update, opts)
}

// GetUpdateOptionsWithWriteConcern returns update options for writes issued
// against a MajorityCollection handle. Flows that must observe a durable
// persisted state before proceeding (the onboarding completion sequence) pair
// the two.
func GetUpdateOptionsWithWriteConcern(upsert bool) *options.UpdateOptions {
	return options.Update().
		SetUpsert(upsert)
}

// MajorityCollection returns a handle to the collection configured with
// majority write concern
func MajorityCollection(db *mongo.Database, name string) *mongo.Collection {
	return db.Collection(name, options.Collection().SetWriteConcern(writeconcern.Majority()))
}
