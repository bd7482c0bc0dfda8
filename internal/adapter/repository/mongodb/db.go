package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// NewMongoClient connects and pings the primary before returning.
func NewMongoClient(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// notFoundOrConflict tells a missing document apart from one whose guard
// field no longer matched.
func notFoundOrConflict(ctx context.Context, coll *mongo.Collection, id string) error {
	n, err := coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to check %s in %s: %w", id, coll.Name(), err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, coll.Name(), id)
	}
	return fmt.Errorf("%w: %s %s changed concurrently", domain.ErrConflict, coll.Name(), id)
}

func mapFindErr(err error, coll, id string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, coll, id)
	}
	return fmt.Errorf("failed to find %s %s: %w", coll, id, err)
}

func mapInsertErr(err error, coll string) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: duplicate %s: %v", domain.ErrConflict, coll, err)
	}
	return fmt.Errorf("failed to insert into %s: %w", coll, err)
}
