package mongodb

import (
	"context"
	"fmt"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const adsCollection = "managed_ads"

type AdRepository struct {
	collection *mongo.Collection
}

func NewAdRepository(db *mongo.Database) *AdRepository {
	return &AdRepository{collection: db.Collection(adsCollection)}
}

func (r *AdRepository) Create(ctx context.Context, ad *domain.ManagedAd) error {
	if _, err := r.collection.InsertOne(ctx, toAdDocument(ad)); err != nil {
		return mapInsertErr(err, adsCollection)
	}
	return nil
}

func (r *AdRepository) Update(ctx context.Context, ad *domain.ManagedAd) error {
	doc := toAdDocument(ad)
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return fmt.Errorf("failed to update ad %s: %w", doc.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: ad %s", domain.ErrNotFound, doc.ID)
	}
	return nil
}

func (r *AdRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete ad %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: ad %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *AdRepository) find(ctx context.Context, filter bson.M) ([]*domain.ManagedAd, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query ads: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []adDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode ads: %w", err)
	}
	ads := make([]*domain.ManagedAd, 0, len(docs))
	for i := range docs {
		ads = append(ads, toDomainAd(&docs[i]))
	}
	return ads, nil
}

func (r *AdRepository) FindAll(ctx context.Context) ([]*domain.ManagedAd, error) {
	return r.find(ctx, bson.M{})
}

func (r *AdRepository) FindActive(ctx context.Context) ([]*domain.ManagedAd, error) {
	return r.find(ctx, bson.M{"is_active": true})
}
