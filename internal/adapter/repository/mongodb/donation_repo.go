package mongodb

import (
	"context"
	"fmt"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const donationsCollection = "donation_entries"

type DonationRepository struct {
	collection *mongo.Collection
}

func NewDonationRepository(db *mongo.Database) *DonationRepository {
	return &DonationRepository{collection: db.Collection(donationsCollection)}
}

func (r *DonationRepository) Create(ctx context.Context, entry *domain.DonationEntry) error {
	if _, err := r.collection.InsertOne(ctx, toDonationDocument(entry)); err != nil {
		return mapInsertErr(err, donationsCollection)
	}
	return nil
}

func (r *DonationRepository) FindAll(ctx context.Context) ([]*domain.DonationEntry, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query donations: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []donationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode donations: %w", err)
	}
	entries := make([]*domain.DonationEntry, 0, len(docs))
	for i := range docs {
		entries = append(entries, toDomainDonation(&docs[i]))
	}
	return entries, nil
}
