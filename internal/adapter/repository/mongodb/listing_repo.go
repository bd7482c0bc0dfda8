package mongodb

import (
	"context"
	"fmt"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const listingsCollection = "listings"

type ListingRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewListingRepository(ctx context.Context, db *mongo.Database, log *logger.Logger) (*ListingRepository, error) {
	coll := db.Collection(listingsCollection)
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "seller_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "listed_date", Value: -1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create listing indexes: %w", err)
	}
	return &ListingRepository{collection: coll, logger: log.Named("ListingRepository")}, nil
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	if _, err := r.collection.InsertOne(ctx, toListingDocument(listing)); err != nil {
		return mapInsertErr(err, listingsCollection)
	}
	return nil
}

// CreateMany inserts unordered, so a redelivered batch stores whatever is
// missing and still reports the duplicates as a conflict.
func (r *ListingRepository) CreateMany(ctx context.Context, listings []*domain.Listing) error {
	if len(listings) == 0 {
		return nil
	}
	docs := make([]interface{}, len(listings))
	for i, l := range listings {
		docs[i] = toListingDocument(l)
	}
	if _, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false)); err != nil {
		r.logger.Warn("bulk listing insert failed", zap.Int("count", len(docs)), zap.Error(err))
		return mapInsertErr(err, listingsCollection)
	}
	return nil
}

// Update replaces the seller-editable fields. Lifecycle fields are only
// written through UpdateFields.
func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	doc := toListingDocument(listing)
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": bson.M{
		"brand":       doc.Brand,
		"model":       doc.Model,
		"description": doc.Description,
		"images":      doc.Images,
		"dimensions":  doc.Dimensions,
		"fin_system":  doc.FinSystem,
		"fin_setup":   doc.FinSetup,
		"price":       doc.Price,
		"website":     doc.Website,
	}})
	if err != nil {
		return fmt.Errorf("failed to update listing %s: %w", doc.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: listing %s", domain.ErrNotFound, doc.ID)
	}
	return nil
}

func lifecycleSet(upd domain.ListingUpdate) bson.M {
	update := bson.M{}
	set := bson.M{}
	if upd.Status != nil {
		set["status"] = string(*upd.Status)
	}
	if upd.ListedDate != nil {
		set["listed_date"] = upd.ListedDate.UTC()
	}
	if upd.ExpiresAt != nil {
		set["expires_at"] = upd.ExpiresAt.UTC()
	}
	if upd.IsPaid != nil {
		set["is_paid"] = *upd.IsPaid
	}
	if upd.ExpiredAt != nil {
		set["expired_at"] = upd.ExpiredAt.UTC()
	} else if upd.ClearExpiredAt {
		update["$unset"] = bson.M{"expired_at": ""}
	}
	if len(set) > 0 {
		update["$set"] = set
	}
	return update
}

func (r *ListingRepository) UpdateFields(ctx context.Context, id string, expect domain.ListingStatus, upd domain.ListingUpdate) error {
	update := lifecycleSet(upd)
	if len(update) == 0 {
		return nil
	}
	filter := bson.M{"_id": id}
	if expect != "" {
		filter["status"] = string(expect)
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update lifecycle of listing %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return notFoundOrConflict(ctx, r.collection, id)
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete listing %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: listing %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *ListingRepository) DeleteWithStatus(ctx context.Context, id string, status domain.ListingStatus) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "status": string(status)})
	if err != nil {
		return fmt.Errorf("failed to delete listing %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return notFoundOrConflict(ctx, r.collection, id)
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	var doc listingDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, mapFindErr(err, "listing", id)
	}
	return toDomainListing(&doc), nil
}

func (r *ListingRepository) find(ctx context.Context, filter bson.M) ([]*domain.Listing, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "listed_date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode listings: %w", err)
	}
	return toDomainListings(docs), nil
}

func (r *ListingRepository) FindAll(ctx context.Context) ([]*domain.Listing, error) {
	return r.find(ctx, bson.M{})
}

func (r *ListingRepository) FindBySeller(ctx context.Context, sellerID string) ([]*domain.Listing, error) {
	return r.find(ctx, bson.M{"seller_id": sellerID})
}
