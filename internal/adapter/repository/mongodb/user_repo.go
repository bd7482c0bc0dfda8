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

const usersCollection = "users"

type UserRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewUserRepository(ctx context.Context, db *mongo.Database, log *logger.Logger) (*UserRepository, error) {
	coll := db.Collection(usersCollection)
	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "favs", Value: 1}}}); err != nil {
		return nil, fmt.Errorf("failed to create user indexes: %w", err)
	}
	return &UserRepository{collection: coll, logger: log.Named("UserRepository")}, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, mapFindErr(err, "user", id)
	}
	return toDomainUser(&doc), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, toDomainUser(&docs[i]))
	}
	return users, nil
}

func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	doc := toUserDocument(user)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", doc.ID, err)
	}
	return nil
}

func (r *UserRepository) set(ctx context.Context, userID string, fields bson.M) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
	}
	return nil
}

func (r *UserRepository) SetFavs(ctx context.Context, userID string, favs []string) error {
	if favs == nil {
		favs = []string{}
	}
	return r.set(ctx, userID, bson.M{"favs": favs})
}

func (r *UserRepository) SetAlerts(ctx context.Context, userID string, alerts []domain.Alert) error {
	return r.set(ctx, userID, bson.M{"alerts": toAlertDocuments(alerts)})
}

func (r *UserRepository) SetBlocked(ctx context.Context, userID string, blocked bool) error {
	return r.set(ctx, userID, bson.M{"is_blocked": blocked})
}

func (r *UserRepository) RemoveFavoriteEverywhere(ctx context.Context, listingID string) error {
	res, err := r.collection.UpdateMany(ctx, bson.M{"favs": listingID}, bson.M{"$pull": bson.M{"favs": listingID}})
	if err != nil {
		return fmt.Errorf("failed to drop listing %s from favorites: %w", listingID, err)
	}
	if res.ModifiedCount > 0 {
		r.logger.Debug("listing dropped from favorites", zap.String("listing_id", listingID), zap.Int64("users", res.ModifiedCount))
	}
	return nil
}
