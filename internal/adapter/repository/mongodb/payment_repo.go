package mongodb

import (
	"context"
	"fmt"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const paymentsCollection = "payments"

type PaymentRepository struct {
	collection *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{collection: db.Collection(paymentsCollection)}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	if _, err := r.collection.InsertOne(ctx, toPaymentDocument(payment)); err != nil {
		return mapInsertErr(err, paymentsCollection)
	}
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	var doc paymentDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, mapFindErr(err, "payment", id)
	}
	return toDomainPayment(&doc), nil
}

func (r *PaymentRepository) MarkResolved(ctx context.Context, payment *domain.Payment) error {
	set := bson.M{"status": string(payment.Status)}
	if payment.ResolvedAt != nil {
		set["resolved_at"] = payment.ResolvedAt.UTC()
	}
	filter := bson.M{"_id": payment.ID, "status": string(domain.PaymentPending)}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to resolve payment %s: %w", payment.ID, err)
	}
	if res.MatchedCount == 0 {
		return notFoundOrConflict(ctx, r.collection, payment.ID)
	}
	return nil
}
