package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"lrstore/internal/apperr"
	"lrstore/internal/models"
)

type MongoPaymentStore struct {
	collection *mongo.Collection
}

func NewMongoPaymentStore(db *mongo.Database) *MongoPaymentStore {
	return &MongoPaymentStore{collection: db.Collection("payments")}
}

func (s *MongoPaymentStore) Insert(ctx context.Context, payment *models.Payment) error {
	_, err := s.collection.InsertOne(ctx, payment)
	return err
}

func (s *MongoPaymentStore) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var payment models.Payment
	err := s.collection.FindOne(ctx, bson.M{"transaction_id": transactionID}).Decode(&payment)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%w: payment %s", apperr.ErrNotFound, transactionID)
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *MongoPaymentStore) UpdateByTransactionID(ctx context.Context, transactionID string, fields map[string]interface{}) (int64, error) {
	result, err := s.collection.UpdateOne(
		ctx,
		bson.M{"transaction_id": transactionID},
		bson.M{"$set": fields},
	)
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}
