package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lrstore/internal/apperr"
	"lrstore/internal/models"
)

type MongoOrderStore struct {
	collection *mongo.Collection
}

func NewMongoOrderStore(db *mongo.Database) *MongoOrderStore {
	return &MongoOrderStore{collection: db.Collection("orders")}
}

func (s *MongoOrderStore) Insert(ctx context.Context, order *models.Order) error {
	_, err := s.collection.InsertOne(ctx, order)
	return err
}

func (s *MongoOrderStore) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := s.collection.FindOne(ctx, bson.M{"order_number": orderNumber}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%w: order %s", apperr.ErrNotFound, orderNumber)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *MongoOrderStore) NumberExists(ctx context.Context, orderNumber string) (bool, error) {
	err := s.collection.FindOne(ctx, bson.M{"order_number": orderNumber}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *MongoOrderStore) FindForCustomer(ctx context.Context, userID, email string, limit int64) ([]models.Order, error) {
	filters := make([]bson.M, 0, 2)
	if userID != "" {
		filters = append(filters, bson.M{"user_id": userID})
	}
	if email != "" {
		filters = append(filters, bson.M{"customer.email": email})
	}

	var filter bson.M
	switch len(filters) {
	case 1:
		filter = filters[0]
	default:
		filter = bson.M{"$or": filters}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *MongoOrderStore) UpdateByNumber(ctx context.Context, orderNumber string, fields map[string]interface{}) (int64, error) {
	result, err := s.collection.UpdateOne(
		ctx,
		bson.M{"order_number": orderNumber},
		bson.M{"$set": fields},
	)
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (s *MongoOrderStore) List(ctx context.Context, filter OrderListFilter) ([]models.Order, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.PaymentStatus != "" {
		query["payment_status"] = filter.PaymentStatus
	}

	dateRange := bson.M{}
	if filter.From != nil {
		dateRange["$gte"] = *filter.From
	}
	if filter.To != nil {
		dateRange["$lt"] = filter.To.AddDate(0, 0, 1)
	}
	if len(dateRange) > 0 {
		query["created_at"] = dateRange
	}

	total, err := s.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((filter.Page - 1) * filter.Limit).
		SetLimit(filter.Limit)

	cursor, err := s.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
