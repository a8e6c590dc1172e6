package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func indexContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// EnsureOrderIndexes creates the order_number uniqueness guard plus the lookup
// indexes. The unique index is the actual correctness guarantee for order
// numbers; the allocation retry loop is only an optimization.
func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := indexContext()
	defer cancel()

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_number", Value: 1}},
			Options: options.Index().SetName("order_number_unique").SetUnique(true),
		},
		{Keys: bson.D{{Key: "customer.email", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	log.Println("EnsureOrderIndexes: creating order indexes")
	_, err := db.Collection("orders").Indexes().CreateMany(ctx, models)
	if err != nil {
		log.Println("EnsureOrderIndexes: error:", err)
	}
	return err
}

func EnsurePaymentIndexes(db *mongo.Database) error {
	ctx, cancel := indexContext()
	defer cancel()

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "transaction_id", Value: 1}},
			Options: options.Index().SetName("transaction_id_unique").SetUnique(true),
		},
		{Keys: bson.D{{Key: "order_number", Value: 1}}},
	}

	log.Println("EnsurePaymentIndexes: creating payment indexes")
	_, err := db.Collection("payments").Indexes().CreateMany(ctx, models)
	if err != nil {
		log.Println("EnsurePaymentIndexes: error:", err)
	}
	return err
}

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := indexContext()
	defer cancel()

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{Keys: bson.D{{Key: "is_admin", Value: 1}}},
	}

	log.Println("EnsureUserIndexes: creating user indexes")
	_, err := db.Collection("users").Indexes().CreateMany(ctx, models)
	if err != nil {
		log.Println("EnsureUserIndexes: error:", err)
	}
	return err
}

func EnsureCategoryIndexes(db *mongo.Database) error {
	ctx, cancel := indexContext()
	defer cancel()

	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetName("slug_unique").SetUnique(true),
	}

	log.Println("EnsureCategoryIndexes: creating slug_unique index")
	_, err := db.Collection("categories").Indexes().CreateOne(ctx, model)
	if err != nil {
		log.Println("EnsureCategoryIndexes: error:", err)
	}
	return err
}

func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := indexContext()
	defer cancel()

	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "featured", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: 1}}},
		{Keys: bson.D{{Key: "is_new", Value: 1}}},
		{Keys: bson.D{{Key: "is_promo", Value: 1}}},
		{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "description", Value: "text"},
			},
			Options: options.Index().SetName("name_description_text"),
		},
	}

	log.Println("EnsureProductIndexes: creating product indexes")
	_, err := db.Collection("products").Indexes().CreateMany(ctx, models)
	if err != nil {
		log.Println("EnsureProductIndexes: error:", err)
	}
	return err
}

func EnsureAddressIndexes(db *mongo.Database) error {
	ctx, cancel := indexContext()
	defer cancel()

	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "province", Value: 1}}},
		{Keys: bson.D{{Key: "municipality", Value: 1}}},
	}

	log.Println("EnsureAddressIndexes: creating address indexes")
	_, err := db.Collection("addresses").Indexes().CreateMany(ctx, models)
	if err != nil {
		log.Println("EnsureAddressIndexes: error:", err)
	}
	return err
}

func EnsureCartIndexes(db *mongo.Database) error {
	ctx, cancel := indexContext()
	defer cancel()

	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetName("user_id_unique").SetUnique(true),
	}

	log.Println("EnsureCartIndexes: creating user_id_unique index")
	_, err := db.Collection("carts").Indexes().CreateOne(ctx, model)
	if err != nil {
		log.Println("EnsureCartIndexes: error:", err)
	}
	return err
}

func EnsureFavoriteIndexes(db *mongo.Database) error {
	ctx, cancel := indexContext()
	defer cancel()

	model := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "product_id", Value: 1},
		},
		Options: options.Index().SetName("user_product_unique").SetUnique(true),
	}

	log.Println("EnsureFavoriteIndexes: creating user_product_unique index")
	_, err := db.Collection("favorites").Indexes().CreateOne(ctx, model)
	if err != nil {
		log.Println("EnsureFavoriteIndexes: error:", err)
	}
	return err
}

func EnsureSupportMessageIndexes(db *mongo.Database) error {
	ctx, cancel := indexContext()
	defer cancel()

	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}

	log.Println("EnsureSupportMessageIndexes: creating support message indexes")
	_, err := db.Collection("support_messages").Indexes().CreateMany(ctx, models)
	if err != nil {
		log.Println("EnsureSupportMessageIndexes: error:", err)
	}
	return err
}

func EnsureActivityLogIndexes(db *mongo.Database) error {
	ctx, cancel := indexContext()
	defer cancel()

	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "action", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}

	log.Println("EnsureActivityLogIndexes: creating activity log indexes")
	_, err := db.Collection("activity_logs").Indexes().CreateMany(ctx, models)
	if err != nil {
		log.Println("EnsureActivityLogIndexes: error:", err)
	}
	return err
}

// EnsureAllIndexes runs every index bootstrap and returns the first error.
func EnsureAllIndexes(db *mongo.Database) error {
	for _, ensure := range []func(*mongo.Database) error{
		EnsureOrderIndexes,
		EnsurePaymentIndexes,
		EnsureUserIndexes,
		EnsureCategoryIndexes,
		EnsureProductIndexes,
		EnsureAddressIndexes,
		EnsureCartIndexes,
		EnsureFavoriteIndexes,
		EnsureSupportMessageIndexes,
		EnsureActivityLogIndexes,
	} {
		if err := ensure(db); err != nil {
			return err
		}
	}
	return nil
}
