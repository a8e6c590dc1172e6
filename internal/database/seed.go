package database

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"lrstore/internal/models"
)

// Seed inserts starter categories and products when the collections are
// empty, so a fresh database serves a browsable storefront.
func Seed(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := seedCategories(ctx, db); err != nil {
		return err
	}
	return seedProducts(ctx, db)
}

func seedCategories(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection("categories")

	count, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	categories := []interface{}{
		models.Category{
			ID:          uuid.NewString(),
			Name:        "Electrodomésticos",
			Slug:        "electrodomesticos",
			Image:       "/uploads/seed/electrodomesticos.jpg",
			Description: "Aparelhos para a casa",
			CreatedAt:   now,
		},
		models.Category{
			ID:          uuid.NewString(),
			Name:        "Telemóveis",
			Slug:        "telemoveis",
			Image:       "/uploads/seed/telemoveis.jpg",
			Description: "Smartphones e acessórios",
			CreatedAt:   now,
		},
		models.Category{
			ID:          uuid.NewString(),
			Name:        "Informática",
			Slug:        "informatica",
			Image:       "/uploads/seed/informatica.jpg",
			Description: "Computadores e periféricos",
			CreatedAt:   now,
		},
	}

	if _, err := collection.InsertMany(ctx, categories); err != nil {
		return err
	}
	log.Printf("Seed: inserted %d categories", len(categories))
	return nil
}

func seedProducts(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection("products")

	count, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	originalPrice := 95000.0
	products := []interface{}{
		models.Product{
			ID:          uuid.NewString(),
			Name:        "Frigorífico 350L",
			Category:    "electrodomesticos",
			Price:       245000,
			Image:       "/uploads/seed/frigorifico.jpg",
			Description: "Frigorífico de duas portas, classe A+",
			Stock:       8,
			Colors:      []string{"branco", "inox"},
			Featured:    true,
			Rating:      4.5,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		models.Product{
			ID:            uuid.NewString(),
			Name:          "Smartphone X20",
			Category:      "telemoveis",
			Price:         85000,
			OriginalPrice: &originalPrice,
			Image:         "/uploads/seed/smartphone.jpg",
			Description:   "Ecrã 6.5\", 128GB, câmara dupla",
			Stock:         25,
			Colors:        []string{"preto", "azul"},
			Featured:      true,
			IsPromo:       true,
			Rating:        4.5,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		models.Product{
			ID:          uuid.NewString(),
			Name:        "Portátil Pro 14",
			Category:    "informatica",
			Price:       520000,
			Image:       "/uploads/seed/portatil.jpg",
			Description: "14\", 16GB RAM, SSD 512GB",
			Stock:       5,
			Colors:      []string{"cinzento"},
			IsNew:       true,
			Rating:      4.5,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		models.Product{
			ID:          uuid.NewString(),
			Name:        "Ventoinha de mesa",
			Category:    "electrodomesticos",
			Price:       12000,
			Image:       "/uploads/seed/ventoinha.jpg",
			Description: "Três velocidades, oscilação automática",
			Stock:       40,
			Colors:      []string{"branco"},
			Rating:      4.5,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}

	if _, err := collection.InsertMany(ctx, products); err != nil {
		return err
	}
	log.Printf("Seed: inserted %d products", len(products))
	return nil
}
