package models

import "time"

type Product struct {
	ID            string    `bson:"id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Category      string    `bson:"category" json:"category"`
	Price         float64   `bson:"price" json:"price"`
	OriginalPrice *float64  `bson:"original_price,omitempty" json:"original_price,omitempty"`
	Image         string    `bson:"image" json:"image"`
	Description   string    `bson:"description" json:"description"`
	Stock         int       `bson:"stock" json:"stock"`
	Colors        []string  `bson:"colors" json:"colors"`
	Featured      bool      `bson:"featured" json:"featured"`
	IsNew         bool      `bson:"is_new" json:"is_new"`
	IsPromo       bool      `bson:"is_promo" json:"is_promo"`
	Rating        float64   `bson:"rating" json:"rating"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}
