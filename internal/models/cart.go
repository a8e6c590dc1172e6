package models

import "time"

// CartItem mirrors the display fields the storefront needs so the cart can be
// rendered without joining products.
type CartItem struct {
	ProductID     string  `bson:"product_id" json:"product_id"`
	Name          string  `bson:"name" json:"name"`
	Price         float64 `bson:"price" json:"price"`
	Image         string  `bson:"image" json:"image"`
	Quantity      int     `bson:"quantity" json:"quantity"`
	SelectedColor *string `bson:"selected_color,omitempty" json:"selected_color,omitempty"`
}

// Cart is the single per-user cart document (unique index on user_id).
type Cart struct {
	ID        string     `bson:"id" json:"id"`
	UserID    string     `bson:"user_id" json:"user_id"`
	Items     []CartItem `bson:"items" json:"items"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}
