package models

import "time"

// Order statuses. "new" is accepted on legacy documents but new orders
// always start as pending.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
)

// OrderCustomer is the customer snapshot embedded in an order. It is copied
// at checkout time and never synced back to the user record.
type OrderCustomer struct {
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone" json:"phone"`
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
}

// OrderItem is a single line item within an order.
type OrderItem struct {
	ProductID     string  `bson:"product_id" json:"product_id"`
	Name          string  `bson:"name" json:"name"`
	Quantity      int     `bson:"quantity" json:"quantity"`
	SelectedColor *string `bson:"selected_color,omitempty" json:"selected_color,omitempty"`
	Price         float64 `bson:"price" json:"price"`
	Image         string  `bson:"image" json:"image"`
}

// Order is the persisted order document. OrderNumber is the public 6-digit
// identifier, distinct from the internal id.
type Order struct {
	ID               string        `bson:"id" json:"id"`
	OrderNumber      string        `bson:"order_number" json:"order_number"`
	UserID           *string       `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Customer         OrderCustomer `bson:"customer" json:"customer"`
	Items            []OrderItem   `bson:"items" json:"items"`
	PaymentMethod    string        `bson:"payment_method" json:"payment_method"`
	PaymentStatus    string        `bson:"payment_status" json:"payment_status"`
	PaymentReference *string       `bson:"payment_reference,omitempty" json:"payment_reference,omitempty"`
	Total            float64       `bson:"total" json:"total"`
	Status           string        `bson:"status" json:"status"`
	CreatedAt        time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time     `bson:"updated_at" json:"updated_at"`
}
