package models

import "time"

// Payment statuses. "failed" is a declared state with no transition into it;
// nothing in the mocked flows produces it.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Payment is one mocked payment attempt. Several payments may reference the
// same order_number across retries; the link is loose and never enforced.
type Payment struct {
	ID            string    `bson:"id" json:"id"`
	TransactionID string    `bson:"transaction_id" json:"transaction_id"`
	OrderNumber   string    `bson:"order_number" json:"order_number"`
	Method        string    `bson:"method" json:"method"`
	Amount        float64   `bson:"amount" json:"amount"`
	Status        string    `bson:"status" json:"status"`
	Reference     *string   `bson:"reference,omitempty" json:"reference,omitempty"`
	Phone         *string   `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}
