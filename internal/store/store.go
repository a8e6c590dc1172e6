// Package store defines the repository interfaces for the order/payment
// workflow and their Mongo implementations. Services depend on the
// interfaces so tests can substitute in-memory fakes.
package store

import (
	"context"
	"time"

	"lrstore/internal/models"
)

// OrderListFilter narrows the back-office order listing. Zero values mean
// "no filter"; To is inclusive of the whole end day.
type OrderListFilter struct {
	Status        string
	PaymentStatus string
	From          *time.Time
	To            *time.Time
	Page          int64
	Limit         int64
}

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	NumberExists(ctx context.Context, orderNumber string) (bool, error)
	// FindForCustomer matches by owning user id OR lowercase customer email,
	// newest first, capped at limit.
	FindForCustomer(ctx context.Context, userID, email string, limit int64) ([]models.Order, error)
	// UpdateByNumber applies a $set-style partial update and reports how many
	// documents matched. Callers decide whether zero matches is an error.
	UpdateByNumber(ctx context.Context, orderNumber string, fields map[string]interface{}) (int64, error)
	List(ctx context.Context, filter OrderListFilter) ([]models.Order, int64, error)
}

type PaymentStore interface {
	Insert(ctx context.Context, payment *models.Payment) error
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	UpdateByTransactionID(ctx context.Context, transactionID string, fields map[string]interface{}) (int64, error)
}
