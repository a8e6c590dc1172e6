// Package orders implements the order workflow: collision-free order-number
// allocation, lookups, customer listing and admin status updates.
package orders

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"lrstore/internal/apperr"
	"lrstore/internal/models"
	"lrstore/internal/store"
)

const (
	// maxNumberAttempts bounds the random order-number probe loop. With
	// 900,000 possible numbers the chance of 30 consecutive collisions is
	// negligible at realistic volumes; exhaustion means the number space is
	// effectively full and the request fails instead of spinning.
	maxNumberAttempts = 30

	defaultListLimit = 50
	maxListLimit     = 100
)

type Service struct {
	store store.OrderStore
}

func NewService(s store.OrderStore) *Service {
	return &Service{store: s}
}

type CreateInput struct {
	UserID        *string
	Customer      models.OrderCustomer
	Items         []models.OrderItem
	PaymentMethod string
	Total         float64
}

// StatusUpdate is a partial admin update; nil fields are left untouched.
type StatusUpdate struct {
	Status        *string
	PaymentStatus *string
}

// Create allocates a free 6-digit order number, normalizes the customer
// email and persists the order. The unique index on order_number remains the
// final arbiter when two requests race between probe and insert.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Order, error) {
	orderNumber, err := s.allocateNumber(ctx)
	if err != nil {
		return nil, err
	}

	customer := in.Customer
	customer.Email = strings.ToLower(strings.TrimSpace(customer.Email))

	now := time.Now().UTC()
	order := &models.Order{
		ID:            uuid.NewString(),
		OrderNumber:   orderNumber,
		UserID:        in.UserID,
		Customer:      customer,
		Items:         in.Items,
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: models.PaymentStatusPending,
		Total:         in.Total,
		Status:        models.OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.store.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: insert order: %v", apperr.ErrPersistence, err)
	}
	return order, nil
}

func (s *Service) allocateNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		candidate := fmt.Sprintf("%d", rand.IntN(900000)+100000)

		exists, err := s.store.NumberExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("%w: probe order number: %v", apperr.ErrPersistence, err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: no free order number after %d attempts", apperr.ErrResourceExhausted, maxNumberAttempts)
}

func (s *Service) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	order, err := s.store.FindByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: find order: %v", apperr.ErrPersistence, err)
	}
	return order, nil
}

// ListForCustomer returns the shopper's orders, newest first. At least one of
// userID or email is required; email matching is case-insensitive via the
// stored lowercase form.
func (s *Service) ListForCustomer(ctx context.Context, userID, email string, limit int64) ([]models.Order, error) {
	userID = strings.TrimSpace(userID)
	email = strings.ToLower(strings.TrimSpace(email))
	if userID == "" && email == "" {
		return nil, fmt.Errorf("%w: user_id or email is required", apperr.ErrInvalidArgument)
	}

	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	orders, err := s.store.FindForCustomer(ctx, userID, email, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list orders: %v", apperr.ErrPersistence, err)
	}
	return orders, nil
}

// UpdateStatus applies a partial status/payment_status update and returns the
// refreshed order.
func (s *Service) UpdateStatus(ctx context.Context, orderNumber string, update StatusUpdate) (*models.Order, error) {
	fields := map[string]interface{}{}
	if update.Status != nil {
		fields["status"] = *update.Status
	}
	if update.PaymentStatus != nil {
		fields["payment_status"] = *update.PaymentStatus
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields provided for update", apperr.ErrInvalidArgument)
	}
	fields["updated_at"] = time.Now().UTC()

	matched, err := s.store.UpdateByNumber(ctx, orderNumber, fields)
	if err != nil {
		return nil, fmt.Errorf("%w: update order: %v", apperr.ErrPersistence, err)
	}
	if matched == 0 {
		return nil, fmt.Errorf("%w: order %s", apperr.ErrNotFound, orderNumber)
	}

	return s.GetByNumber(ctx, orderNumber)
}

// List serves the back-office order listing with pagination.
func (s *Service) List(ctx context.Context, filter store.OrderListFilter) ([]models.Order, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	orders, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list orders: %v", apperr.ErrPersistence, err)
	}
	return orders, total, nil
}
