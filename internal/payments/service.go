// Package payments implements the mocked Multicaixa payment flows: reference
// issuance, express payments, the development-only completion endpoint and
// status lookups.
package payments

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"lrstore/internal/apperr"
	"lrstore/internal/models"
	"lrstore/internal/store"
)

const (
	MethodReference = "multicaixa-reference"
	MethodExpress   = "multicaixa-express"

	// entityCode is the fixed mock Multicaixa entity.
	entityCode = "11111"

	referenceTTL = 72 * time.Hour
)

type Service struct {
	payments store.PaymentStore
	orders   store.OrderStore
}

func NewService(payments store.PaymentStore, orders store.OrderStore) *Service {
	return &Service{payments: payments, orders: orders}
}

type ReferenceResult struct {
	Reference  string `json:"reference"`
	Entity     string `json:"entity"`
	ExpiryDate string `json:"expiry_date"`
}

type ExpressResult struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

type StatusResult struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	OrderNumber   string `json:"order_number"`
}

// IssueReference creates a pending reference payment and stamps the payment
// fields onto the order. The reference is random with no uniqueness probe:
// it is display data, not a lookup key. The order update is a no-op when the
// order_number is unknown; order existence is intentionally not verified.
func (s *Service) IssueReference(ctx context.Context, orderNumber string, amount float64) (*ReferenceResult, error) {
	reference := fmt.Sprintf("%d", rand.IntN(900000000)+100000000)
	now := time.Now().UTC()

	payment := &models.Payment{
		ID:            uuid.NewString(),
		TransactionID: "REF-" + reference,
		OrderNumber:   orderNumber,
		Method:        MethodReference,
		Amount:        amount,
		Status:        models.PaymentStatusPending,
		Reference:     &reference,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.payments.Insert(ctx, payment); err != nil {
		return nil, fmt.Errorf("%w: insert payment: %v", apperr.ErrPersistence, err)
	}

	_, err := s.orders.UpdateByNumber(ctx, orderNumber, map[string]interface{}{
		"payment_reference": reference,
		"payment_method":    MethodReference,
		"payment_status":    models.PaymentStatusPending,
		"updated_at":        now,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: mark order pending: %v", apperr.ErrPersistence, err)
	}

	return &ReferenceResult{
		Reference:  reference,
		Entity:     entityCode,
		ExpiryDate: now.Add(referenceTTL).Format(time.RFC3339),
	}, nil
}

// IssueExpress creates a pending express payment tied to the payer's phone
// number. Same unchecked order-side update as IssueReference.
func (s *Service) IssueExpress(ctx context.Context, orderNumber, phone string, amount float64) (*ExpressResult, error) {
	transactionID := fmt.Sprintf("EXP-%d", rand.IntN(9000000)+1000000)
	now := time.Now().UTC()

	payment := &models.Payment{
		ID:            uuid.NewString(),
		TransactionID: transactionID,
		OrderNumber:   orderNumber,
		Method:        MethodExpress,
		Amount:        amount,
		Status:        models.PaymentStatusPending,
		Phone:         &phone,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.payments.Insert(ctx, payment); err != nil {
		return nil, fmt.Errorf("%w: insert payment: %v", apperr.ErrPersistence, err)
	}

	_, err := s.orders.UpdateByNumber(ctx, orderNumber, map[string]interface{}{
		"payment_method": MethodExpress,
		"payment_status": models.PaymentStatusPending,
		"updated_at":     now,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: mark order pending: %v", apperr.ErrPersistence, err)
	}

	return &ExpressResult{
		TransactionID: transactionID,
		Status:        models.PaymentStatusPending,
	}, nil
}

// CompleteMock force-transitions a payment to paid and confirms the linked
// order. It stands in for a gateway webhook during development and is safe to
// call repeatedly: an already-paid transaction is marked paid again.
func (s *Service) CompleteMock(ctx context.Context, transactionID string) (*StatusResult, error) {
	if _, err := s.findPayment(ctx, transactionID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err := s.payments.UpdateByTransactionID(ctx, transactionID, map[string]interface{}{
		"status":     models.PaymentStatusPaid,
		"updated_at": now,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: mark payment paid: %v", apperr.ErrPersistence, err)
	}

	payment, err := s.findPayment(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	_, err = s.orders.UpdateByNumber(ctx, payment.OrderNumber, map[string]interface{}{
		"payment_status": models.PaymentStatusPaid,
		"status":         models.OrderStatusConfirmed,
		"updated_at":     now,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: confirm order: %v", apperr.ErrPersistence, err)
	}

	return &StatusResult{
		TransactionID: payment.TransactionID,
		Status:        payment.Status,
		OrderNumber:   payment.OrderNumber,
	}, nil
}

func (s *Service) GetStatus(ctx context.Context, transactionID string) (*StatusResult, error) {
	payment, err := s.findPayment(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return &StatusResult{
		TransactionID: payment.TransactionID,
		Status:        payment.Status,
		OrderNumber:   payment.OrderNumber,
	}, nil
}

func (s *Service) findPayment(ctx context.Context, transactionID string) (*models.Payment, error) {
	payment, err := s.payments.FindByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: find payment: %v", apperr.ErrPersistence, err)
	}
	return payment, nil
}
