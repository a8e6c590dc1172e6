package payments

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lrstore/internal/apperr"
	"lrstore/internal/models"
	"lrstore/internal/store"
)

type fakePaymentStore struct {
	payments map[string]*models.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: map[string]*models.Payment{}}
}

func (f *fakePaymentStore) Insert(_ context.Context, payment *models.Payment) error {
	clone := *payment
	f.payments[payment.TransactionID] = &clone
	return nil
}

func (f *fakePaymentStore) FindByTransactionID(_ context.Context, transactionID string) (*models.Payment, error) {
	payment, ok := f.payments[transactionID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	clone := *payment
	return &clone, nil
}

func (f *fakePaymentStore) UpdateByTransactionID(_ context.Context, transactionID string, fields map[string]interface{}) (int64, error) {
	payment, ok := f.payments[transactionID]
	if !ok {
		return 0, nil
	}
	if v, ok := fields["status"]; ok {
		payment.Status = v.(string)
	}
	return 1, nil
}

// orderRecorder tracks order-side updates without enforcing order existence,
// matching the unchecked behavior of the real flow.
type orderRecorder struct {
	updates map[string]map[string]interface{}
	matched int64
}

func newOrderRecorder(matched int64) *orderRecorder {
	return &orderRecorder{updates: map[string]map[string]interface{}{}, matched: matched}
}

func (r *orderRecorder) Insert(context.Context, *models.Order) error { return nil }

func (r *orderRecorder) FindByNumber(context.Context, string) (*models.Order, error) {
	return nil, apperr.ErrNotFound
}

func (r *orderRecorder) NumberExists(context.Context, string) (bool, error) { return false, nil }

func (r *orderRecorder) FindForCustomer(context.Context, string, string, int64) ([]models.Order, error) {
	return nil, nil
}

func (r *orderRecorder) UpdateByNumber(_ context.Context, orderNumber string, fields map[string]interface{}) (int64, error) {
	r.updates[orderNumber] = fields
	return r.matched, nil
}

func (r *orderRecorder) List(context.Context, store.OrderListFilter) ([]models.Order, int64, error) {
	return nil, 0, nil
}

func TestIssueReferenceFormat(t *testing.T) {
	orders := newOrderRecorder(1)
	svc := NewService(newFakePaymentStore(), orders)

	result, err := svc.IssueReference(context.Background(), "123456", 15000)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^[1-9]\d{8}$`), result.Reference)
	assert.Equal(t, "11111", result.Entity)
	assert.NotEmpty(t, result.ExpiryDate)
}

func TestIssueReferenceStampsOrder(t *testing.T) {
	orders := newOrderRecorder(1)
	svc := NewService(newFakePaymentStore(), orders)

	result, err := svc.IssueReference(context.Background(), "123456", 15000)
	require.NoError(t, err)

	fields := orders.updates["123456"]
	require.NotNil(t, fields)
	assert.Equal(t, result.Reference, fields["payment_reference"])
	assert.Equal(t, MethodReference, fields["payment_method"])
	assert.Equal(t, models.PaymentStatusPending, fields["payment_status"])
}

func TestIssueReferenceIgnoresUnknownOrder(t *testing.T) {
	// The order update matches nothing; the flow still succeeds.
	orders := newOrderRecorder(0)
	svc := NewService(newFakePaymentStore(), orders)

	_, err := svc.IssueReference(context.Background(), "999999", 5000)

	assert.NoError(t, err)
}

func TestIssueReferenceThenStatus(t *testing.T) {
	svc := NewService(newFakePaymentStore(), newOrderRecorder(1))

	result, err := svc.IssueReference(context.Background(), "123456", 15000)
	require.NoError(t, err)

	status, err := svc.GetStatus(context.Background(), "REF-"+result.Reference)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPending, status.Status)
	assert.Equal(t, "123456", status.OrderNumber)
}

func TestIssueExpressFormat(t *testing.T) {
	payments := newFakePaymentStore()
	svc := NewService(payments, newOrderRecorder(1))

	result, err := svc.IssueExpress(context.Background(), "123456", "923000000", 15000)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^EXP-[1-9]\d{6}$`), result.TransactionID)
	assert.Equal(t, models.PaymentStatusPending, result.Status)

	stored := payments.payments[result.TransactionID]
	require.NotNil(t, stored)
	require.NotNil(t, stored.Phone)
	assert.Equal(t, "923000000", *stored.Phone)
}

func TestCompleteMockMarksPaymentAndOrderPaid(t *testing.T) {
	payments := newFakePaymentStore()
	orders := newOrderRecorder(1)
	svc := NewService(payments, orders)

	issued, err := svc.IssueExpress(context.Background(), "123456", "923000000", 15000)
	require.NoError(t, err)

	result, err := svc.CompleteMock(context.Background(), issued.TransactionID)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPaid, result.Status)
	assert.Equal(t, "123456", result.OrderNumber)

	fields := orders.updates["123456"]
	require.NotNil(t, fields)
	assert.Equal(t, models.PaymentStatusPaid, fields["payment_status"])
	assert.Equal(t, models.OrderStatusConfirmed, fields["status"])
}

func TestCompleteMockIsRepeatable(t *testing.T) {
	payments := newFakePaymentStore()
	svc := NewService(payments, newOrderRecorder(1))

	issued, err := svc.IssueExpress(context.Background(), "123456", "923000000", 15000)
	require.NoError(t, err)

	first, err := svc.CompleteMock(context.Background(), issued.TransactionID)
	require.NoError(t, err)
	second, err := svc.CompleteMock(context.Background(), issued.TransactionID)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPaid, first.Status)
	assert.Equal(t, models.PaymentStatusPaid, second.Status)
}

func TestCompleteMockUnknownTransaction(t *testing.T) {
	svc := NewService(newFakePaymentStore(), newOrderRecorder(1))

	_, err := svc.CompleteMock(context.Background(), "EXP-0000000")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestGetStatus(t *testing.T) {
	payments := newFakePaymentStore()
	svc := NewService(payments, newOrderRecorder(1))

	issued, err := svc.IssueExpress(context.Background(), "654321", "923111222", 8000)
	require.NoError(t, err)

	status, err := svc.GetStatus(context.Background(), issued.TransactionID)
	require.NoError(t, err)

	assert.Equal(t, issued.TransactionID, status.TransactionID)
	assert.Equal(t, models.PaymentStatusPending, status.Status)
	assert.Equal(t, "654321", status.OrderNumber)
}

func TestGetStatusUnknownTransaction(t *testing.T) {
	svc := NewService(newFakePaymentStore(), newOrderRecorder(1))

	_, err := svc.GetStatus(context.Background(), "REF-000000000")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
