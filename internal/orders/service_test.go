package orders

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

type fakeOrderStore struct {
	orders map[string]*models.Order

	numberExists func(orderNumber string) (bool, error)
	insertErr    error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[string]*models.Order{}}
}

func (f *fakeOrderStore) Insert(_ context.Context, order *models.Order) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	clone := *order
	f.orders[order.OrderNumber] = &clone
	return nil
}

func (f *fakeOrderStore) FindByNumber(_ context.Context, orderNumber string) (*models.Order, error) {
	order, ok := f.orders[orderNumber]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (f *fakeOrderStore) NumberExists(_ context.Context, orderNumber string) (bool, error) {
	if f.numberExists != nil {
		return f.numberExists(orderNumber)
	}
	_, ok := f.orders[orderNumber]
	return ok, nil
}

func (f *fakeOrderStore) FindForCustomer(_ context.Context, userID, email string, limit int64) ([]models.Order, error) {
	result := make([]models.Order, 0)
	for _, order := range f.orders {
		if userID != "" && order.UserID != nil && *order.UserID == userID {
			result = append(result, *order)
			continue
		}
		if email != "" && order.Customer.Email == email {
			result = append(result, *order)
		}
	}
	if limit > 0 && int64(len(result)) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeOrderStore) UpdateByNumber(_ context.Context, orderNumber string, fields map[string]interface{}) (int64, error) {
	order, ok := f.orders[orderNumber]
	if !ok {
		return 0, nil
	}
	if v, ok := fields["status"]; ok {
		order.Status = v.(string)
	}
	if v, ok := fields["payment_status"]; ok {
		order.PaymentStatus = v.(string)
	}
	return 1, nil
}

func (f *fakeOrderStore) List(_ context.Context, _ store.OrderListFilter) ([]models.Order, int64, error) {
	result := make([]models.Order, 0, len(f.orders))
	for _, order := range f.orders {
		result = append(result, *order)
	}
	return result, int64(len(result)), nil
}

func validInput() CreateInput {
	return CreateInput{
		Customer: models.OrderCustomer{
			Name:    "Joana Miguel",
			Email:   "Joana@Example.COM",
			Phone:   "923111222",
			Address: "Rua Principal 10",
			City:    "Luanda",
		},
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Vestido", Quantity: 2, Price: 7500},
		},
		PaymentMethod: "multicaixa-reference",
		Total:         15000,
	}
}

func TestCreateAssignsSixDigitNumber(t *testing.T) {
	svc := NewService(newFakeOrderStore())

	order, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^[1-9]\d{5}$`), order.OrderNumber)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
}

func TestCreateLowercasesCustomerEmail(t *testing.T) {
	svc := NewService(newFakeOrderStore())

	order, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "joana@example.com", order.Customer.Email)
}

func TestCreateRetriesOnNumberCollision(t *testing.T) {
	fake := newFakeOrderStore()
	probes := 0
	fake.numberExists = func(string) (bool, error) {
		probes++
		return probes <= 3, nil
	}
	svc := NewService(fake)

	order, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, 4, probes)
	assert.NotEmpty(t, order.OrderNumber)
}

func TestCreateFailsWhenNumberSpaceExhausted(t *testing.T) {
	fake := newFakeOrderStore()
	fake.numberExists = func(string) (bool, error) { return true, nil }
	svc := NewService(fake)

	_, err := svc.Create(context.Background(), validInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrResourceExhausted))
}

func TestCreateWrapsInsertFailure(t *testing.T) {
	fake := newFakeOrderStore()
	fake.insertErr = errors.New("write concern failed")
	svc := NewService(fake)

	_, err := svc.Create(context.Background(), validInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrPersistence))
}

func TestGetByNumberNotFound(t *testing.T) {
	svc := NewService(newFakeOrderStore())

	_, err := svc.GetByNumber(context.Background(), "123456")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestListForCustomerRequiresFilter(t *testing.T) {
	svc := NewService(newFakeOrderStore())

	_, err := svc.ListForCustomer(context.Background(), "", "  ", 0)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
}

func TestListForCustomerMatchesLowercasedEmail(t *testing.T) {
	fake := newFakeOrderStore()
	svc := NewService(fake)

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	orders, err := svc.ListForCustomer(context.Background(), "", "JOANA@example.com", 0)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestUpdateStatusRequiresFields(t *testing.T) {
	svc := NewService(newFakeOrderStore())

	_, err := svc.UpdateStatus(context.Background(), "123456", StatusUpdate{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc := NewService(newFakeOrderStore())
	shipped := "shipped"

	_, err := svc.UpdateStatus(context.Background(), "654321", StatusUpdate{Status: &shipped})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestUpdateStatusAppliesPartialUpdate(t *testing.T) {
	fake := newFakeOrderStore()
	svc := NewService(fake)

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	shipped := "shipped"
	updated, err := svc.UpdateStatus(context.Background(), created.OrderNumber, StatusUpdate{Status: &shipped})
	require.NoError(t, err)

	assert.Equal(t, "shipped", updated.Status)
	assert.Equal(t, models.PaymentStatusPending, updated.PaymentStatus)
}
