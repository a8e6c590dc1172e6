package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"lrstore/internal/apperr"
	"lrstore/internal/models"
	"lrstore/internal/orders"
	"lrstore/internal/payments"
	"lrstore/internal/store"
)

type memOrderStore struct {
	orders map[string]*models.Order
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{orders: map[string]*models.Order{}}
}

func (m *memOrderStore) Insert(_ context.Context, order *models.Order) error {
	clone := *order
	m.orders[order.OrderNumber] = &clone
	return nil
}

func (m *memOrderStore) FindByNumber(_ context.Context, orderNumber string) (*models.Order, error) {
	order, ok := m.orders[orderNumber]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (m *memOrderStore) NumberExists(_ context.Context, orderNumber string) (bool, error) {
	_, ok := m.orders[orderNumber]
	return ok, nil
}

func (m *memOrderStore) FindForCustomer(_ context.Context, userID, email string, limit int64) ([]models.Order, error) {
	result := make([]models.Order, 0)
	for _, order := range m.orders {
		if email != "" && order.Customer.Email == email {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (m *memOrderStore) UpdateByNumber(_ context.Context, orderNumber string, fields map[string]interface{}) (int64, error) {
	order, ok := m.orders[orderNumber]
	if !ok {
		return 0, nil
	}
	if v, ok := fields["status"]; ok {
		order.Status = v.(string)
	}
	if v, ok := fields["payment_status"]; ok {
		order.PaymentStatus = v.(string)
	}
	if v, ok := fields["payment_method"]; ok {
		order.PaymentMethod = v.(string)
	}
	if v, ok := fields["payment_reference"]; ok {
		ref := v.(string)
		order.PaymentReference = &ref
	}
	return 1, nil
}

func (m *memOrderStore) List(_ context.Context, _ store.OrderListFilter) ([]models.Order, int64, error) {
	result := make([]models.Order, 0, len(m.orders))
	for _, order := range m.orders {
		result = append(result, *order)
	}
	return result, int64(len(result)), nil
}

type memPaymentStore struct {
	payments map[string]*models.Payment
}

func newMemPaymentStore() *memPaymentStore {
	return &memPaymentStore{payments: map[string]*models.Payment{}}
}

func (m *memPaymentStore) Insert(_ context.Context, payment *models.Payment) error {
	clone := *payment
	m.payments[payment.TransactionID] = &clone
	return nil
}

func (m *memPaymentStore) FindByTransactionID(_ context.Context, transactionID string) (*models.Payment, error) {
	payment, ok := m.payments[transactionID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	clone := *payment
	return &clone, nil
}

func (m *memPaymentStore) UpdateByTransactionID(_ context.Context, transactionID string, fields map[string]interface{}) (int64, error) {
	payment, ok := m.payments[transactionID]
	if !ok {
		return 0, nil
	}
	if v, ok := fields["status"]; ok {
		payment.Status = v.(string)
	}
	return 1, nil
}

func newTestRouter(orderStore store.OrderStore, paymentStore store.PaymentStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	orderService := orders.NewService(orderStore)
	paymentService := payments.NewService(paymentStore, orderStore)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/orders", CreateOrder(orderService))
	api.GET("/orders/my", GetMyOrders(orderService))
	api.GET("/orders/:order_number", GetOrder(orderService))
	api.POST("/payments/multicaixa/reference", GeneratePaymentReference(paymentService))
	api.POST("/payments/multicaixa/express", ProcessExpressPayment(paymentService))
	api.POST("/payments/mock/pay/:transaction_id", MockPayTransaction(paymentService))
	api.GET("/payments/status/:transaction_id", GetPaymentStatus(paymentService))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	decoded := map[string]interface{}{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, decoded
}

func orderPayload() map[string]interface{} {
	return map[string]interface{}{
		"customer": map[string]interface{}{
			"name":    "Joana Miguel",
			"email":   "joana@example.com",
			"phone":   "923111222",
			"address": "Rua Principal 10",
			"city":    "Luanda",
		},
		"items": []map[string]interface{}{
			{"product_id": "p1", "name": "Vestido Elegante", "quantity": 2, "price": 7500},
		},
		"payment_method": "multicaixa-express",
		"total":          15000,
	}
}

func TestExpressPaymentFlow(t *testing.T) {
	r := newTestRouter(newMemOrderStore(), newMemPaymentStore())

	// Place the order.
	w, body := doJSON(t, r, http.MethodPost, "/api/orders", orderPayload())
	if w.Code != http.StatusOK {
		t.Fatalf("create order: status %d body %s", w.Code, w.Body.String())
	}
	order := body["order"].(map[string]interface{})
	orderNumber := order["order_number"].(string)
	if order["status"] != "pending" {
		t.Fatalf("new order status = %v, want pending", order["status"])
	}

	// Start an express payment.
	w, body = doJSON(t, r, http.MethodPost, "/api/payments/multicaixa/express", map[string]interface{}{
		"order_number": orderNumber,
		"phone":        "923000000",
		"amount":       15000,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("express payment: status %d body %s", w.Code, w.Body.String())
	}
	transactionID := body["transaction_id"].(string)
	if body["status"] != "pending" {
		t.Fatalf("express status = %v, want pending", body["status"])
	}

	// Complete it through the mock gateway.
	w, body = doJSON(t, r, http.MethodPost, "/api/payments/mock/pay/"+transactionID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("mock pay: status %d body %s", w.Code, w.Body.String())
	}
	if body["status"] != "paid" {
		t.Fatalf("mock pay status = %v, want paid", body["status"])
	}

	// The order is now confirmed and paid.
	w, body = doJSON(t, r, http.MethodGet, "/api/orders/"+orderNumber, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get order: status %d body %s", w.Code, w.Body.String())
	}
	order = body["order"].(map[string]interface{})
	if order["status"] != "confirmed" {
		t.Errorf("order status = %v, want confirmed", order["status"])
	}
	if order["payment_status"] != "paid" {
		t.Errorf("order payment_status = %v, want paid", order["payment_status"])
	}
}

func TestReferencePaymentStampsOrder(t *testing.T) {
	r := newTestRouter(newMemOrderStore(), newMemPaymentStore())

	w, body := doJSON(t, r, http.MethodPost, "/api/orders", orderPayload())
	if w.Code != http.StatusOK {
		t.Fatalf("create order: status %d", w.Code)
	}
	orderNumber := body["order"].(map[string]interface{})["order_number"].(string)

	w, body = doJSON(t, r, http.MethodPost, "/api/payments/multicaixa/reference", map[string]interface{}{
		"order_number": orderNumber,
		"amount":       15000,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("reference payment: status %d body %s", w.Code, w.Body.String())
	}
	if body["entity"] != "11111" {
		t.Errorf("entity = %v, want 11111", body["entity"])
	}
	reference := body["reference"].(string)

	w, body = doJSON(t, r, http.MethodGet, "/api/orders/"+orderNumber, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get order: status %d", w.Code)
	}
	order := body["order"].(map[string]interface{})
	if order["payment_reference"] != reference {
		t.Errorf("order payment_reference = %v, want %v", order["payment_reference"], reference)
	}
	if order["payment_method"] != "multicaixa-reference" {
		t.Errorf("order payment_method = %v, want multicaixa-reference", order["payment_method"])
	}
}

func TestCreateOrderValidation(t *testing.T) {
	r := newTestRouter(newMemOrderStore(), newMemPaymentStore())

	payload := orderPayload()
	payload["items"] = []map[string]interface{}{}

	w, _ := doJSON(t, r, http.MethodPost, "/api/orders", payload)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty items: status %d, want 400", w.Code)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	r := newTestRouter(newMemOrderStore(), newMemPaymentStore())

	w, _ := doJSON(t, r, http.MethodGet, "/api/orders/999999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404", w.Code)
	}
}

func TestGetMyOrdersRequiresFilter(t *testing.T) {
	r := newTestRouter(newMemOrderStore(), newMemPaymentStore())

	w, _ := doJSON(t, r, http.MethodGet, "/api/orders/my", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", w.Code)
	}
}

func TestGetMyOrdersByEmail(t *testing.T) {
	r := newTestRouter(newMemOrderStore(), newMemPaymentStore())

	w, _ := doJSON(t, r, http.MethodPost, "/api/orders", orderPayload())
	if w.Code != http.StatusOK {
		t.Fatalf("create order: status %d", w.Code)
	}

	w, body := doJSON(t, r, http.MethodGet, "/api/orders/my?email=JOANA@example.com", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	list := body["orders"].([]interface{})
	if len(list) != 1 {
		t.Errorf("got %d orders, want 1", len(list))
	}
}

func TestPaymentStatusUnknownTransaction(t *testing.T) {
	r := newTestRouter(newMemOrderStore(), newMemPaymentStore())

	w, _ := doJSON(t, r, http.MethodGet, "/api/payments/status/EXP-0000000", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404", w.Code)
	}
}

func TestMockPayIsRepeatable(t *testing.T) {
	r := newTestRouter(newMemOrderStore(), newMemPaymentStore())

	w, body := doJSON(t, r, http.MethodPost, "/api/orders", orderPayload())
	if w.Code != http.StatusOK {
		t.Fatalf("create order: status %d", w.Code)
	}
	orderNumber := body["order"].(map[string]interface{})["order_number"].(string)

	w, body = doJSON(t, r, http.MethodPost, "/api/payments/multicaixa/express", map[string]interface{}{
		"order_number": orderNumber,
		"phone":        "923000000",
		"amount":       15000,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("express payment: status %d", w.Code)
	}
	transactionID := body["transaction_id"].(string)

	for i := 0; i < 2; i++ {
		w, body = doJSON(t, r, http.MethodPost, "/api/payments/mock/pay/"+transactionID, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("mock pay attempt %d: status %d", i+1, w.Code)
		}
		if body["status"] != "paid" {
			t.Fatalf("mock pay attempt %d: status = %v, want paid", i+1, body["status"])
		}
	}
}
