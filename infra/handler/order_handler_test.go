package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokoide/solid-orders/domain/entity"
)

type stubDispatcher struct {
	err    error
	orders []entity.Order
}

func (s *stubDispatcher) ProcessOrder(ctx context.Context, order entity.Order) error {
	s.orders = append(s.orders, order)
	return s.err
}

type stubStatuses map[string]entity.OrderStatus

func (s stubStatuses) Status(ctx context.Context, orderID string) (entity.OrderStatus, error) {
	if orderID == "broken" {
		return "", errors.New("db down")
	}
	st, ok := s[orderID]
	if !ok {
		return "", entity.ErrStatusNotFound
	}
	return st, nil
}

type fixedID string

func (f fixedID) GenerateID() string { return string(f) }

type fixture struct {
	router   *gin.Engine
	standard *stubDispatcher
	express  *stubDispatcher
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)
	f := &fixture{
		router:   gin.New(),
		standard: &stubDispatcher{},
		express:  &stubDispatcher{},
	}
	h := NewOrderHandler(
		map[entity.OrderType]Dispatcher{
			entity.OrderTypeStandard: f.standard,
			entity.OrderTypeExpress:  f.express,
		},
		stubStatuses{"1": entity.OrderStatusProcessed},
		fixedID("generated-id"),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	h.Register(f.router)
	return f
}

func (f *fixture) do(method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestCreateOrder_RoutesByType(t *testing.T) {
	f := newFixture()

	w, resp := f.do(http.MethodPost, "/api/v1/orders",
		`{"id":"1","type":"standard","quantity":2,"amount":50,"customer_email":"a@b.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", resp["order_id"])
	assert.Equal(t, "processed", resp["status"])
	require.Len(t, f.standard.orders, 1)
	assert.Equal(t, entity.Order{ID: "1", Type: "standard", Quantity: 2, Amount: 50, CustomerEmail: "a@b.com"}, f.standard.orders[0])
	assert.Empty(t, f.express.orders)

	w, _ = f.do(http.MethodPost, "/api/v1/orders",
		`{"id":"2","type":"express","quantity":1,"amount":10,"customer_email":"a@b.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, f.express.orders, 1)
}

func TestCreateOrder_GeneratesMissingID(t *testing.T) {
	f := newFixture()

	w, resp := f.do(http.MethodPost, "/api/v1/orders",
		`{"type":"standard","quantity":1,"amount":5,"customer_email":"a@b.com"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "generated-id", resp["order_id"])
	assert.Equal(t, "generated-id", f.standard.orders[0].ID)
}

func TestCreateOrder_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"type":`},
		{"missing type", `{"quantity":1,"amount":5,"customer_email":"a@b.com"}`},
		{"zero quantity", `{"type":"standard","quantity":0,"amount":5,"customer_email":"a@b.com"}`},
		{"negative amount", `{"type":"standard","quantity":1,"amount":-5,"customer_email":"a@b.com"}`},
		{"bad email", `{"type":"standard","quantity":1,"amount":5,"customer_email":"nope"}`},
		{"unknown type", `{"type":"overnight","quantity":1,"amount":5,"customer_email":"a@b.com"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			w, resp := f.do(http.MethodPost, "/api/v1/orders", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, resp["error"])
			assert.Empty(t, f.standard.orders)
		})
	}
}

func TestCreateOrder_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{entity.ErrOutOfStock, http.StatusConflict},
		{entity.ErrPaymentFailed, http.StatusPaymentRequired},
		{entity.ErrExpressPaymentFailed, http.StatusPaymentRequired},
		{errors.New("smtp relay down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			f := newFixture()
			f.standard.err = tt.err

			w, resp := f.do(http.MethodPost, "/api/v1/orders",
				`{"id":"9","type":"standard","quantity":1,"amount":5,"customer_email":"a@b.com"}`)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, "9", resp["order_id"])
		})
	}
}

func TestGetStatus(t *testing.T) {
	f := newFixture()

	w, resp := f.do(http.MethodGet, "/api/v1/orders/1/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "processed", resp["status"])

	w, _ = f.do(http.MethodGet, "/api/v1/orders/missing/status", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, resp = f.do(http.MethodGet, "/api/v1/orders/broken/status", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal error", resp["error"])
}

func TestHealth(t *testing.T) {
	f := newFixture()
	w, _ := f.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
