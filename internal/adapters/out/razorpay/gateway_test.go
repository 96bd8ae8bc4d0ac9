package razorpay_test

import (
	"context"
	"errors"
	"testing"

	"orderledger/internal/adapters/out/razorpay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderCreator struct {
	mock.Mock
	block chan struct{}
}

func (m *MockOrderCreator) Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error) {
	if m.block != nil {
		<-m.block
	}
	args := m.Called(data, extraHeaders)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

func TestCreateOrder_SendsAmountInMinorUnits(t *testing.T) {
	orders := new(MockOrderCreator)
	orders.On("Create", map[string]interface{}{
		"amount":          int64(33600),
		"currency":        "INR",
		"receipt":         "rcpt_abc",
		"payment_capture": 1,
	}, map[string]string(nil)).Return(map[string]interface{}{
		"id":       "order_Nx1",
		"amount":   float64(33600),
		"currency": "INR",
		"receipt":  "rcpt_abc",
		"status":   "created",
	}, nil).Once()

	got, err := razorpay.NewGatewayWithOrders(orders).CreateOrder(t.Context(), 33600, "INR", "rcpt_abc")

	require.NoError(t, err)
	assert.Equal(t, "order_Nx1", got.ID)
	assert.Equal(t, int64(33600), got.AmountMinor)
	assert.Equal(t, "INR", got.Currency)
	assert.Equal(t, "rcpt_abc", got.Receipt)
	orders.AssertExpectations(t)
}

func TestCreateOrder_RequestsAutomaticCapture(t *testing.T) {
	orders := new(MockOrderCreator)
	orders.On("Create", mock.MatchedBy(func(data map[string]interface{}) bool {
		return data["payment_capture"] == 1
	}), mock.Anything).Return(map[string]interface{}{"id": "order_Nx2"}, nil).Once()

	_, err := razorpay.NewGatewayWithOrders(orders).CreateOrder(t.Context(), 100, "INR", "rcpt_y")

	require.NoError(t, err)
	orders.AssertExpectations(t)
}

func TestCreateOrder_GatewayError(t *testing.T) {
	orders := new(MockOrderCreator)
	orders.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("BAD_REQUEST_ERROR")).Once()

	_, err := razorpay.NewGatewayWithOrders(orders).CreateOrder(t.Context(), 100, "INR", "rcpt_x")

	require.EqualError(t, err, "BAD_REQUEST_ERROR")
}

func TestCreateOrder_ResponseWithoutID(t *testing.T) {
	orders := new(MockOrderCreator)
	orders.On("Create", mock.Anything, mock.Anything).Return(map[string]interface{}{"error": "x"}, nil).Once()

	_, err := razorpay.NewGatewayWithOrders(orders).CreateOrder(t.Context(), 100, "INR", "rcpt_x")

	require.Error(t, err)
}

func TestCreateOrder_ContextCancelled(t *testing.T) {
	orders := &MockOrderCreator{block: make(chan struct{})}
	orders.On("Create", mock.Anything, mock.Anything).Return(map[string]interface{}{"id": "late"}, nil).Maybe()
	defer close(orders.block)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := razorpay.NewGatewayWithOrders(orders).CreateOrder(ctx, 100, "INR", "rcpt_x")

	require.ErrorIs(t, err, context.Canceled)
}
