package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"orderledger/internal/core/application/usecases/queries"
	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/core/domain/model/order"
	"orderledger/internal/core/domain/model/parcel"
	"orderledger/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderReader) List(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderReader) ListAwaitingDispatch(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockTrackingClient struct{ mock.Mock }

func (m *MockTrackingClient) GetParcel(ctx context.Context, parcelID string) (*parcel.Parcel, error) {
	args := m.Called(ctx, parcelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockTrackingClient) UpdateParcel(ctx context.Context, p *parcel.Parcel) (*parcel.Parcel, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestOrder(t *testing.T, createdAt time.Time) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "Kettle", 2, decimal.NewFromInt(100), "")
	require.NoError(t, err)
	addr, err := order.NewAddress("1 Main St", "Pune", "", "", "411001", "IN")
	require.NoError(t, err)
	prices, err := order.NewPrices(
		decimal.NewFromInt(200), decimal.NewFromInt(100), decimal.NewFromInt(36), decimal.NewFromInt(336))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), []order.LineItem{item}, addr, "Razorpay", prices, createdAt)
	require.NoError(t, err)
	return o
}

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	tests := []struct {
		name     string
		validate func() error
		expected error
	}{
		{"get order", queries.GetOrderQuery{}.Validate, queries.ErrGetOrderQueryIsNotConstructed},
		{"list orders", queries.ListOrdersQuery{}.Validate, queries.ErrListOrdersQueryIsNotConstructed},
		{"sales summary", queries.GetSalesSummaryQuery{}.Validate, queries.ErrGetSalesSummaryQueryIsNotConstructed},
		{"sales by date", queries.GetSalesByDateQuery{}.Validate, queries.ErrGetSalesByDateQueryIsNotConstructed},
		{"open incidents", queries.ListOpenIncidentsQuery{}.Validate, queries.ErrListOpenIncidentsQueryIsNotConstructed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.validate(), tt.expected)
		})
	}
}

func TestNewGetOrderQuery_RequiresID(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.UUID{})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetOrder_WithoutParcel_SkipsTracking(t *testing.T) {
	ctx := t.Context()
	o := newTestOrder(t, time.Now())
	reader := new(MockOrderReader)
	reader.On("Get", ctx, o.ID()).Return(o, nil).Once()
	tracking := new(MockTrackingClient)

	query, err := queries.NewGetOrderQuery(o.ID())
	require.NoError(t, err)

	resp, err := queries.NewGetOrderQueryHandler(reader, tracking, discardLogger()).Handle(ctx, query)

	require.NoError(t, err)
	assert.Same(t, o, resp.Order)
	assert.Nil(t, resp.Parcel)
	tracking.AssertNotCalled(t, "GetParcel", mock.Anything, mock.Anything)
}

func TestGetOrder_WithParcel_IncludesParcel(t *testing.T) {
	ctx := t.Context()
	o := newTestOrder(t, time.Now())
	require.NoError(t, o.AssignParcel("p-1", time.Now()))
	p, err := parcel.Decode("p-1", []byte(`{"shippingAddress": {"city": "Pune"}, "busId": "B-1"}`), "")
	require.NoError(t, err)

	reader := new(MockOrderReader)
	reader.On("Get", ctx, o.ID()).Return(o, nil).Once()
	tracking := new(MockTrackingClient)
	tracking.On("GetParcel", ctx, "p-1").Return(p, nil).Once()

	query, _ := queries.NewGetOrderQuery(o.ID())
	resp, err := queries.NewGetOrderQueryHandler(reader, tracking, discardLogger()).Handle(ctx, query)

	require.NoError(t, err)
	assert.Same(t, p, resp.Parcel)
}

func TestGetOrder_TrackingDown_ReturnsOrderWithoutParcel(t *testing.T) {
	ctx := t.Context()
	o := newTestOrder(t, time.Now())
	require.NoError(t, o.AssignParcel("p-1", time.Now()))

	reader := new(MockOrderReader)
	reader.On("Get", ctx, o.ID()).Return(o, nil).Once()
	tracking := new(MockTrackingClient)
	tracking.On("GetParcel", ctx, "p-1").Return(nil, errors.New("connection refused")).Once()

	query, _ := queries.NewGetOrderQuery(o.ID())
	resp, err := queries.NewGetOrderQueryHandler(reader, tracking, discardLogger()).Handle(ctx, query)

	require.NoError(t, err)
	assert.Same(t, o, resp.Order)
	assert.Nil(t, resp.Parcel)
}

func TestGetOrder_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	reader := new(MockOrderReader)
	reader.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()

	query, _ := queries.NewGetOrderQuery(id)
	_, err := queries.NewGetOrderQueryHandler(reader, new(MockTrackingClient), discardLogger()).Handle(ctx, query)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestListOrders_ChoosesReaderMethod(t *testing.T) {
	ctx := t.Context()
	all := []*order.Order{newTestOrder(t, time.Now()), newTestOrder(t, time.Now())}
	waiting := all[:1]

	reader := new(MockOrderReader)
	reader.On("List", ctx).Return(all, nil).Once()
	reader.On("ListAwaitingDispatch", ctx).Return(waiting, nil).Once()
	handler := queries.NewListOrdersQueryHandler(reader)

	got, err := handler.Handle(ctx, queries.NewListOrdersQuery())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = handler.Handle(ctx, queries.NewListOrdersAwaitingDispatchQuery())
	require.NoError(t, err)
	assert.Len(t, got, 1)

	reader.AssertExpectations(t)
}
