package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"orderledger/internal/core/application/usecases/commands"
	"orderledger/internal/core/domain/model/catalog"
	"orderledger/internal/core/domain/model/incident"
	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/core/domain/model/order"
	"orderledger/internal/core/domain/model/parcel"
	"orderledger/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) MarkPaid(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListAwaitingDispatch(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockIncidentRepository struct{ mock.Mock }

func (m *MockIncidentRepository) Add(ctx context.Context, i *incident.Incident) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

// MockUoW satisfies both commands.OrderUoW and commands.UoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) IncidentRepository() ports.IncidentRepository {
	args := m.Called()
	return args.Get(0).(ports.IncidentRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockProductCatalog struct{ mock.Mock }

func (m *MockProductCatalog) FindByIDs(ctx context.Context, ids []kernel.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreateOrder(
	ctx context.Context,
	amountMinor int64,
	currency, receipt string,
) (ports.GatewayOrder, error) {
	args := m.Called(ctx, amountMinor, currency, receipt)
	return args.Get(0).(ports.GatewayOrder), args.Error(1)
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

type MockAddressUpdateObserver struct{ mock.Mock }

func (m *MockAddressUpdateObserver) ObserveAddressUpdate(outcome string) {
	m.Called(outcome)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// raisedEvents lists the types of the events o raised and has not yet handed over.
func raisedEvents(o *order.Order) []order.EventType {
	types := make([]order.EventType, 0, len(o.Events()))
	for _, e := range o.Events() {
		types = append(types, e.Type)
	}
	return types
}

func testAddress(t *testing.T) order.Address {
	t.Helper()
	a, err := order.NewAddress("1 Main St", "Pune", "Kothrud", "MH", "411001", "IN")
	require.NoError(t, err)
	return a
}

// testOrder builds an unpaid order with one item priced 100 × 2. It carries no pending
// events, like an order loaded from storage.
func testOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "Kettle", 2, decimal.NewFromInt(100), "")
	require.NoError(t, err)
	prices, err := order.NewPrices(
		decimal.NewFromInt(200), decimal.NewFromInt(100), decimal.NewFromInt(36), decimal.NewFromInt(336))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), []order.LineItem{item}, testAddress(t), "Razorpay", prices, time.Now())
	require.NoError(t, err)
	o.ClearEvents()
	return o
}

func paidTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o := testOrder(t)
	require.NoError(t, o.MarkPaid(order.PaymentResult{GatewayPaymentID: "pay_first"}, time.Now()))
	o.ClearEvents()
	return o
}
