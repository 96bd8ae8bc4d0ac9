package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	postgres_adapter "orderledger/internal/adapters/out/postgres"
	"orderledger/internal/adapters/out/postgres/incidentrepo"
	"orderledger/internal/adapters/out/postgres/orderrepo"
	"orderledger/internal/core/application/usecases/queries"
	"orderledger/internal/core/domain/model/incident"
	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ReadModelQueryHandlersTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orders    *orderrepo.GormOrderRepository
	incidents *incidentrepo.GormIncidentRepository
}

func (suite *ReadModelQueryHandlersTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.AutoMigrate(db))

	suite.orders = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	suite.incidents = incidentrepo.NewGormIncidentRepository(db)
}

func (suite *ReadModelQueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ReadModelQueryHandlersTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items, integrity_incidents").Error
	suite.Require().NoError(err)
}

func (suite *ReadModelQueryHandlersTestSuite) TestSalesSummary_EmptyDatabase() {
	resp, err := queries.NewGetSalesSummaryQueryHandler(suite.db).
		Handle(suite.T().Context(), queries.NewGetSalesSummaryQuery())

	suite.Require().NoError(err)
	suite.Equal(int64(0), resp.TotalOrders)
	suite.True(resp.TotalSales.IsZero())
}

func (suite *ReadModelQueryHandlersTestSuite) TestSalesSummary_CountsPaidAndUnpaid() {
	suite.addOrder(nil)
	paidAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	suite.addOrder(&paidAt)

	resp, err := queries.NewGetSalesSummaryQueryHandler(suite.db).
		Handle(suite.T().Context(), queries.NewGetSalesSummaryQuery())

	suite.Require().NoError(err)
	suite.Equal(int64(2), resp.TotalOrders)
	suite.True(decimal.NewFromInt(672).Equal(resp.TotalSales), resp.TotalSales.String())
}

func (suite *ReadModelQueryHandlersTestSuite) TestSalesByDate_GroupsPaidOrdersByDay() {
	dayOneMorning := time.Date(2026, 3, 1, 1, 0, 0, 0, time.UTC)
	dayOneEvening := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
	dayTwo := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	suite.addOrder(&dayTwo)
	suite.addOrder(&dayOneMorning)
	suite.addOrder(&dayOneEvening)
	suite.addOrder(nil)

	days, err := queries.NewGetSalesByDateQueryHandler(suite.db).
		Handle(suite.T().Context(), queries.NewGetSalesByDateQuery())

	suite.Require().NoError(err)
	suite.Require().Len(days, 2)
	suite.Equal("2026-03-01", days[0].Date)
	suite.True(decimal.NewFromInt(672).Equal(days[0].TotalSales))
	suite.Equal("2026-03-02", days[1].Date)
	suite.True(decimal.NewFromInt(336).Equal(days[1].TotalSales))
}

func (suite *ReadModelQueryHandlersTestSuite) TestSalesByDate_NoPaidOrders_ReturnsEmptySlice() {
	suite.addOrder(nil)

	days, err := queries.NewGetSalesByDateQueryHandler(suite.db).
		Handle(suite.T().Context(), queries.NewGetSalesByDateQuery())

	suite.Require().NoError(err)
	suite.NotNil(days)
	suite.Empty(days)
}

func (suite *ReadModelQueryHandlersTestSuite) TestListOpenIncidents() {
	ctx := suite.T().Context()
	orderID := kernel.NewUUID()
	first, err := incident.NewIncident(kernel.NewUUID(), orderID, "p-1",
		[]byte(`{"city":"Mysuru"}`), []byte(`{"city":"Pune"}`),
		errors.New("503"), time.Now().Add(-time.Minute))
	suite.Require().NoError(err)
	second, err := incident.NewIncident(kernel.NewUUID(), orderID, "p-1",
		nil, nil, errors.New("timeout"), time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.incidents.Add(ctx, second))
	suite.Require().NoError(suite.incidents.Add(ctx, first))

	got, err := queries.NewListOpenIncidentsQueryHandler(suite.db).Handle(ctx, queries.NewListOpenIncidentsQuery())

	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.True(got[0].ID.IsEqual(first.ID()))
	suite.True(got[0].OrderID.IsEqual(orderID))
	suite.Equal("p-1", got[0].ParcelID)
	suite.JSONEq(`{"city":"Mysuru"}`, string(got[0].IntendedAddress))
	suite.JSONEq(`{"city":"Pune"}`, string(got[0].PreviousAddress))
	suite.Equal("503", got[0].Cause)
	suite.Equal("null", string(got[1].IntendedAddress))
}

func (suite *ReadModelQueryHandlersTestSuite) TestHandle_CancelledContext_ReturnsError() {
	suite.addOrder(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := queries.NewGetSalesSummaryQueryHandler(suite.db).Handle(ctx, queries.NewGetSalesSummaryQuery())

	suite.Require().Error(err)
}

// addOrder stores an order with a total of 336, paid at paidAt when it is not nil.
func (suite *ReadModelQueryHandlersTestSuite) addOrder(paidAt *time.Time) *order.Order {
	ctx := suite.T().Context()
	o := newTestOrder(suite.T(), time.Now())
	suite.Require().NoError(suite.orders.Add(ctx, o))

	if paidAt != nil {
		suite.Require().NoError(o.MarkPaid(order.PaymentResult{GatewayPaymentID: "pay"}, *paidAt))
		suite.Require().NoError(suite.orders.MarkPaid(ctx, o))
	}
	return o
}

func TestReadModelQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(ReadModelQueryHandlersTestSuite))
}

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}
