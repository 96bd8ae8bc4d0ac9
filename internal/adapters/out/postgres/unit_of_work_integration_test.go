package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	postgres_adapter "orderledger/internal/adapters/out/postgres"
	"orderledger/internal/adapters/out/postgres/incidentrepo"
	"orderledger/internal/core/domain/model/incident"
	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/core/domain/model/order"
	"orderledger/internal/core/ports"
	"orderledger/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// recordingPublisher keeps every published event and fails while err is set.
type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.OrderEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event ports.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) published() []ports.OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ports.OrderEvent(nil), p.events...)
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
	p.err = nil
}

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	publisher *recordingPublisher
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.AutoMigrate(db))

	suite.publisher = &recordingPublisher{}
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db, suite.publisher, nil)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items, integrity_incidents").Error
	suite.Require().NoError(err)
	suite.publisher.reset()
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesSeparateInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.IncidentRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "a second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsOrderAndPublishesEvents() {
	ctx := suite.T().Context()
	o := newOrder(suite)
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	inTx, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(inTx.IsEqual(o))
	suite.Empty(suite.publisher.published(), "nothing leaves before commit")

	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(o))

	published := suite.publisher.published()
	suite.Require().Len(published, 1)
	suite.Equal(ports.OrderCreated, published[0].Type)
	suite.True(published[0].OrderID.IsEqual(o.ID()))
	suite.Empty(o.Events())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PublishFailureDoesNotFailCommit() {
	ctx := suite.T().Context()
	o := newOrder(suite)
	suite.publisher.err = errors.New("broker down")
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Empty(o.Events())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsOrderAndIncident() {
	ctx := suite.T().Context()
	o := newOrder(suite)
	inc, err := incident.NewIncident(
		kernel.NewUUID(), o.ID(), "p-1", nil, nil, errors.New("boom"), time.Now(),
	)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.IncidentRepository().Add(ctx, inc))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Empty(suite.publisher.published())

	open, err := incidentrepo.NewGormIncidentRepository(suite.db).ListOpen(ctx)
	suite.Require().NoError(err)
	suite.Empty(open)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestReadBeforeBegin_WriteInsideTransaction() {
	ctx := suite.T().Context()
	o := newOrder(suite)
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	uow := suite.factory.Create()
	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.AssignParcel("p-9", time.Now()))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Commit(ctx))

	reloaded, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(reloaded.ParcelID())
	suite.Equal("p-9", *reloaded.ParcelID())
	suite.Equal(int64(2), reloaded.Version())

	published := suite.publisher.published()
	suite.Require().Len(published, 1, "only the parcel assignment is published, not the unrelated creation")
	suite.Equal(ports.OrderParcelAssigned, published[0].Type)
}

func newOrder(suite *UnitOfWorkIntegrationTestSuite) *order.Order {
	item, err := order.NewLineItem(kernel.NewUUID(), "Kettle", 2, decimal.NewFromInt(300), "")
	suite.Require().NoError(err)
	addr, err := order.NewAddress("1 Main St", "Pune", "", "", "411001", "IN")
	suite.Require().NoError(err)
	prices, err := order.NewPrices(decimal.NewFromInt(600), decimal.Zero, decimal.NewFromInt(108), decimal.NewFromInt(708))
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), []order.LineItem{item}, addr, "Razorpay", prices, time.Now())
	suite.Require().NoError(err)
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
