// Package postgres provides the GORM-based Unit of Work shared by every command handler.
//
// A unit of work hands out repositories bound to its transaction once Begin was called,
// and to the plain connection before that. The address update relies on this: it reads
// the order outside of a transaction, talks to the tracking service, and only then opens
// the short transaction that writes the order.
//
//	uow := factory.Create()
//	o, err := uow.OrderRepository().Get(ctx, id) // no transaction yet
//
//	if err = uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err = uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Every aggregate a repository writes is tracked by the unit of work. After Commit
// succeeds the events raised by the tracked orders are handed to the EventPublisher;
// Rollback discards them.
//
// Each UnitOfWork instance must stay on one goroutine.
package postgres

import (
	"context"
	"log/slog"

	"orderledger/internal/adapters/out/postgres/incidentrepo"
	"orderledger/internal/adapters/out/postgres/orderrepo"
	"orderledger/internal/adapters/out/postgres/productrepo"
	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/core/domain/model/order"
	"orderledger/internal/core/ports"

	"gorm.io/gorm"
)

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// eventSource is implemented by aggregates that raise events, such as *order.Order.
type eventSource interface {
	Events() []order.Event
	ClearEvents()
}

// GormUnitOfWorkFactory creates UnitOfWork instances on top of one connection pool.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory builds the factory. publisher may be nil, in which case
// raised events are dropped at commit.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With("component", "unit-of-work"),
	}
}

// Create returns a fresh unit of work with no transaction open.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork implements ports.UnitOfWork with a GORM transaction.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.EventPublisher
	logger            *slog.Logger
	trackedAggregates []trackedAggregate
}

// Begin opens a transaction. Calling it again while one is open does nothing.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is open. Once the
// transaction is committed, the events of the tracked aggregates are published.
// Publishing is best effort: a failure is logged and does not fail the commit.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.discardTracked()
		return err
	}

	uow.publishTracked(context.WithoutCancel(ctx))
	return nil
}

// Rollback returns gorm.ErrInvalidTransaction when no transaction is open, which is the
// normal case for the deferred rollback after a successful commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.discardTracked()
	return err
}

// OrderRepository returns a repository on the active transaction, or on the plain
// connection before Begin.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// IncidentRepository returns a repository on the active transaction, or on the plain
// connection before Begin.
func (uow *GormUnitOfWork) IncidentRepository() ports.IncidentRepository {
	return incidentrepo.NewGormIncidentRepository(uow.conn())
}

// TrackAggregate is called by repositories for every aggregate they wrote.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) publishTracked(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)

	for _, t := range tracked {
		source, ok := t.Aggregate.(eventSource)
		if !ok {
			continue
		}
		events := source.Events()
		source.ClearEvents()
		if uow.publisher == nil {
			continue
		}

		for _, event := range events {
			if err := uow.publisher.Publish(ctx, event); err != nil {
				uow.logger.WarnContext(ctx, "failed to publish order event",
					"event", string(event.Type),
					"order_id", t.ID.String(),
					"error", err,
				)
			}
		}
	}
}

func (uow *GormUnitOfWork) discardTracked() {
	uow.trackedAggregates = uow.trackedAggregates[:0]
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// AutoMigrate creates or updates every table the ledger owns, plus the products table
// it reads from.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&incidentrepo.IncidentDTO{},
		&productrepo.ProductDTO{},
	)
}
