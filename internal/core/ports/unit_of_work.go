package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command, so concurrent commands never
// share a transaction.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary.
// Repositories obtained before Begin run outside of any transaction.
//
// Aggregates written through its repositories are tracked. Their events are published
// once Commit succeeds and dropped on Rollback, so subscribers only ever see committed
// changes.
//
// Example:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and then publishes the events of every
	// tracked aggregate. A publish failure never fails Commit.
	// Returns error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction and drops tracked events.
	// After Commit it changes nothing, which lets callers defer it unconditionally.
	Rollback(ctx context.Context) error

	// OrderRepository is bound to the transaction active at the time of the call.
	OrderRepository() OrderRepository

	// IncidentRepository is bound to the transaction active at the time of the call.
	IncidentRepository() IncidentRepository
}
