// Package commands contains the write operations of the order ledger.
// Every command is validated on construction; its handler loads the aggregate, applies
// the domain transition and persists it through a unit of work. The aggregate raises
// its events and the unit of work publishes them only after the commit succeeded.
package commands

import (
	"context"

	"orderledger/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository of the current transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// IncidentRepoFactory provides access to the incident repository of the current transaction.
	IncidentRepoFactory interface {
		IncidentRepository() ports.IncidentRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW spans orders and integrity incidents. The address saga needs both.
	//
	// Example:
	//   uow := factory.Create()
	//   order, err := uow.OrderRepository().Get(ctx, id) // outside of a transaction
	//   ...
	//   err = uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//   err = uow.OrderRepository().Update(ctx, order)
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		IncidentRepoFactory
	}

	// UoWFactory creates new unit of work instances for the saga.
	UoWFactory interface {
		Create() UoW
	}
)
