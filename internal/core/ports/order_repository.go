// Package ports declares what the order ledger core needs from the outside world:
// persistence, the tracking service, the payment gateway, the product catalog and an
// event sink. Adapters under internal/adapters implement these interfaces.
package ports

import (
	"context"

	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/core/domain/model/order"
	"orderledger/internal/pkg/errs"
)

// ErrVersionConflict is returned by OrderRepository.Update when the stored order changed
// after it was loaded.
var ErrVersionConflict = errs.NewConflictError("order was modified concurrently")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the mutable part of the order (address, delivery state, parcel link)
	// only if the stored version still equals aggregate.Version(), then advances the
	// version. Returns ErrVersionConflict otherwise.
	Update(ctx context.Context, aggregate *order.Order) error

	// MarkPaid atomically records the payment fields if and only if the stored order is
	// still unpaid. Returns order.ErrAlreadyPaid when another writer paid it first.
	MarkPaid(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its line items.
	// Returns errs.ErrObjectNotFound when no order has that id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// List returns every order, newest first.
	List(ctx context.Context) ([]*order.Order, error)

	// ListAwaitingDispatch returns orders that have no parcel yet, oldest first.
	ListAwaitingDispatch(ctx context.Context) ([]*order.Order, error)
}
