package queries

import (
	"errors"

	"orderledger/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery or NewListOrdersAwaitingDispatchQuery constructor",
	)
)

// ListOrdersQuery lists orders. With awaitingDispatch set only orders without a parcel
// are returned, oldest first; otherwise all orders, newest first.
type ListOrdersQuery struct {
	awaitingDispatch bool

	guard guard.ConstructorGuard
}

// NewListOrdersQuery lists every order, newest first.
func NewListOrdersQuery() ListOrdersQuery {
	return ListOrdersQuery{guard: guard.NewConstructorGuard()}
}

// NewListOrdersAwaitingDispatchQuery lists orders without a parcel, oldest first.
func NewListOrdersAwaitingDispatchQuery() ListOrdersQuery {
	return ListOrdersQuery{awaitingDispatch: true, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through its constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// AwaitingDispatch reports whether only orders without a parcel are wanted.
func (q ListOrdersQuery) AwaitingDispatch() bool {
	return q.awaitingDispatch
}
