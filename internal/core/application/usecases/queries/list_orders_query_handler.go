package queries

import (
	"context"

	"orderledger/internal/core/domain/model/order"
)

// ListOrdersQueryHandler serves both order listings from an OrderReader.
type ListOrdersQueryHandler struct {
	orders OrderReader
}

// NewListOrdersQueryHandler creates a handler over orders.
func NewListOrdersQueryHandler(orders OrderReader) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders}
}

// Handle returns an empty slice, not an error, when nothing matches.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if query.AwaitingDispatch() {
		return h.orders.ListAwaitingDispatch(ctx)
	}
	return h.orders.List(ctx)
}
