package ports

import (
	"context"

	"orderledger/internal/core/domain/model/order"
)

// OrderEventType names a committed change to an order.
type OrderEventType = order.EventType

// Event types, as published in the routing key and the message body.
const (
	OrderCreated        = order.EventCreated
	OrderPaid           = order.EventPaid
	OrderDelivered      = order.EventDelivered
	OrderParcelAssigned = order.EventParcelAssigned
	OrderAddressChanged = order.EventAddressChanged
)

// OrderEvent is published after the change it describes has been committed.
type OrderEvent = order.Event

// EventPublisher delivers order events on a best-effort basis. The unit of work calls
// it after commit; an error is logged and never undoes the change.
type EventPublisher interface {
	// Publish sends one event. Implementations must be safe for concurrent use.
	Publish(ctx context.Context, event OrderEvent) error
}
