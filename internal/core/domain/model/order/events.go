package order

import (
	"time"

	"orderledger/internal/core/domain/model/kernel"
)

// EventType names a change to an order.
type EventType string

const (
	EventCreated        EventType = "order.created"
	EventPaid           EventType = "order.paid"
	EventDelivered      EventType = "order.delivered"
	EventParcelAssigned EventType = "order.parcel_assigned"
	EventAddressChanged EventType = "order.address_changed"
)

// Event is raised by an Order state transition. The unit of work publishes the events of
// every order it wrote once its transaction has committed.
type Event struct {
	Type       EventType
	OrderID    kernel.UUID
	OccurredAt time.Time
}

// Events returns the events raised since the order was created or restored, oldest first.
func (o *Order) Events() []Event {
	return append([]Event(nil), o.events...)
}

// ClearEvents drops the raised events. It is called once they have been published.
func (o *Order) ClearEvents() {
	o.events = nil
}

func (o *Order) raise(eventType EventType, at time.Time) {
	o.events = append(o.events, Event{Type: eventType, OrderID: o.id, OccurredAt: at.UTC()})
}
