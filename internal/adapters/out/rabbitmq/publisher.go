// Package rabbitmq publishes order events to a RabbitMQ topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"orderledger/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the part of *amqp.Channel the publisher uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type eventMessage struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher implements ports.EventPublisher. Each event is routed by its type, e.g.
// "order.paid".
type Publisher struct {
	mu       sync.Mutex
	ch       Channel
	exchange string
}

// NewPublisher declares exchange as a durable topic exchange and returns a publisher on it.
func NewPublisher(ch Channel, exchange string) (*Publisher, error) {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, err
	}
	return &Publisher{ch: ch, exchange: exchange}, nil
}

// Publish sends event as a persistent JSON message. The message id combines the order
// id and the event type.
func (p *Publisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	body, err := json.Marshal(eventMessage{
		Type:       string(event.Type),
		OrderID:    event.OrderID.String(),
		OccurredAt: event.OccurredAt.UTC(),
	})
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ch.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.OrderID.String() + ":" + string(event.Type),
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
}

// Connection bundles a dialed connection with the channel the publisher writes to.
type Connection struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial opens a connection and a channel on url.
func Dial(url string) (*Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Connection{conn: conn, ch: ch}, nil
}

// Channel returns the channel to build a Publisher on.
func (c *Connection) Channel() *amqp.Channel {
	return c.ch
}

// Close closes the channel and then the connection.
func (c *Connection) Close() error {
	_ = c.ch.Close()
	return c.conn.Close()
}

var _ ports.EventPublisher = (*Publisher)(nil)
