package rabbitmq_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"orderledger/internal/adapters/out/rabbitmq"
	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	return m.Called(name, kind, durable, autoDelete, internal, noWait, args).Error(0)
}

func (m *MockChannel) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp.Publishing,
) error {
	return m.Called(ctx, exchange, key, mandatory, immediate, msg).Error(0)
}

func TestNewPublisher_DeclaresTopicExchange(t *testing.T) {
	ch := new(MockChannel)
	ch.On("ExchangeDeclare", "orders", amqp.ExchangeTopic, true, false, false, false, amqp.Table(nil)).Return(nil).Once()

	_, err := rabbitmq.NewPublisher(ch, "orders")

	require.NoError(t, err)
	ch.AssertExpectations(t)
}

func TestNewPublisher_DeclareFails(t *testing.T) {
	ch := new(MockChannel)
	ch.On("ExchangeDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(errors.New("channel closed")).Once()

	_, err := rabbitmq.NewPublisher(ch, "orders")

	require.Error(t, err)
}

func TestPublish_RoutesByEventType(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	at := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	ch := new(MockChannel)
	ch.On("ExchangeDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ch.On("PublishWithContext", ctx, "orders", "order.paid", false, false,
		mock.MatchedBy(func(msg amqp.Publishing) bool {
			var body map[string]any
			if json.Unmarshal(msg.Body, &body) != nil {
				return false
			}
			return msg.ContentType == "application/json" &&
				msg.DeliveryMode == amqp.Persistent &&
				body["type"] == "order.paid" &&
				body["orderId"] == orderID.String() &&
				body["occurredAt"] == "2026-05-04T10:00:00Z"
		})).Return(nil).Once()

	publisher, err := rabbitmq.NewPublisher(ch, "orders")
	require.NoError(t, err)

	err = publisher.Publish(ctx, ports.OrderEvent{Type: ports.OrderPaid, OrderID: orderID, OccurredAt: at})

	require.NoError(t, err)
	ch.AssertExpectations(t)
}

func TestPublish_PropagatesChannelError(t *testing.T) {
	ch := new(MockChannel)
	ch.On("ExchangeDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(amqp.ErrClosed)

	publisher, err := rabbitmq.NewPublisher(ch, "orders")
	require.NoError(t, err)

	err = publisher.Publish(t.Context(), ports.OrderEvent{Type: ports.OrderCreated, OrderID: kernel.NewUUID(), OccurredAt: time.Now()})

	assert.ErrorIs(t, err, amqp.ErrClosed)
}
