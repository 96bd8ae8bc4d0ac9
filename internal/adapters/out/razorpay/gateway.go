// Package razorpay creates gateway orders with the Razorpay API.
package razorpay

import (
	"context"
	"fmt"
	"math"

	"orderledger/internal/core/ports"

	razorpaysdk "github.com/razorpay/razorpay-go"
)

// OrderCreator is the order resource of the Razorpay SDK client.
type OrderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// Gateway implements ports.PaymentGateway.
type Gateway struct {
	orders OrderCreator
}

// NewGateway builds a gateway from API credentials.
func NewGateway(keyID, keySecret string) *Gateway {
	client := razorpaysdk.NewClient(keyID, keySecret)
	return &Gateway{orders: client.Order}
}

// NewGatewayWithOrders builds a gateway on an existing order resource.
func NewGatewayWithOrders(orders OrderCreator) *Gateway {
	return &Gateway{orders: orders}
}

// CreateOrder registers an order of amountMinor (paise for INR) with the gateway, with
// automatic capture of the authorized payment. The SDK does not take a context, so a cancelled ctx abandons the call without waiting.
func (g *Gateway) CreateOrder(
	ctx context.Context,
	amountMinor int64,
	currency, receipt string,
) (ports.GatewayOrder, error) {
	type result struct {
		body map[string]interface{}
		err  error
	}

	done := make(chan result, 1)
	go func() {
		body, err := g.orders.Create(map[string]interface{}{
			"amount":          amountMinor,
			"currency":        currency,
			"receipt":         receipt,
			"payment_capture": 1,
		}, nil)
		done <- result{body: body, err: err}
	}()

	var r result
	select {
	case <-ctx.Done():
		return ports.GatewayOrder{}, ctx.Err()
	case r = <-done:
	}
	if r.err != nil {
		return ports.GatewayOrder{}, r.err
	}

	return decodeOrder(r.body, amountMinor, currency, receipt)
}

func decodeOrder(body map[string]interface{}, amountMinor int64, currency, receipt string) (ports.GatewayOrder, error) {
	id, _ := body["id"].(string)
	if id == "" {
		return ports.GatewayOrder{}, fmt.Errorf("razorpay: order response without id: %v", body)
	}

	out := ports.GatewayOrder{
		ID:          id,
		AmountMinor: amountMinor,
		Currency:    currency,
		Receipt:     receipt,
	}
	if amount, ok := body["amount"].(float64); ok {
		out.AmountMinor = int64(math.Round(amount))
	}
	if c, ok := body["currency"].(string); ok && c != "" {
		out.Currency = c
	}
	if r, ok := body["receipt"].(string); ok && r != "" {
		out.Receipt = r
	}
	return out, nil
}

var _ ports.PaymentGateway = (*Gateway)(nil)
