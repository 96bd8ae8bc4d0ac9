package ports

import "context"

// GatewayOrder is the payment order opened at the gateway for a ledger order.
type GatewayOrder struct {
	// ID is the gateway's order id, used later to verify the payment signature.
	ID string
	// AmountMinor is the amount in the currency's minor unit, paise for INR.
	AmountMinor int64
	Currency    string
	Receipt     string
}

// PaymentGateway opens payment orders that the client then settles with the gateway.
type PaymentGateway interface {
	// CreateOrder opens a gateway order for amountMinor, set to capture the payment
	// automatically. receipt must be unique per ledger order.
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (GatewayOrder, error)
}
