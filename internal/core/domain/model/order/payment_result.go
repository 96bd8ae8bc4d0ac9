package order

// PaymentStatusCompleted is recorded for payments verified against the gateway signature.
const PaymentStatusCompleted = "completed"

// PaymentResult is what the ledger keeps about the payment that settled an order.
// Gateway fields are empty for payments reported through the processor callback.
type PaymentResult struct {
	GatewayOrderID   string
	GatewayPaymentID string
	GatewaySignature string
	Status           string
	UpdateTime       string
	EmailAddress     string
}
