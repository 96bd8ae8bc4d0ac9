package commands

import (
	"errors"
	"strings"

	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/pkg/errs"
	"orderledger/internal/pkg/guard"
)

var ErrVerifyPaymentCommandIsNotConstructed = errors.New(
	"VerifyPaymentCommand must be created via NewVerifyPaymentCommand constructor",
)

// VerifyPaymentCommand carries the identifiers and signature the gateway checkout
// returned to the client.
type VerifyPaymentCommand struct {
	orderID          kernel.UUID
	gatewayOrderID   string
	gatewayPaymentID string
	signature        string

	guard guard.ConstructorGuard
}

// NewVerifyPaymentCommand requires all three gateway values and reports every missing
// one, named as the checkout form names it.
func NewVerifyPaymentCommand(
	orderID kernel.UUID,
	gatewayOrderID, gatewayPaymentID, signature string,
) (VerifyPaymentCommand, error) {
	var problems []error
	if err := orderID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if strings.TrimSpace(gatewayOrderID) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("razorpay_order_id"))
	}
	if strings.TrimSpace(gatewayPaymentID) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("razorpay_payment_id"))
	}
	if strings.TrimSpace(signature) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("razorpay_signature"))
	}
	if err := errors.Join(problems...); err != nil {
		return VerifyPaymentCommand{}, err
	}

	return VerifyPaymentCommand{
		orderID:          orderID,
		gatewayOrderID:   gatewayOrderID,
		gatewayPaymentID: gatewayPaymentID,
		signature:        signature,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrVerifyPaymentCommandIsNotConstructed if validation fails.
func (c VerifyPaymentCommand) Validate() error {
	return c.guard.Validate(ErrVerifyPaymentCommandIsNotConstructed)
}

// OrderID returns the ledger order being paid.
func (c VerifyPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// GatewayOrderID returns the gateway order created for the payment.
func (c VerifyPaymentCommand) GatewayOrderID() string {
	return c.gatewayOrderID
}

// GatewayPaymentID returns the gateway payment to record.
func (c VerifyPaymentCommand) GatewayPaymentID() string {
	return c.gatewayPaymentID
}

// Signature returns the hex HMAC the gateway produced.
func (c VerifyPaymentCommand) Signature() string {
	return c.signature
}
