package commands

import (
	"errors"
	"strings"

	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/core/domain/model/order"
	"orderledger/internal/pkg/guard"
)

var ErrMarkPaidFromCallbackCommandIsNotConstructed = errors.New(
	"MarkPaidFromCallbackCommand must be created via NewMarkPaidFromCallbackCommand constructor",
)

// MarkPaidFromCallbackCommand records a payment reported by a payment processor
// callback. Status defaults to "completed"; UpdateTime is filled in by the handler
// when empty. Processors do not always send a payment id, so an empty one is kept as
// an empty GatewayPaymentID.
type MarkPaidFromCallbackCommand struct {
	orderID      kernel.UUID
	paymentID    string
	status       string
	updateTime   string
	emailAddress string

	guard guard.ConstructorGuard
}

// NewMarkPaidFromCallbackCommand validates the order id. Only orderID is required.
func NewMarkPaidFromCallbackCommand(
	orderID kernel.UUID,
	paymentID, status, updateTime, emailAddress string,
) (MarkPaidFromCallbackCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkPaidFromCallbackCommand{}, err
	}

	if strings.TrimSpace(status) == "" {
		status = order.PaymentStatusCompleted
	}

	return MarkPaidFromCallbackCommand{
		orderID:      orderID,
		paymentID:    strings.TrimSpace(paymentID),
		status:       status,
		updateTime:   updateTime,
		emailAddress: emailAddress,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command was built by NewMarkPaidFromCallbackCommand.
func (c MarkPaidFromCallbackCommand) Validate() error {
	return c.guard.Validate(ErrMarkPaidFromCallbackCommandIsNotConstructed)
}

// OrderID is the order being paid.
func (c MarkPaidFromCallbackCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PaymentID is the processor's payment id, possibly empty.
func (c MarkPaidFromCallbackCommand) PaymentID() string {
	return c.paymentID
}

// Status is the processor's payment status, "completed" when it sent none.
func (c MarkPaidFromCallbackCommand) Status() string {
	return c.status
}

// UpdateTime is the processor's timestamp, verbatim.
func (c MarkPaidFromCallbackCommand) UpdateTime() string {
	return c.updateTime
}

// EmailAddress is the payer's email, when the processor sent one.
func (c MarkPaidFromCallbackCommand) EmailAddress() string {
	return c.emailAddress
}
