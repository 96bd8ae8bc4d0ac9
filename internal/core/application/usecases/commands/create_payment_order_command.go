package commands

import (
	"errors"

	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/pkg/guard"
)

var ErrCreatePaymentOrderCommandIsNotConstructed = errors.New(
	"CreatePaymentOrderCommand must be created via NewCreatePaymentOrderCommand constructor",
)

// CreatePaymentOrderCommand asks the gateway to open a payment order for the full
// total of a ledger order.
type CreatePaymentOrderCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreatePaymentOrderCommand creates a command for the order with the given id.
func NewCreatePaymentOrderCommand(orderID kernel.UUID) (CreatePaymentOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreatePaymentOrderCommand{}, err
	}
	return CreatePaymentOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreatePaymentOrderCommandIsNotConstructed if validation fails.
func (c CreatePaymentOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentOrderCommandIsNotConstructed)
}

// OrderID returns the order to collect payment for.
func (c CreatePaymentOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
