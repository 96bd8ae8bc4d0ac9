package commands

import (
	"errors"

	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/core/domain/model/order"
	"orderledger/internal/pkg/guard"
)

var ErrUpdateShippingAddressCommandIsNotConstructed = errors.New(
	"UpdateShippingAddressCommand must be created via NewUpdateShippingAddressCommand constructor",
)

// UpdateShippingAddressCommand carries the address fields to change. Fields left nil in
// the patch keep their current value on both the order and the parcel.
type UpdateShippingAddressCommand struct {
	orderID kernel.UUID
	patch   order.AddressPatch

	guard guard.ConstructorGuard
}

// NewUpdateShippingAddressCommand returns order.ErrEmptyAddressPatch for a patch without
// fields. The stored patch is normalized, so the order and the parcel receive the same
// trimmed values.
func NewUpdateShippingAddressCommand(orderID kernel.UUID, patch order.AddressPatch) (UpdateShippingAddressCommand, error) {
	var problems []error
	if err := orderID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if patch.IsEmpty() {
		problems = append(problems, order.ErrEmptyAddressPatch)
	}
	if err := errors.Join(problems...); err != nil {
		return UpdateShippingAddressCommand{}, err
	}

	return UpdateShippingAddressCommand{orderID: orderID, patch: patch.Normalized(), guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateShippingAddressCommandIsNotConstructed if validation fails.
func (c UpdateShippingAddressCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShippingAddressCommandIsNotConstructed)
}

// OrderID returns the order whose address changes.
func (c UpdateShippingAddressCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Patch returns the normalized address patch.
func (c UpdateShippingAddressCommand) Patch() order.AddressPatch {
	return c.patch
}
