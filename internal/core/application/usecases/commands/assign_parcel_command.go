package commands

import (
	"errors"
	"strings"

	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/core/domain/model/order"
	"orderledger/internal/pkg/guard"
)

// ErrAssignParcelCommandIsNotConstructed is returned by Validate on a zero AssignParcelCommand.
var ErrAssignParcelCommandIsNotConstructed = errors.New(
	"AssignParcelCommand must be created via NewAssignParcelCommand constructor",
)

// AssignParcelCommand links an order to the parcel the dispatch process created for it.
type AssignParcelCommand struct {
	orderID  kernel.UUID
	parcelID string

	guard guard.ConstructorGuard
}

// NewAssignParcelCommand returns order.ErrParcelIDRequired for a blank parcel id.
func NewAssignParcelCommand(orderID kernel.UUID, parcelID string) (AssignParcelCommand, error) {
	var problems []error
	if err := orderID.Validate(); err != nil {
		problems = append(problems, err)
	}
	parcelID = strings.TrimSpace(parcelID)
	if parcelID == "" {
		problems = append(problems, order.ErrParcelIDRequired)
	}
	if err := errors.Join(problems...); err != nil {
		return AssignParcelCommand{}, err
	}

	return AssignParcelCommand{orderID: orderID, parcelID: parcelID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignParcelCommandIsNotConstructed if validation fails.
func (c AssignParcelCommand) Validate() error {
	return c.guard.Validate(ErrAssignParcelCommandIsNotConstructed)
}

// OrderID returns the order to link.
func (c AssignParcelCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ParcelID returns the trimmed tracking-service parcel id.
func (c AssignParcelCommand) ParcelID() string {
	return c.parcelID
}
