package commands

import (
	"errors"
	"fmt"
	"strings"

	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/core/domain/model/order"
	"orderledger/internal/pkg/errs"
	"orderledger/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderItem is one requested product. Name and Image override the catalog values
// when set; the price always comes from the catalog.
type CreateOrderItem struct {
	ProductID kernel.UUID
	Qty       int
	Name      string
	Image     string
}

// CreateOrderCommand represents a request to place a new order.
//
// Example:
//
//	address, _ := order.NewAddress("12 MG Road", "Bengaluru", "", "", "560001", "IN")
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), []CreateOrderItem{{ProductID: id, Qty: 2}}, address, "Razorpay")
//	if err != nil {
//	    return err
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct {
	orderID         kernel.UUID
	items           []CreateOrderItem
	shippingAddress order.Address
	paymentMethod   string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request. Items must not be empty and every
// quantity must be at least 1.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	items []CreateOrderItem,
	shippingAddress order.Address,
	paymentMethod string,
) (CreateOrderCommand, error) {
	var problems []error
	if err := orderID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if len(items) == 0 {
		problems = append(problems, order.ErrNoItems)
	}
	for i, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("orderItems[%d]: %w", i, err))
		}
		if item.Qty < 1 {
			problems = append(problems, errs.NewValueIsOutOfRangeError(
				fmt.Sprintf("orderItems[%d].qty", i), item.Qty, 1, "unbounded"))
		}
	}
	if err := shippingAddress.Validate(); err != nil {
		problems = append(problems, err)
	}
	if strings.TrimSpace(paymentMethod) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("paymentMethod"))
	}
	if err := errors.Join(problems...); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		orderID:         orderID,
		items:           append([]CreateOrderItem(nil), items...),
		shippingAddress: shippingAddress,
		paymentMethod:   paymentMethod,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will get.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns a copy of the requested items.
func (c CreateOrderCommand) Items() []CreateOrderItem {
	return append([]CreateOrderItem(nil), c.items...)
}

// ShippingAddress returns the validated delivery address.
func (c CreateOrderCommand) ShippingAddress() order.Address {
	return c.shippingAddress
}

// PaymentMethod returns the payment method chosen at checkout.
func (c CreateOrderCommand) PaymentMethod() string {
	return c.paymentMethod
}
