package commands

import (
	"context"
	"fmt"

	"orderledger/internal/core/domain/model/order"
	"orderledger/internal/core/ports"
	"orderledger/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ReceiptPrefix starts every gateway receipt. The rest is the order id without dashes,
// which keeps receipts within the gateway's 40 character limit.
const ReceiptPrefix = "rcpt_"

// ErrAmountExceedsGatewayMax rejects totals above PaymentSettings.MaxAmountMinor.
var ErrAmountExceedsGatewayMax = errs.NewValueIsInvalidError("amount exceeds the payment gateway maximum")

// PaymentSettings configures gateway orders.
type PaymentSettings struct {
	Currency       string
	MaxAmountMinor int64
}

// CreatePaymentOrderResult is what the client needs to open the gateway checkout.
type CreatePaymentOrderResult struct {
	GatewayOrderID string
	AmountMinor    int64
	Currency       string
	OrderID        string
}

// CreatePaymentOrderCommandHandler opens a gateway payment order. It writes nothing to
// the ledger.
//
// Example:
//
//	handler := NewCreatePaymentOrderCommandHandler(uowFactory, gateway, PaymentSettings{Currency: "INR", MaxAmountMinor: 10_000_000})
//	cmd, _ := NewCreatePaymentOrderCommand(orderID)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrAlreadyPaid):
//	case errors.Is(err, ErrAmountExceedsGatewayMax):
//	}
type CreatePaymentOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
	settings   PaymentSettings
}

// NewCreatePaymentOrderCommandHandler creates a handler reading orders through
// uowFactory and creating gateway orders through gateway.
func NewCreatePaymentOrderCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.PaymentGateway,
	settings PaymentSettings,
) CreatePaymentOrderCommandHandler {
	return CreatePaymentOrderCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		settings:   settings,
	}
}

// Handle converts the order total to minor units, checks it against the gateway
// maximum and creates the gateway order with a receipt derived from the order id.
func (h CreatePaymentOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreatePaymentOrderCommand,
) (CreatePaymentOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreatePaymentOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return CreatePaymentOrderResult{}, err
	}
	if o.IsPaid() {
		return CreatePaymentOrderResult{}, order.ErrAlreadyPaid
	}

	amount := AmountInMinorUnits(o.Prices().Total())
	if h.settings.MaxAmountMinor > 0 && amount > h.settings.MaxAmountMinor {
		return CreatePaymentOrderResult{}, fmt.Errorf("%w: %d > %d",
			ErrAmountExceedsGatewayMax, amount, h.settings.MaxAmountMinor)
	}

	gatewayOrder, err := h.gateway.CreateOrder(ctx, amount, h.settings.Currency, ReceiptPrefix+o.ID().Compact())
	if err != nil {
		return CreatePaymentOrderResult{}, errs.NewExternalDependencyErrorWithCause("payment gateway", "create order", err)
	}

	return CreatePaymentOrderResult{
		GatewayOrderID: gatewayOrder.ID,
		AmountMinor:    gatewayOrder.AmountMinor,
		Currency:       gatewayOrder.Currency,
		OrderID:        o.ID().String(),
	}, nil
}

// AmountInMinorUnits converts a two-decimal amount to minor units, rounding half away
// from zero.
func AmountInMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
