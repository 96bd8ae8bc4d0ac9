package commands

import (
	"context"
	"time"

	"orderledger/internal/core/domain/model/order"
)

// MarkPaidFromCallbackCommandHandler applies the same "only if not already paid" guard
// as VerifyPaymentCommandHandler, without a signature check.
type MarkPaidFromCallbackCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkPaidFromCallbackCommandHandler creates a handler writing through uowFactory.
func NewMarkPaidFromCallbackCommandHandler(uowFactory OrderUoWFactory) MarkPaidFromCallbackCommandHandler {
	return MarkPaidFromCallbackCommandHandler{uowFactory: uowFactory}
}

// Handle records the payment, stamping the current time when the callback sent none.
func (h MarkPaidFromCallbackCommandHandler) Handle(
	ctx context.Context,
	cmd MarkPaidFromCallbackCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	updateTime := cmd.UpdateTime()
	if updateTime == "" {
		updateTime = time.Now().UTC().Format(time.RFC3339)
	}

	return markPaid(ctx, h.uowFactory, cmd.OrderID(), order.PaymentResult{
		GatewayPaymentID: cmd.PaymentID(),
		Status:           cmd.Status(),
		UpdateTime:       updateTime,
		EmailAddress:     cmd.EmailAddress(),
	})
}
