package commands

import (
	"context"
	"time"

	"orderledger/internal/core/domain/model/order"
	"orderledger/internal/core/domain/services"
)

// VerifyPaymentCommandHandler checks the gateway signature and marks the order paid.
//
// The signature is checked before the order is loaded. The write is a compare-and-set on isPaid: of two
// concurrent verifications for one order exactly one succeeds and the other gets
// order.ErrAlreadyPaid.
type VerifyPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	signer     services.PaymentSigner
}

// NewVerifyPaymentCommandHandler creates a handler that verifies with signer.
func NewVerifyPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	signer services.PaymentSigner,
) VerifyPaymentCommandHandler {
	return VerifyPaymentCommandHandler{
		uowFactory: uowFactory,
		signer:     signer,
	}
}

// Handle returns services.ErrSignatureMismatch before touching storage when the
// signature is wrong, order.ErrAlreadyPaid when the order was paid first by another
// request, and the paid order otherwise.
func (h VerifyPaymentCommandHandler) Handle(ctx context.Context, cmd VerifyPaymentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.signer.Verify(cmd.GatewayOrderID(), cmd.GatewayPaymentID(), cmd.Signature()); err != nil {
		return nil, err
	}

	return markPaid(ctx, h.uowFactory, cmd.OrderID(), order.PaymentResult{
		GatewayOrderID:   cmd.GatewayOrderID(),
		GatewayPaymentID: cmd.GatewayPaymentID(),
		GatewaySignature: cmd.Signature(),
		Status:           order.PaymentStatusCompleted,
		UpdateTime:       time.Now().UTC().Format(time.RFC3339),
	})
}
