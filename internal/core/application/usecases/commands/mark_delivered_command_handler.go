package commands

import (
	"context"
	"time"

	"orderledger/internal/core/domain/model/order"
)

// MarkDeliveredCommandHandler records delivery under the configured DeliveryPolicy.
// Delivering an already delivered order returns it unchanged without a write.
type MarkDeliveredCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     order.DeliveryPolicy
}

// NewMarkDeliveredCommandHandler creates a handler enforcing policy.
func NewMarkDeliveredCommandHandler(uowFactory OrderUoWFactory, policy order.DeliveryPolicy) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle marks the order delivered and persists it. It returns order.ErrNotPaid when
// the policy requires payment first.
func (h MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	changed, err := o.MarkDelivered(time.Now(), h.policy)
	if err != nil {
		return nil, err
	}
	if !changed {
		return o, nil
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
