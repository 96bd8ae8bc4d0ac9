package commands

import (
	"context"
	"time"

	"orderledger/internal/core/domain/model/order"
)

// AssignParcelCommandHandler links an order to its parcel in the tracking service.
// A later assignment replaces the earlier link.
type AssignParcelCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAssignParcelCommandHandler creates a handler writing through uowFactory.
func NewAssignParcelCommandHandler(uowFactory OrderUoWFactory) AssignParcelCommandHandler {
	return AssignParcelCommandHandler{uowFactory: uowFactory}
}

// Handle stores the parcel link and returns the updated order.
func (h AssignParcelCommandHandler) Handle(ctx context.Context, cmd AssignParcelCommand) (*order.Order, error) {
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

	if err = o.AssignParcel(cmd.ParcelID(), time.Now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
