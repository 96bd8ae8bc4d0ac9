package commands

import (
	"context"
	"time"

	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/core/domain/model/order"
)

// markPaid is shared by both payment paths: load, transition, conditional write, commit.
// The order.paid event leaves with the commit.
func markPaid(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	result order.PaymentResult,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = o.MarkPaid(result, time.Now()); err != nil {
		return nil, err
	}

	if err = repo.MarkPaid(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
