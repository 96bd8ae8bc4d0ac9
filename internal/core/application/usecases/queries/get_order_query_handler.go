package queries

import (
	"context"
	"log/slog"

	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/core/domain/model/order"
	"orderledger/internal/core/ports"
)

// OrderReader is the read half of ports.OrderRepository.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	List(ctx context.Context) ([]*order.Order, error)
	ListAwaitingDispatch(ctx context.Context) ([]*order.Order, error)
}

// GetOrderQueryHandler reads the order and, for dispatched orders, its parcel.
type GetOrderQueryHandler struct {
	orders   OrderReader
	tracking ports.TrackingClient
	logger   *slog.Logger
}

// NewGetOrderQueryHandler creates a handler. A nil logger falls back to slog.Default.
func NewGetOrderQueryHandler(orders OrderReader, tracking ports.TrackingClient, logger *slog.Logger) GetOrderQueryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return GetOrderQueryHandler{
		orders:   orders,
		tracking: tracking,
		logger:   logger.With("component", "get-order"),
	}
}

// Handle returns errs.ErrObjectNotFound for an unknown order. A failing tracking service
// does not fail the query; the parcel is left out and the failure is logged.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp := GetOrderQueryResponse{Order: o}

	parcelID := o.ParcelID()
	if parcelID == nil || h.tracking == nil {
		return resp, nil
	}

	p, err := h.tracking.GetParcel(ctx, *parcelID)
	if err != nil {
		h.logger.WarnContext(ctx, "parcel fetch failed",
			"order_id", o.ID().String(),
			"parcel_id", *parcelID,
			"error", err,
		)
		return resp, nil
	}

	resp.Parcel = p
	return resp, nil
}
