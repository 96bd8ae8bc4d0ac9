package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orderledger/internal/core/domain/model/incident"
	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/core/domain/model/order"
	"orderledger/internal/core/domain/model/parcel"
	"orderledger/internal/core/ports"
	"orderledger/internal/pkg/errs"
	"orderledger/internal/pkg/keylock"
)

var (
	// ErrParcelFetchFailed means the parcel could not be read. The order was not modified.
	ErrParcelFetchFailed = errs.NewExternalDependencyError("tracking service", "fetch parcel")

	// ErrParcelUpdateFailed means the new address could not be written to the parcel.
	// The order was not modified.
	ErrParcelUpdateFailed = errs.NewExternalDependencyError("tracking service", "update parcel")

	// ErrOrderUpdateRolledBack is matched by every *OrderUpdateRolledBackError.
	ErrOrderUpdateRolledBack = errors.New("order update failed, parcel change rolled back")
)

// OrderUpdateRolledBackError reports that the parcel accepted the new address but the
// order could not be saved. RollbackFailed tells whether the compensating write that
// restores the parcel failed too; in that case the error also matches errs.ErrIntegrity.
type OrderUpdateRolledBackError struct {
	Cause          error
	RollbackFailed bool
	RollbackCause  error
}

// Error includes the rollback cause when compensation failed.
func (e *OrderUpdateRolledBackError) Error() string {
	if e.RollbackFailed {
		return fmt.Sprintf("%s: %v (rollback failed: %v)", ErrOrderUpdateRolledBack, e.Cause, e.RollbackCause)
	}
	return fmt.Sprintf("%s: %v", ErrOrderUpdateRolledBack, e.Cause)
}

// Unwrap exposes ErrOrderUpdateRolledBack, the order write error and, after a failed
// compensation, errs.ErrIntegrity.
func (e *OrderUpdateRolledBackError) Unwrap() []error {
	if e.RollbackFailed {
		return []error{ErrOrderUpdateRolledBack, errs.ErrIntegrity, e.Cause}
	}
	return []error{ErrOrderUpdateRolledBack, e.Cause}
}

// Outcomes reported to an AddressUpdateObserver.
// Outcomes reported to AddressUpdateObserver.
const (
	AddressOutcomeOrderOnly      = "order_only"
	AddressOutcomeBothUpdated    = "both_updated"
	AddressOutcomeFetchFailed    = "parcel_fetch_failed"
	AddressOutcomeUpdateFailed   = "parcel_update_failed"
	AddressOutcomeRolledBack     = "rolled_back"
	AddressOutcomeRollbackFailed = "rollback_failed"
)

// AddressUpdateObserver is notified of how each address update ended.
type AddressUpdateObserver interface {
	ObserveAddressUpdate(outcome string)
}

// UpdateShippingAddressResult is returned on success. Parcel is nil when the order has
// no parcel.
type UpdateShippingAddressResult struct {
	Order         *order.Order
	ParcelUpdated bool
	Parcel        *parcel.Parcel
}

// UpdateShippingAddressCommandHandler keeps the order and its parcel on the same address.
//
// For a dispatched order the parcel is written first and the order second. If the order
// write fails, one compensating write puts the parcel's previous address back. If that
// fails as well an integrity incident is stored and nothing is retried.
//
// Updates for the same order are serialised with a per-order lock, and the order write is
// conditional on the version that was read.
type UpdateShippingAddressCommandHandler struct {
	uowFactory UoWFactory
	tracking   ports.TrackingClient
	locks      *keylock.KeyLock
	observer   AddressUpdateObserver
	logger     *slog.Logger
}

// NewUpdateShippingAddressCommandHandler wires the saga. A nil locks gets a private
// KeyLock, a nil observer is skipped and a nil logger falls back to slog.Default.
func NewUpdateShippingAddressCommandHandler(
	uowFactory UoWFactory,
	tracking ports.TrackingClient,
	locks *keylock.KeyLock,
	observer AddressUpdateObserver,
	logger *slog.Logger,
) UpdateShippingAddressCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if locks == nil {
		locks = keylock.New()
	}
	return UpdateShippingAddressCommandHandler{
		uowFactory: uowFactory,
		tracking:   tracking,
		locks:      locks,
		observer:   observer,
		logger:     logger.With("component", "address-update"),
	}
}

// Handle runs the address update for one order.
//
// Returns:
//   - UpdateShippingAddressResult with the saved order, and the parcel when one exists
//   - ErrParcelFetchFailed or ErrParcelUpdateFailed when the tracking service fails;
//     nothing was written
//   - *OrderUpdateRolledBackError when the order write failed after the parcel changed
//
// Example:
//
//	city := "Mysuru"
//	cmd, _ := NewUpdateShippingAddressCommand(orderID, order.AddressPatch{City: &city})
//	result, err := handler.Handle(ctx, cmd)
//	var rolledBack *OrderUpdateRolledBackError
//	if errors.As(err, &rolledBack) && rolledBack.RollbackFailed {
//	    // An incident was recorded for an operator
//	}
func (h UpdateShippingAddressCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateShippingAddressCommand,
) (UpdateShippingAddressResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateShippingAddressResult{}, err
	}

	unlock, err := h.locks.Lock(ctx, cmd.OrderID().String())
	if err != nil {
		return UpdateShippingAddressResult{}, err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return UpdateShippingAddressResult{}, err
	}

	if _, err = o.ChangeShippingAddress(cmd.Patch(), time.Now()); err != nil {
		return UpdateShippingAddressResult{}, err
	}

	logger := h.logger.With("order_id", o.ID().String())

	parcelID := o.ParcelID()
	if parcelID == nil {
		if err = h.saveOrder(ctx, uow, o); err != nil {
			return UpdateShippingAddressResult{}, err
		}
		logger.InfoContext(ctx, "shipping address updated", "parcel_updated", false)
		h.observe(AddressOutcomeOrderOnly)
		return UpdateShippingAddressResult{Order: o}, nil
	}

	logger = logger.With("parcel_id", *parcelID)

	fetched, err := h.tracking.GetParcel(ctx, *parcelID)
	if err != nil {
		logger.WarnContext(ctx, "parcel fetch failed, order left unchanged", "error", err)
		h.observe(AddressOutcomeFetchFailed)
		return UpdateShippingAddressResult{}, fmt.Errorf("%w: %w", ErrParcelFetchFailed, err)
	}

	candidate, err := fetched.WithAddressPatch(cmd.Patch())
	if err != nil {
		return UpdateShippingAddressResult{}, err
	}
	inverse := fetched.Reverted()

	updated, err := h.tracking.UpdateParcel(ctx, candidate)
	if err != nil {
		logger.WarnContext(ctx, "parcel update failed, order left unchanged", "error", err)
		h.observe(AddressOutcomeUpdateFailed)
		return UpdateShippingAddressResult{}, fmt.Errorf("%w: %w", ErrParcelUpdateFailed, err)
	}

	if err = h.saveOrder(ctx, uow, o); err != nil {
		return UpdateShippingAddressResult{}, h.compensate(ctx, logger, o.ID(), inverse, candidate, updated, err)
	}

	logger.InfoContext(ctx, "shipping address updated", "parcel_updated", true)
	h.observe(AddressOutcomeBothUpdated)
	return UpdateShippingAddressResult{Order: o, ParcelUpdated: true, Parcel: updated}, nil
}

func (h UpdateShippingAddressCommandHandler) saveOrder(ctx context.Context, uow UoW, o *order.Order) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// compensate restores the parcel after the order write failed. It runs detached from
// ctx cancellation so that a client disconnect cannot skip it.
func (h UpdateShippingAddressCommandHandler) compensate(
	ctx context.Context,
	logger *slog.Logger,
	orderID kernel.UUID,
	inverse, candidate, updated *parcel.Parcel,
	cause error,
) error {
	ctx = context.WithoutCancel(ctx)

	if updated != nil {
		inverse = inverse.WithETag(updated.ETag())
	}

	_, rollbackErr := h.tracking.UpdateParcel(ctx, inverse)
	if rollbackErr == nil {
		logger.WarnContext(ctx, "order update failed, parcel address rolled back", "error", cause)
		h.observe(AddressOutcomeRolledBack)
		return &OrderUpdateRolledBackError{Cause: cause}
	}

	logger.ErrorContext(ctx, "address rollback failed, manual reconciliation required",
		"error", cause,
		"rollback_error", rollbackErr,
	)
	h.observe(AddressOutcomeRollbackFailed)
	h.recordIncident(ctx, logger, orderID, inverse.ID(), candidate, inverse, rollbackErr)

	return &OrderUpdateRolledBackError{Cause: cause, RollbackFailed: true, RollbackCause: rollbackErr}
}

func (h UpdateShippingAddressCommandHandler) recordIncident(
	ctx context.Context,
	logger *slog.Logger,
	orderID kernel.UUID,
	parcelID string,
	candidate, inverse *parcel.Parcel,
	cause error,
) {
	inc, err := incident.NewIncident(
		kernel.NewUUID(), orderID, parcelID,
		candidate.RawShippingAddress(), inverse.RawShippingAddress(),
		cause, time.Now(),
	)
	if err != nil {
		logger.ErrorContext(ctx, "failed to build integrity incident", "error", err)
		return
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		logger.ErrorContext(ctx, "failed to record integrity incident", "incident_id", inc.ID().String(), "error", err)
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.IncidentRepository().Add(ctx, inc); err == nil {
		err = uow.Commit(ctx)
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to record integrity incident", "incident_id", inc.ID().String(), "error", err)
		return
	}

	logger.WarnContext(ctx, "integrity incident recorded", "incident_id", inc.ID().String())
}

func (h UpdateShippingAddressCommandHandler) observe(outcome string) {
	if h.observer != nil {
		h.observer.ObserveAddressUpdate(outcome)
	}
}
