// Package incident records known disagreements between the ledger and the tracking
// service that could not be repaired automatically.
//
// An Incident is written when the compensating write of an address update fails: the
// parcel then carries the new address while the order still carries the old one. The
// ledger never retries; an operator reconciles both records and sets resolvedAt.
package incident

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/pkg/errs"
)

// Incident is one unrepaired divergence between an order and its parcel. It is open
// until an operator sets resolvedAt.
type Incident struct {
	id              kernel.UUID
	orderID         kernel.UUID
	parcelID        string
	intendedAddress json.RawMessage
	previousAddress json.RawMessage
	cause           string
	createdAt       time.Time
	resolvedAt      *time.Time
}

// NewIncident builds an open incident. intendedAddress is the parcel address the
// tracking service kept; previousAddress is the one the compensation tried to restore.
func NewIncident(
	id, orderID kernel.UUID,
	parcelID string,
	intendedAddress, previousAddress json.RawMessage,
	cause error,
	now time.Time,
) (*Incident, error) {
	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := orderID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if strings.TrimSpace(parcelID) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("parcelId"))
	}
	if cause == nil {
		problems = append(problems, errs.NewValueIsRequiredError("cause"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &Incident{
		id:              id,
		orderID:         orderID,
		parcelID:        parcelID,
		intendedAddress: orNull(intendedAddress),
		previousAddress: orNull(previousAddress),
		cause:           cause.Error(),
		createdAt:       now.UTC(),
	}, nil
}

// RestoreIncident rebuilds an incident from storage without validation.
func RestoreIncident(
	id, orderID kernel.UUID,
	parcelID string,
	intendedAddress, previousAddress json.RawMessage,
	cause string,
	createdAt time.Time,
	resolvedAt *time.Time,
) *Incident {
	return &Incident{
		id:              id,
		orderID:         orderID,
		parcelID:        parcelID,
		intendedAddress: orNull(intendedAddress),
		previousAddress: orNull(previousAddress),
		cause:           cause,
		createdAt:       createdAt,
		resolvedAt:      resolvedAt,
	}
}

// ID returns the incident identifier.
func (i *Incident) ID() kernel.UUID {
	return i.id
}

// OrderID returns the order whose address update failed.
func (i *Incident) OrderID() kernel.UUID {
	return i.orderID
}

// ParcelID returns the parcel left with the new address.
func (i *Incident) ParcelID() string {
	return i.parcelID
}

// IntendedAddress returns the shippingAddress the parcel kept.
func (i *Incident) IntendedAddress() json.RawMessage {
	return i.intendedAddress
}

// PreviousAddress returns the shippingAddress compensation tried to restore.
func (i *Incident) PreviousAddress() json.RawMessage {
	return i.previousAddress
}

// Cause returns the message of the error that failed the compensation.
func (i *Incident) Cause() string {
	return i.cause
}

// CreatedAt returns when the incident was recorded.
func (i *Incident) CreatedAt() time.Time {
	return i.createdAt
}

// ResolvedAt returns when an operator resolved the incident, or nil.
func (i *Incident) ResolvedAt() *time.Time {
	return i.resolvedAt
}

// IsOpen reports whether the incident is unresolved.
func (i *Incident) IsOpen() bool {
	return i.resolvedAt == nil
}

func orNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return append(json.RawMessage(nil), raw...)
}
