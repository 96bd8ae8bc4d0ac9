package ports

import (
	"context"

	"orderledger/internal/core/domain/model/parcel"
)

// TrackingClient talks to the external parcel tracking service.
// Implementations bound every call with a timeout; a timeout is an error like any other.
type TrackingClient interface {
	// GetParcel fetches the current parcel document.
	GetParcel(ctx context.Context, parcelID string) (*parcel.Parcel, error)

	// UpdateParcel overwrites the parcel document in full and returns the stored copy.
	// When p carries an ETag the write is conditional on it.
	UpdateParcel(ctx context.Context, p *parcel.Parcel) (*parcel.Parcel, error)
}
