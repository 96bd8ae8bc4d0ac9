package queries

import (
	"encoding/json"
	"errors"
	"time"

	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/pkg/guard"
)

var ErrListOpenIncidentsQueryIsNotConstructed = errors.New(
	"ListOpenIncidentsQuery must be created via NewListOpenIncidentsQuery constructor",
)

// ListOpenIncidentsQuery lists integrity incidents nobody has resolved yet.
type ListOpenIncidentsQuery struct {
	guard guard.ConstructorGuard
}

// NewListOpenIncidentsQuery creates the query. It takes no parameters.
func NewListOpenIncidentsQuery() ListOpenIncidentsQuery {
	return ListOpenIncidentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through its constructor.
func (q ListOpenIncidentsQuery) Validate() error {
	return q.guard.Validate(ErrListOpenIncidentsQueryIsNotConstructed)
}

// ListOpenIncidentsQueryResponse is one open incident. The addresses are the raw
// shippingAddress documents.
type ListOpenIncidentsQueryResponse struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	ParcelID        string
	IntendedAddress json.RawMessage
	PreviousAddress json.RawMessage
	Cause           string
	CreatedAt       time.Time
}
