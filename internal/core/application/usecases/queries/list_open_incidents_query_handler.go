package queries

import (
	"context"
	"encoding/json"

	"orderledger/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOpenIncidentsQueryHandler reads integrity_incidents directly.
type ListOpenIncidentsQueryHandler struct {
	db *gorm.DB
}

// NewListOpenIncidentsQueryHandler creates a handler reading from db.
func NewListOpenIncidentsQueryHandler(db *gorm.DB) ListOpenIncidentsQueryHandler {
	return ListOpenIncidentsQueryHandler{db: db}
}

// Handle returns open incidents, oldest first.
func (h ListOpenIncidentsQueryHandler) Handle(
	ctx context.Context,
	query ListOpenIncidentsQuery,
) ([]ListOpenIncidentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	incidents := make([]ListOpenIncidentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			parcel_id,
			intended_address::text,
			previous_address::text,
			cause,
			created_at
		FROM integrity_incidents
		WHERE resolved_at IS NULL
		ORDER BY created_at
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp ListOpenIncidentsQueryResponse
		var id, orderID uuid.UUID
		var intended, previous string

		err = rows.Scan(
			&id,
			&orderID,
			&resp.ParcelID,
			&intended,
			&previous,
			&resp.Cause,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		resp.IntendedAddress = json.RawMessage(intended)
		resp.PreviousAddress = json.RawMessage(previous)

		incidents = append(incidents, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return incidents, nil
}
