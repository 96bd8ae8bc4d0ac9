// Package incidentrepo persists integrity incidents raised by failed address rollbacks.
package incidentrepo

import (
	"encoding/json"
	"time"

	"orderledger/internal/core/domain/model/incident"
	"orderledger/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// IncidentDTO maps an incident to integrity_incidents. Addresses are stored as jsonb.
type IncidentDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;index"`
	ParcelID        string    `gorm:"not null"`
	IntendedAddress string    `gorm:"type:jsonb;not null"`
	PreviousAddress string    `gorm:"type:jsonb;not null"`
	Cause           string    `gorm:"type:text;not null"`
	CreatedAt       time.Time `gorm:"not null;index"`
	ResolvedAt      *time.Time
}

// TableName overrides GORM's default "incident_dtos".
func (IncidentDTO) TableName() string {
	return "integrity_incidents"
}

func fromDomain(i *incident.Incident) IncidentDTO {
	return IncidentDTO{
		ID:              i.ID().Bytes(),
		OrderID:         i.OrderID().Bytes(),
		ParcelID:        i.ParcelID(),
		IntendedAddress: string(i.IntendedAddress()),
		PreviousAddress: string(i.PreviousAddress()),
		Cause:           i.Cause(),
		CreatedAt:       i.CreatedAt(),
		ResolvedAt:      i.ResolvedAt(),
	}
}

func toDomain(dto IncidentDTO) (*incident.Incident, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	return incident.RestoreIncident(
		id, orderID, dto.ParcelID,
		json.RawMessage(dto.IntendedAddress), json.RawMessage(dto.PreviousAddress),
		dto.Cause, dto.CreatedAt, dto.ResolvedAt,
	), nil
}
