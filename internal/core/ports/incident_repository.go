package ports

import (
	"context"

	"orderledger/internal/core/domain/model/incident"
)

// IncidentRepository stores integrity incidents raised by failed compensations.
type IncidentRepository interface {
	// Add stores a new open incident.
	Add(ctx context.Context, incident *incident.Incident) error
}
