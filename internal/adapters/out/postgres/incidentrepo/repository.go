package incidentrepo

import (
	"context"

	"orderledger/internal/core/domain/model/incident"
	"orderledger/internal/core/ports"

	"gorm.io/gorm"
)

// GormIncidentRepository implements ports.IncidentRepository using GORM.
type GormIncidentRepository struct {
	db *gorm.DB
}

// NewGormIncidentRepository creates a repository on db.
func NewGormIncidentRepository(db *gorm.DB) *GormIncidentRepository {
	return &GormIncidentRepository{db: db}
}

// Add stores a new incident.
func (r *GormIncidentRepository) Add(ctx context.Context, i *incident.Incident) error {
	dto := fromDomain(i)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListOpen returns unresolved incidents, oldest first.
func (r *GormIncidentRepository) ListOpen(ctx context.Context) ([]*incident.Incident, error) {
	var dtos []IncidentDTO
	err := r.db.WithContext(ctx).
		Where("resolved_at IS NULL").
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	incidents := make([]*incident.Incident, 0, len(dtos))
	for _, dto := range dtos {
		i, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		incidents = append(incidents, i)
	}
	return incidents, nil
}

var _ ports.IncidentRepository = (*GormIncidentRepository)(nil)
