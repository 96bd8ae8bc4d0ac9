package productrepo

import (
	"context"

	"orderledger/internal/core/domain/model/catalog"
	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductCatalog implements ports.ProductCatalog using GORM.
type GormProductCatalog struct {
	db *gorm.DB
}

// NewGormProductCatalog creates a catalog reading the products table.
func NewGormProductCatalog(db *gorm.DB) *GormProductCatalog {
	return &GormProductCatalog{db: db}
}

// FindByIDs returns the products that exist among ids. Unknown ids are skipped.
func (c *GormProductCatalog) FindByIDs(ctx context.Context, ids []kernel.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductDTO
	if err := c.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

var _ ports.ProductCatalog = (*GormProductCatalog)(nil)
