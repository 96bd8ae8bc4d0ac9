// Package productrepo reads the product catalog that order creation prices against.
package productrepo

import (
	"orderledger/internal/core/domain/model/catalog"
	"orderledger/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO is the row of the products table. The catalog is owned by another part of
// the shop; the ledger only reads it.
type ProductDTO struct {
	ID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name  string          `gorm:"not null"`
	Image string
	Price decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

// TableName overrides GORM's default "product_dtos".
func (ProductDTO) TableName() string {
	return "products"
}

func toDomain(dto ProductDTO) (catalog.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.Product{}, err
	}
	return catalog.Product{
		ID:    id,
		Name:  dto.Name,
		Image: dto.Image,
		Price: dto.Price,
	}, nil
}
