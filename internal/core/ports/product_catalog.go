package ports

import (
	"context"

	"orderledger/internal/core/domain/model/catalog"
	"orderledger/internal/core/domain/model/kernel"
)

// ProductCatalog resolves authoritative product data for new orders.
type ProductCatalog interface {
	// FindByIDs returns the products that exist among ids, in no particular order.
	// Missing ids are simply absent from the result.
	FindByIDs(ctx context.Context, ids []kernel.UUID) ([]catalog.Product, error)
}
