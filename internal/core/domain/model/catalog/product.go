// Package catalog holds the read-only product data the ledger snapshots into line items.
package catalog

import (
	"orderledger/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Product is the catalog entry an order item refers to. Its price is authoritative at
// the moment an order is created.
type Product struct {
	ID    kernel.UUID
	Name  string
	Image string
	Price decimal.Decimal
}
