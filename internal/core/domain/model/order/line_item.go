package order

import (
	"errors"
	"fmt"
	"strings"

	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// LineItem is one ordered product, snapshotted from the catalog at creation time.
// Its unit price is never re-derived from the catalog afterwards.
type LineItem struct {
	productID kernel.UUID
	name      string
	qty       int
	price     decimal.Decimal
	image     string
}

// NewLineItem validates and builds a LineItem. qty must be at least 1 and price must not
// be negative.
func NewLineItem(productID kernel.UUID, name string, qty int, price decimal.Decimal, image string) (LineItem, error) {
	item := LineItem{
		productID: productID,
		name:      strings.TrimSpace(name),
		qty:       qty,
		price:     price,
		image:     image,
	}
	if err := item.Validate(); err != nil {
		return LineItem{}, err
	}
	return item, nil
}

// Validate checks the invariants NewLineItem enforces.
func (i LineItem) Validate() error {
	var problems []error
	if err := i.productID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if i.name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("orderItems.name"))
	}
	if i.qty < 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("orderItems.qty", i.qty, 1, "unbounded"))
	}
	if i.price.IsNegative() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"orderItems.price", fmt.Errorf("%s is negative", i.price.String())))
	}
	return errors.Join(problems...)
}

// ProductID returns the catalog product the item was priced from.
func (i LineItem) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name as snapshotted.
func (i LineItem) Name() string {
	return i.name
}

// Qty returns the ordered quantity.
func (i LineItem) Qty() int {
	return i.qty
}

// Price returns the unit price charged.
func (i LineItem) Price() decimal.Decimal {
	return i.price
}

// Image returns the product image as snapshotted.
func (i LineItem) Image() string {
	return i.image
}

// Subtotal returns price × qty.
func (i LineItem) Subtotal() decimal.Decimal {
	return i.price.Mul(decimal.NewFromInt(int64(i.qty)))
}
