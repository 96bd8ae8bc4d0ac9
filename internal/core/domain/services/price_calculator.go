package services

import (
	"errors"

	"orderledger/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

var (
	// FreeShippingThreshold is the items subtotal above which shipping is free.
	FreeShippingThreshold = decimal.NewFromInt(500)
	// FlatShippingFee is charged when the subtotal does not exceed FreeShippingThreshold.
	FlatShippingFee = decimal.NewFromInt(100)
	// TaxRate is applied to the items subtotal only.
	TaxRate = decimal.RequireFromString("0.18")
)

// PriceCalculator computes order money fields in fixed-point arithmetic.
//
// Rules:
//   - itemsPrice = Σ price × qty
//   - shippingPrice = 0 if itemsPrice > 500, otherwise 100
//   - taxPrice = round2(itemsPrice × 0.18)
//   - totalPrice = round2(itemsPrice + shippingPrice + taxPrice)
//
// Rounding is half away from zero.
//
// Example:
//
//	calc := services.NewPriceCalculator()
//	prices, err := calc.Calculate(items)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(prices.Total().StringFixed(order.MoneyScale))
type PriceCalculator struct{}

// NewPriceCalculator returns a stateless calculator.
func NewPriceCalculator() PriceCalculator {
	return PriceCalculator{}
}

// Calculate returns the money fields for items. Each item is validated again, so a
// zero-value LineItem or a negative price is reported instead of priced.
func (PriceCalculator) Calculate(items []order.LineItem) (order.Prices, error) {
	var problems []error
	itemsPrice := decimal.Zero
	for _, item := range items {
		if err := item.Validate(); err != nil {
			problems = append(problems, err)
			continue
		}
		itemsPrice = itemsPrice.Add(item.Subtotal())
	}
	if err := errors.Join(problems...); err != nil {
		return order.Prices{}, err
	}

	itemsPrice = itemsPrice.Round(order.MoneyScale)

	shippingPrice := FlatShippingFee
	if itemsPrice.GreaterThan(FreeShippingThreshold) {
		shippingPrice = decimal.Zero
	}

	taxPrice := itemsPrice.Mul(TaxRate).Round(order.MoneyScale)
	totalPrice := itemsPrice.Add(shippingPrice).Add(taxPrice).Round(order.MoneyScale)

	return order.NewPrices(itemsPrice, shippingPrice, taxPrice, totalPrice)
}
