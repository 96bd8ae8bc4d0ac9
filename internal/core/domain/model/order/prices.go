package order

import (
	"errors"
	"fmt"

	"orderledger/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places kept for every money field.
const MoneyScale = 2

// Prices holds the money fields of an order. They are computed once when the order is
// created and stored as the durable record of what the customer was charged.
type Prices struct {
	items    decimal.Decimal
	shipping decimal.Decimal
	tax      decimal.Decimal
	total    decimal.Decimal
}

// NewPrices rounds every amount to MoneyScale places and checks that none is negative and
// that total equals items + shipping + tax.
func NewPrices(items, shipping, tax, total decimal.Decimal) (Prices, error) {
	p := Prices{
		items:    items.Round(MoneyScale),
		shipping: shipping.Round(MoneyScale),
		tax:      tax.Round(MoneyScale),
		total:    total.Round(MoneyScale),
	}

	var problems []error
	for name, v := range map[string]decimal.Decimal{
		"itemsPrice": p.items, "shippingPrice": p.shipping, "taxPrice": p.tax, "totalPrice": p.total,
	} {
		if v.IsNegative() {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", v)))
		}
	}
	if sum := p.items.Add(p.shipping).Add(p.tax); !sum.Equal(p.total) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"totalPrice", fmt.Errorf("%s does not equal items+shipping+tax %s", p.total.StringFixed(MoneyScale), sum.StringFixed(MoneyScale))))
	}
	if err := errors.Join(problems...); err != nil {
		return Prices{}, err
	}
	return p, nil
}

// Items returns the sum of line subtotals.
func (p Prices) Items() decimal.Decimal {
	return p.items
}

// Shipping returns the shipping charge.
func (p Prices) Shipping() decimal.Decimal {
	return p.shipping
}

// Tax returns the tax charged on the items.
func (p Prices) Tax() decimal.Decimal {
	return p.tax
}

// Total returns items + shipping + tax.
func (p Prices) Total() decimal.Decimal {
	return p.total
}
