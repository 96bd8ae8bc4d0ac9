package queries

import (
	"errors"

	"orderledger/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetSalesSummaryQueryIsNotConstructed = errors.New(
		"GetSalesSummaryQuery must be created via NewGetSalesSummaryQuery constructor",
	)
	ErrGetSalesByDateQueryIsNotConstructed = errors.New(
		"GetSalesByDateQuery must be created via NewGetSalesByDateQuery constructor",
	)
)

// GetSalesSummaryQuery counts all orders and sums their totals, paid or not.
type GetSalesSummaryQuery struct {
	guard guard.ConstructorGuard
}

// NewGetSalesSummaryQuery creates the query. It takes no parameters.
func NewGetSalesSummaryQuery() GetSalesSummaryQuery {
	return GetSalesSummaryQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through its constructor.
func (q GetSalesSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetSalesSummaryQueryIsNotConstructed)
}

// GetSalesSummaryQueryResponse is the order count and the sum of every order total.
type GetSalesSummaryQueryResponse struct {
	TotalOrders int64
	TotalSales  decimal.Decimal
}

// GetSalesByDateQuery sums paid orders per UTC calendar day of payment.
type GetSalesByDateQuery struct {
	guard guard.ConstructorGuard
}

// NewGetSalesByDateQuery creates the query. It takes no parameters.
func NewGetSalesByDateQuery() GetSalesByDateQuery {
	return GetSalesByDateQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through its constructor.
func (q GetSalesByDateQuery) Validate() error {
	return q.guard.Validate(ErrGetSalesByDateQueryIsNotConstructed)
}

// GetSalesByDateQueryResponse is one day. Date has the form YYYY-MM-DD.
type GetSalesByDateQueryResponse struct {
	Date       string
	TotalSales decimal.Decimal
}
