package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetSalesSummaryQueryHandler aggregates the orders table in one statement.
type GetSalesSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetSalesSummaryQueryHandler creates a handler reading from db.
func NewGetSalesSummaryQueryHandler(db *gorm.DB) GetSalesSummaryQueryHandler {
	return GetSalesSummaryQueryHandler{db: db}
}

// Handle returns zero totals for an empty ledger.
func (h GetSalesSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetSalesSummaryQuery,
) (GetSalesSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSalesSummaryQueryResponse{}, err
	}

	var resp GetSalesSummaryQueryResponse
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COALESCE(SUM(total_price), 0)
		FROM orders
	`).Row()
	if err := row.Scan(&resp.TotalOrders, &resp.TotalSales); err != nil {
		return GetSalesSummaryQueryResponse{}, err
	}

	return resp, nil
}

// GetSalesByDateQueryHandler groups paid orders by the UTC day of paidAt.
type GetSalesByDateQueryHandler struct {
	db *gorm.DB
}

// NewGetSalesByDateQueryHandler creates a handler reading from db.
func NewGetSalesByDateQueryHandler(db *gorm.DB) GetSalesByDateQueryHandler {
	return GetSalesByDateQueryHandler{db: db}
}

// Handle returns one entry per day that has paid orders, oldest day first.
func (h GetSalesByDateQueryHandler) Handle(
	ctx context.Context,
	query GetSalesByDateQuery,
) ([]GetSalesByDateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	days := make([]GetSalesByDateQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			to_char(paid_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
			SUM(total_price)
		FROM orders
		WHERE is_paid = TRUE AND paid_at IS NOT NULL
		GROUP BY day
		ORDER BY day
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var day GetSalesByDateQueryResponse
		if err = rows.Scan(&day.Date, &day.TotalSales); err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return days, nil
}
