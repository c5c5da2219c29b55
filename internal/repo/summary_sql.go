package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/rogerio-castellano/shop-inventory/internal/models"
)

// Summary implements UnitOfWork.
func (u *sqlUnitOfWork) Summary(ctx context.Context, since time.Time) (Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var m Summary

	query := u.tx.Rebind(`
		SELECT
			COUNT(*) AS total_products,
			COALESCE(SUM(COALESCE(price, 0.0) * stock_level), 0.0) AS total_value,
			COALESCE(SUM(CASE WHEN stock_level < ? THEN 1 ELSE 0 END), 0) AS low_stock_products
		FROM products
	`)
	row := u.tx.QueryRowxContext(ctx, query, models.LowStockThreshold)
	if err := row.Scan(&m.TotalProducts, &m.TotalValue, &m.LowStockProducts); err != nil {
		return Summary{}, fmt.Errorf("failed to aggregate products: %w", err)
	}

	query = u.tx.Rebind(`SELECT COUNT(*) FROM restock_logs WHERE "timestamp" >= ?`)
	if err := u.tx.GetContext(ctx, &m.RestocksPending, query, since.UTC()); err != nil {
		return Summary{}, fmt.Errorf("failed to count pending restocks: %w", err)
	}

	return m, nil
}
