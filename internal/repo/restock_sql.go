package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rogerio-castellano/shop-inventory/internal/models"
)

type SQLRestockRepository struct {
	tx *sqlx.Tx
}

// Log inserts a new restock entry
func (r *SQLRestockRepository) Log(ctx context.Context, productID, quantity int, at time.Time) (models.RestockLog, error) {
	query := r.tx.Rebind(`INSERT INTO restock_logs (product_id, quantity, "timestamp") VALUES (?, ?, ?) RETURNING id`)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	entry := models.RestockLog{
		ProductID: productID,
		Quantity:  quantity,
		Timestamp: at.UTC(),
	}
	if err := r.tx.QueryRowxContext(ctx, query, productID, quantity, entry.Timestamp).Scan(&entry.ID); err != nil {
		return models.RestockLog{}, fmt.Errorf("failed to insert restock log: %w", translateError(err, ErrUnknownProduct))
	}
	return entry, nil
}

func (r *SQLRestockRepository) GetAll(ctx context.Context) ([]models.RestockLog, error) {
	query := `SELECT id, product_id, quantity, "timestamp" FROM restock_logs ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	logs := []models.RestockLog{}
	if err := r.tx.SelectContext(ctx, &logs, query); err != nil {
		return nil, fmt.Errorf("failed to list restock logs: %w", err)
	}
	for i := range logs {
		logs[i].Timestamp = logs[i].Timestamp.UTC()
	}
	return logs, nil
}
