package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rogerio-castellano/shop-inventory/internal/models"
)

const productColumns = `id, name, sku, stock_level, category, price, cost`

// SQLProductRepository is bound to the transaction of one unit of work.
type SQLProductRepository struct {
	tx *sqlx.Tx
}

func (r *SQLProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	query := r.tx.Rebind(`INSERT INTO products (name, sku, stock_level, category, price, cost) VALUES (?, ?, ?, ?, ?, ?) RETURNING id`)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.tx.QueryRowxContext(ctx, query, p.Name, p.SKU, p.StockLevel, p.Category, p.Price, p.Cost).Scan(&p.ID)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to insert product: %w", translateError(err, nil))
	}
	return p, nil
}

func (r *SQLProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	products := []models.Product{}
	if err := r.tx.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *SQLProductRepository) GetByID(ctx context.Context, id int) (models.Product, error) {
	return r.getByID(ctx, id, "")
}

// GetByIDForUpdate takes a row lock on PostgreSQL. SQLite runs on a single
// connection, so the surrounding transaction is already exclusive.
func (r *SQLProductRepository) GetByIDForUpdate(ctx context.Context, id int) (models.Product, error) {
	if isPostgres(r.tx) {
		return r.getByID(ctx, id, " FOR UPDATE")
	}
	return r.getByID(ctx, id, "")
}

func (r *SQLProductRepository) getByID(ctx context.Context, id int, lock string) (models.Product, error) {
	query := r.tx.Rebind(`SELECT ` + productColumns + ` FROM products WHERE id = ?` + lock)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p models.Product
	err := r.tx.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to fetch product %d: %w", id, err)
	}
	return p, nil
}

func (r *SQLProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	query := r.tx.Rebind(`UPDATE products SET name = ?, sku = ?, stock_level = ?, category = ?, price = ?, cost = ? WHERE id = ?`)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.tx.ExecContext(ctx, query, p.Name, p.SKU, p.StockLevel, p.Category, p.Price, p.Cost, p.ID)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to update product %d: %w", p.ID, translateError(err, nil))
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *SQLProductRepository) Delete(ctx context.Context, id int) error {
	query := r.tx.Rebind(`DELETE FROM products WHERE id = ?`)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.tx.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, translateError(err, ErrProductReferenced))
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *SQLProductRepository) LowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	query := r.tx.Rebind(`SELECT ` + productColumns + ` FROM products WHERE stock_level < ? ORDER BY id`)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	products := []models.Product{}
	if err := r.tx.SelectContext(ctx, &products, query, threshold); err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}
	return products, nil
}
