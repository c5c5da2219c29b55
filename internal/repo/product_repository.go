package repo

import (
	"context"

	"github.com/rogerio-castellano/shop-inventory/internal/models"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (models.Product, error)
	// GetByIDForUpdate is GetByID that also locks the row until the unit of work ends.
	GetByIDForUpdate(ctx context.Context, id int) (models.Product, error)
	Update(ctx context.Context, product models.Product) (models.Product, error)
	Delete(ctx context.Context, id int) error
	// LowStock returns the products whose stock level is strictly below threshold.
	LowStock(ctx context.Context, threshold int) ([]models.Product, error)
}
