package repo

import (
	"context"

	"github.com/rogerio-castellano/shop-inventory/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
// It is only handed out by InMemoryStore, whose lock guards the state.
type InMemoryProductRepository struct {
	state *memoryState
}

func (r *InMemoryProductRepository) skuTaken(sku string, exceptID int) bool {
	for _, p := range r.state.products {
		if p.SKU == sku && p.ID != exceptID {
			return true
		}
	}
	return false
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(ctx context.Context, product models.Product) (models.Product, error) {
	if r.skuTaken(product.SKU, 0) {
		return models.Product{}, ErrDuplicateSKU
	}
	product.ID = r.state.nextProductID
	r.state.nextProductID++
	r.state.products = append(r.state.products, product)
	return product, nil
}

// GetAll retrieves all products from the repository.
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, len(r.state.products))
	copy(products, r.state.products)
	return products, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id int) (models.Product, error) {
	for _, p := range r.state.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// GetByIDForUpdate implements ProductRepository. The store lock already
// serializes every unit of work, so no extra locking is needed.
func (r *InMemoryProductRepository) GetByIDForUpdate(ctx context.Context, id int) (models.Product, error) {
	return r.GetByID(ctx, id)
}

// Update modifies an existing product in the repository.
func (r *InMemoryProductRepository) Update(ctx context.Context, product models.Product) (models.Product, error) {
	if r.skuTaken(product.SKU, product.ID) {
		return models.Product{}, ErrDuplicateSKU
	}
	for i, p := range r.state.products {
		if p.ID == product.ID {
			r.state.products[i] = product
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(ctx context.Context, id int) error {
	for _, l := range r.state.restocks {
		if l.ProductID == id {
			return ErrProductReferenced
		}
	}
	for i, p := range r.state.products {
		if p.ID == id {
			r.state.products = append(r.state.products[:i], r.state.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) LowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	filtered := []models.Product{}
	for _, p := range r.state.products {
		if p.StockLevel < threshold {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}
