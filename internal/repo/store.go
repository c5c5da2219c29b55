package repo

import (
	"context"
	"errors"
	"time"
)

// UnitOfWork groups the repositories that take part in one transaction.
// It must not be used after the function passed to Store.WithTx returns.
type UnitOfWork interface {
	Products() ProductRepository
	Restocks() RestockRepository
	// Summary aggregates the inventory; restock logs at or after since count as pending.
	Summary(ctx context.Context, since time.Time) (Summary, error)
}

// Store opens units of work over the persistence backend.
type Store interface {
	// WithTx runs fn inside a single unit of work. The work is committed exactly
	// once when fn returns nil and discarded otherwise.
	WithTx(ctx context.Context, fn func(UnitOfWork) error) error
	Ping(ctx context.Context) error
}

var (
	// ErrProductNotFound is returned when a product is not found in the repository.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateSKU is returned when a create or update would repeat an existing sku.
	ErrDuplicateSKU = errors.New("sku already exists")
	// ErrProductReferenced is returned when deleting a product that still has restock history.
	ErrProductReferenced = errors.New("product is referenced by restock logs")
	// ErrStockOutOfRange is returned when a stock change would leave the level outside the storable range.
	ErrStockOutOfRange = errors.New("stock level out of range")
	// ErrUnknownProduct is returned when a restock log points at a product that does not exist.
	ErrUnknownProduct = errors.New("restock log references an unknown product")
)
