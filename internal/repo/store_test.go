package repo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/shop-inventory/internal/db"
	"github.com/rogerio-castellano/shop-inventory/internal/models"
	"github.com/rogerio-castellano/shop-inventory/internal/repo"
)

// stores returns one fresh store per backend under test.
func stores(t *testing.T) map[string]repo.Store {
	t.Helper()

	sqlite, err := db.Connect(context.Background(), db.DriverSQLite, "file::memory:?_foreign_keys=1")
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })
	require.NoError(t, db.EnsureSchema(context.Background(), sqlite))

	return map[string]repo.Store{
		"memory": repo.NewInMemoryStore(),
		"sqlite": repo.NewSQLStore(sqlite),
	}
}

func forEachStore(t *testing.T, fn func(t *testing.T, store repo.Store)) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			fn(t, store)
		})
	}
}

func strPtr(s string) *string {
	return &s
}

func f64Ptr(f float64) *float64 {
	return &f
}

func create(t *testing.T, store repo.Store, p models.Product) models.Product {
	t.Helper()
	var created models.Product
	err := store.WithTx(context.Background(), func(uow repo.UnitOfWork) error {
		var err error
		created, err = uow.Products().Create(context.Background(), p)
		return err
	})
	require.NoError(t, err)
	return created
}

func get(t *testing.T, store repo.Store, id int) (models.Product, error) {
	t.Helper()
	var p models.Product
	err := store.WithTx(context.Background(), func(uow repo.UnitOfWork) error {
		var err error
		p, err = uow.Products().GetByID(context.Background(), id)
		return err
	})
	return p, err
}

func restockLogs(t *testing.T, store repo.Store) []models.RestockLog {
	t.Helper()
	var logs []models.RestockLog
	err := store.WithTx(context.Background(), func(uow repo.UnitOfWork) error {
		var err error
		logs, err = uow.Restocks().GetAll(context.Background())
		return err
	})
	require.NoError(t, err)
	return logs
}

func TestStore_CreateAndGet(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repo.Store) {
		created := create(t, store, models.Product{
			Name:       "Widget",
			SKU:        "W-1",
			StockLevel: 5,
			Category:   strPtr("Tools"),
			Price:      f64Ptr(9.99),
		})
		assert.Equal(t, 1, created.ID)

		fetched, err := get(t, store, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, fetched)
		assert.Nil(t, fetched.Cost)

		_, err = get(t, store, 999)
		assert.ErrorIs(t, err, repo.ErrProductNotFound)
	})
}

func TestStore_DuplicateSKU(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repo.Store) {
		first := create(t, store, models.Product{Name: "A", SKU: "SKU-1"})
		second := create(t, store, models.Product{Name: "B", SKU: "SKU-2"})

		err := store.WithTx(context.Background(), func(uow repo.UnitOfWork) error {
			_, err := uow.Products().Create(context.Background(), models.Product{Name: "C", SKU: "SKU-1"})
			return err
		})
		assert.ErrorIs(t, err, repo.ErrDuplicateSKU)

		err = store.WithTx(context.Background(), func(uow repo.UnitOfWork) error {
			second.SKU = first.SKU
			_, err := uow.Products().Update(context.Background(), second)
			return err
		})
		assert.ErrorIs(t, err, repo.ErrDuplicateSKU)

		// Updating a product with its own sku is not a conflict.
		err = store.WithTx(context.Background(), func(uow repo.UnitOfWork) error {
			first.Name = "A2"
			_, err := uow.Products().Update(context.Background(), first)
			return err
		})
		assert.NoError(t, err)

		var all []models.Product
		require.NoError(t, store.WithTx(context.Background(), func(uow repo.UnitOfWork) error {
			var err error
			all, err = uow.Products().GetAll(context.Background())
			return err
		}))
		assert.Len(t, all, 2)
	})
}

func TestStore_UpdateAndDelete(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repo.Store) {
		p := create(t, store, models.Product{Name: "Desk", SKU: "D-1", StockLevel: 3})

		p.StockLevel = 30
		p.Cost = f64Ptr(12.5)
		require.NoError(t, store.WithTx(context.Background(), func(uow repo.UnitOfWork) error {
			_, err := uow.Products().Update(context.Background(), p)
			return err
		}))
		fetched, err := get(t, store, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 30, fetched.StockLevel)
		require.NotNil(t, fetched.Cost)
		assert.Equal(t, 12.5, *fetched.Cost)

		missing := models.Product{ID: 404, Name: "X", SKU: "X"}
		err = store.WithTx(context.Background(), func(uow repo.UnitOfWork) error {
			_, err := uow.Products().Update(context.Background(), missing)
			return err
		})
		assert.ErrorIs(t, err, repo.ErrProductNotFound)

		require.NoError(t, store.WithTx(context.Background(), func(uow repo.UnitOfWork) error {
			return uow.Products().Delete(context.Background(), p.ID)
		}))
		_, err = get(t, store, p.ID)
		assert.ErrorIs(t, err, repo.ErrProductNotFound)

		err = store.WithTx(context.Background(), func(uow repo.UnitOfWork) error {
			return uow.Products().Delete(context.Background(), p.ID)
		})
		assert.ErrorIs(t, err, repo.ErrProductNotFound)
	})
}

func TestStore_RestockLogReferences(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repo.Store) {
		p := create(t, store, models.Product{Name: "Gear", SKU: "G-1"})
		at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("CET", 3600))

		var entry models.RestockLog
		require.NoError(t, store.WithTx(context.Background(), func(uow repo.UnitOfWork) error {
			var err error
			entry, err = uow.Restocks().Log(context.Background(), p.ID, 4, at)
			return err
		}))
		assert.Equal(t, p.ID, entry.ProductID)

		logs := restockLogs(t, store)
		require.Len(t, logs, 1)
		assert.Equal(t, entry.ID, logs[0].ID)
		assert.Equal(t, 4, logs[0].Quantity)
		assert.True(t, at.Equal(logs[0].Timestamp))
		assert.Equal(t, time.UTC, logs[0].Timestamp.Location())

		err := store.WithTx(context.Background(), func(uow repo.UnitOfWork) error {
			_, err := uow.Restocks().Log(context.Background(), 999, 1, at)
			return err
		})
		assert.ErrorIs(t, err, repo.ErrUnknownProduct)

		err = store.WithTx(context.Background(), func(uow repo.UnitOfWork) error {
			return uow.Products().Delete(context.Background(), p.ID)
		})
		assert.ErrorIs(t, err, repo.ErrProductReferenced)
		_, err = get(t, store, p.ID)
		assert.NoError(t, err)
	})
}

func TestStore_LowStock(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repo.Store) {
		create(t, store, models.Product{Name: "Nine", SKU: "N-9", StockLevel: 9})
		create(t, store, models.Product{Name: "Ten", SKU: "N-10", StockLevel: 10})
		create(t, store, models.Product{Name: "Neg", SKU: "N-NEG", StockLevel: -1})

		var low []models.Product
		require.NoError(t, store.WithTx(context.Background(), func(uow repo.UnitOfWork) error {
			var err error
			low, err = uow.Products().LowStock(context.Background(), models.LowStockThreshold)
			return err
		}))

		require.Len(t, low, 2)
		assert.Equal(t, "N-9", low[0].SKU)
		assert.Equal(t, "N-NEG", low[1].SKU)
	})
}

func TestStore_Summary(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repo.Store) {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		since := now.Add(-24 * time.Hour)

		var empty repo.Summary
		require.NoError(t, store.WithTx(context.Background(), func(uow repo.UnitOfWork) error {
			var err error
			empty, err = uow.Summary(context.Background(), since)
			return err
		}))
		assert.Equal(t, repo.Summary{}, empty)

		a := create(t, store, models.Product{Name: "A", SKU: "A", StockLevel: 4, Price: f64Ptr(2.5)})
		create(t, store, models.Product{Name: "B", SKU: "B", StockLevel: 10, Price: f64Ptr(1)})
		create(t, store, models.Product{Name: "C", SKU: "C", StockLevel: 2})

		require.NoError(t, store.WithTx(context.Background(), func(uow repo.UnitOfWork) error {
			for _, at := range []time.Time{now, since, since.Add(-time.Minute)} {
				if _, err := uow.Restocks().Log(context.Background(), a.ID, 1, at); err != nil {
					return err
				}
			}
			return nil
		}))

		var summary repo.Summary
		require.NoError(t, store.WithTx(context.Background(), func(uow repo.UnitOfWork) error {
			var err error
			summary, err = uow.Summary(context.Background(), since)
			return err
		}))

		assert.Equal(t, 3, summary.TotalProducts)
		assert.InDelta(t, 20.0, summary.TotalValue, 1e-9)
		assert.Equal(t, 2, summary.LowStockProducts)
		assert.Equal(t, 2, summary.RestocksPending)
	})
}

func TestStore_WithTxRollsBackOnError(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repo.Store) {
		p := create(t, store, models.Product{Name: "Bolt", SKU: "B-1", StockLevel: 5})
		boom := errors.New("boom")

		err := store.WithTx(context.Background(), func(uow repo.UnitOfWork) error {
			locked, err := uow.Products().GetByIDForUpdate(context.Background(), p.ID)
			if err != nil {
				return err
			}
			locked.StockLevel += 10
			if _, err := uow.Products().Update(context.Background(), locked); err != nil {
				return err
			}
			if _, err := uow.Restocks().Log(context.Background(), p.ID, 10, time.Now()); err != nil {
				return err
			}
			if _, err := uow.Products().Create(context.Background(), models.Product{Name: "New", SKU: "NEW"}); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		fetched, err := get(t, store, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, fetched.StockLevel)
		assert.Empty(t, restockLogs(t, store))

		var all []models.Product
		require.NoError(t, store.WithTx(context.Background(), func(uow repo.UnitOfWork) error {
			var err error
			all, err = uow.Products().GetAll(context.Background())
			return err
		}))
		assert.Len(t, all, 1)
	})
}

func TestStore_ConcurrentRestocks(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repo.Store) {
		p := create(t, store, models.Product{Name: "Screw", SKU: "S-1"})

		const n = 25
		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- store.WithTx(context.Background(), func(uow repo.UnitOfWork) error {
					locked, err := uow.Products().GetByIDForUpdate(context.Background(), p.ID)
					if err != nil {
						return err
					}
					locked.StockLevel++
					if _, err := uow.Products().Update(context.Background(), locked); err != nil {
						return err
					}
					_, err = uow.Restocks().Log(context.Background(), p.ID, 1, time.Now())
					return err
				})
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}
		fetched, err := get(t, store, p.ID)
		require.NoError(t, err)
		assert.Equal(t, n, fetched.StockLevel)
		assert.Len(t, restockLogs(t, store), n)
	})
}
