package repo

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rogerio-castellano/shop-inventory/internal/models"
)

type memoryState struct {
	products      []models.Product
	restocks      []models.RestockLog
	nextProductID int
	nextRestockID int
}

func (s memoryState) clone() memoryState {
	return memoryState{
		products:      slices.Clone(s.products),
		restocks:      slices.Clone(s.restocks),
		nextProductID: s.nextProductID,
		nextRestockID: s.nextRestockID,
	}
}

// InMemoryStore is an in-memory implementation of Store.
// Units of work are serialized and run against a private copy of the state,
// which replaces the shared state only when the work succeeds.
type InMemoryStore struct {
	mu    sync.Mutex
	state memoryState
}

// NewInMemoryStore creates a new, empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		state: memoryState{
			products:      []models.Product{},
			restocks:      []models.RestockLog{},
			nextProductID: 1,
			nextRestockID: 1,
		},
	}
}

func (s *InMemoryStore) WithTx(ctx context.Context, fn func(UnitOfWork) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.state.clone()
	uow := &memoryUnitOfWork{state: &work}
	if err := fn(uow); err != nil {
		return err
	}

	s.state = work
	return nil
}

func (s *InMemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

type memoryUnitOfWork struct {
	state *memoryState
}

func (u *memoryUnitOfWork) Products() ProductRepository {
	return &InMemoryProductRepository{state: u.state}
}

func (u *memoryUnitOfWork) Restocks() RestockRepository {
	return &InMemoryRestockRepository{state: u.state}
}

// Summary implements UnitOfWork.
func (u *memoryUnitOfWork) Summary(ctx context.Context, since time.Time) (Summary, error) {
	m := Summary{TotalProducts: len(u.state.products)}

	for _, p := range u.state.products {
		m.TotalValue += p.Value()
		if p.IsLowStock() {
			m.LowStockProducts++
		}
	}

	for _, l := range u.state.restocks {
		if !l.Timestamp.Before(since) {
			m.RestocksPending++
		}
	}

	return m, nil
}
