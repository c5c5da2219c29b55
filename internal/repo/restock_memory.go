package repo

import (
	"context"
	"time"

	"github.com/rogerio-castellano/shop-inventory/internal/models"
)

type InMemoryRestockRepository struct {
	state *memoryState
}

// Log inserts a new restock entry
func (r *InMemoryRestockRepository) Log(ctx context.Context, productID, quantity int, at time.Time) (models.RestockLog, error) {
	known := false
	for _, p := range r.state.products {
		if p.ID == productID {
			known = true
			break
		}
	}
	if !known {
		return models.RestockLog{}, ErrUnknownProduct
	}

	entry := models.RestockLog{
		ID:        r.state.nextRestockID,
		ProductID: productID,
		Quantity:  quantity,
		Timestamp: at.UTC(),
	}
	r.state.nextRestockID++
	r.state.restocks = append(r.state.restocks, entry)
	return entry, nil
}

func (r *InMemoryRestockRepository) GetAll(ctx context.Context) ([]models.RestockLog, error) {
	logs := make([]models.RestockLog, len(r.state.restocks))
	copy(logs, r.state.restocks)
	return logs, nil
}
