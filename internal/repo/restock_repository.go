package repo

import (
	"context"
	"time"

	"github.com/rogerio-castellano/shop-inventory/internal/models"
)

type RestockRepository interface {
	Log(ctx context.Context, productID, quantity int, at time.Time) (models.RestockLog, error)
	GetAll(ctx context.Context) ([]models.RestockLog, error)
}
