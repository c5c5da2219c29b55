package handlers

import (
	"time"

	"github.com/rogerio-castellano/shop-inventory/internal/models"
)

// ProductRequest is the body of create and update. stock_level is a pointer so
// that an omitted level can be told apart from zero. The nullable columns also
// record whether the field was sent, so that an explicit null clears them.
type ProductRequest struct {
	Name       string            `json:"name" validate:"required,max=100"`
	SKU        string            `json:"sku" validate:"required,max=50"`
	StockLevel *int              `json:"stock_level,omitempty" validate:"omitempty,min=-2147483648,max=2147483647"`
	Category   Nullable[string]  `json:"category,omitzero" validate:"omitempty,max=50" swaggertype:"string"`
	Price      Nullable[float64] `json:"price,omitzero" swaggertype:"number"`
	Cost       Nullable[float64] `json:"cost,omitzero" swaggertype:"number"`
}

type ProductResponse struct {
	Id                int      `json:"id"`
	Name              string   `json:"name"`
	SKU               string   `json:"sku"`
	StockLevel        int      `json:"stock_level"`
	Category          *string  `json:"category"`
	Price             *float64 `json:"price"`
	Cost              *float64 `json:"cost"`
	LowStockThreshold int      `json:"lowStockThreshold"`
}

type RestockRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=-2147483648,max=2147483647"` // can be positive or negative
}

type RestockLogResponse struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Timestamp string `json:"timestamp"`
}

type DashboardSummaryResponse struct {
	TotalProducts    int     `json:"totalProducts"`
	TotalValue       float64 `json:"totalValue"`
	LowStockProducts int     `json:"lowStockProducts"`
	RestocksPending  int     `json:"restocksPending"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Id:                p.ID,
		Name:              p.Name,
		SKU:               p.SKU,
		StockLevel:        p.StockLevel,
		Category:          p.Category,
		Price:             p.Price,
		Cost:              p.Cost,
		LowStockThreshold: models.LowStockThreshold,
	}
}

func toProductResponses(products []models.Product) []ProductResponse {
	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	return response
}

// toRestockLogResponse renders the timestamp as an RFC 3339 (ISO-8601) string in UTC.
func toRestockLogResponse(l models.RestockLog) RestockLogResponse {
	return RestockLogResponse{
		ID:        l.ID,
		ProductID: l.ProductID,
		Quantity:  l.Quantity,
		Timestamp: l.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}
