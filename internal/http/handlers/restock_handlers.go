package handlers

import (
	"log/slog"
	"net/http"

	"github.com/rogerio-castellano/shop-inventory/internal/models"
	"github.com/rogerio-castellano/shop-inventory/internal/repo"
)

// RestockProductHandler godoc
// @Summary Restock a product
// @Description Adds quantity (which may be negative) to the stock level and records a restock log in the same transaction.
// @Tags restocks
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param restock body RestockRequest true "Quantity to add"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{id}/restock [post]
func (s *Server) RestockProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		s.respondError(w, r, repo.ErrProductNotFound)
		return
	}

	var req RestockRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	quantity := *req.Quantity

	var product models.Product
	err := s.store.WithTx(r.Context(), func(uow repo.UnitOfWork) error {
		p, err := uow.Products().GetByIDForUpdate(r.Context(), id)
		if err != nil {
			return err
		}
		level := int64(p.StockLevel) + int64(quantity)
		if level < models.MinStockLevel || level > models.MaxStockLevel {
			return repo.ErrStockOutOfRange
		}
		p.StockLevel = int(level)
		if product, err = uow.Products().Update(r.Context(), p); err != nil {
			return err
		}
		_, err = uow.Restocks().Log(r.Context(), id, quantity, s.now())
		return err
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.metrics.RecordRestock(quantity)
	if product.IsLowStock() {
		s.logger.Warn("product below low-stock threshold",
			slog.Int("product_id", product.ID),
			slog.String("sku", product.SKU),
			slog.Int("stock_level", product.StockLevel),
			slog.Int("threshold", models.LowStockThreshold),
		)
	}

	s.respond(w, http.StatusOK, toProductResponse(product))
}

// GetRestocksHandler godoc
// @Summary List restock logs
// @Tags restocks
// @Produce json
// @Success 200 {array} RestockLogResponse
// @Failure 500 {object} ErrorResponse
// @Router /restocks [get]
func (s *Server) GetRestocksHandler(w http.ResponseWriter, r *http.Request) {
	var logs []models.RestockLog
	err := s.store.WithTx(r.Context(), func(uow repo.UnitOfWork) error {
		var err error
		logs, err = uow.Restocks().GetAll(r.Context())
		return err
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	response := make([]RestockLogResponse, len(logs))
	for i, l := range logs {
		response[i] = toRestockLogResponse(l)
	}
	s.respond(w, http.StatusOK, response)
}
