package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/shop-inventory/internal/models"
	"github.com/rogerio-castellano/shop-inventory/internal/repo"
)

// GetProductsHandler godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Failure 500 {object} ErrorResponse
// @Router /products [get]
func (s *Server) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	var products []models.Product
	err := s.store.WithTx(r.Context(), func(uow repo.UnitOfWork) error {
		var err error
		products, err = uow.Products().GetAll(r.Context())
		return err
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, toProductResponses(products))
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the inventory. stock_level defaults to 0.
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "SKU already in use"
// @Router /products [post]
func (s *Server) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	product := models.Product{
		Name:     req.Name,
		SKU:      req.SKU,
		Category: req.Category.Value,
		Price:    req.Price.Value,
		Cost:     req.Cost.Value,
	}
	if req.StockLevel != nil {
		product.StockLevel = *req.StockLevel
	}

	var created models.Product
	err := s.store.WithTx(r.Context(), func(uow repo.UnitOfWork) error {
		var err error
		created, err = uow.Products().Create(r.Context(), product)
		return err
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusCreated, toProductResponse(created))
}

// GetProductByIdHandler godoc
// @Summary Get a product by id
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{id} [get]
func (s *Server) GetProductByIdHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		s.respondError(w, r, repo.ErrProductNotFound)
		return
	}

	var product models.Product
	err := s.store.WithTx(r.Context(), func(uow repo.UnitOfWork) error {
		var err error
		product, err = uow.Products().GetByID(r.Context(), id)
		return err
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, toProductResponse(product))
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Replaces name and sku. Omitted optional fields keep their current value; an explicit null clears category, price or cost.
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Product fields"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "SKU already in use"
// @Router /products/{id} [put]
func (s *Server) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		s.respondError(w, r, repo.ErrProductNotFound)
		return
	}

	var req ProductRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	var updated models.Product
	err := s.store.WithTx(r.Context(), func(uow repo.UnitOfWork) error {
		existing, err := uow.Products().GetByIDForUpdate(r.Context(), id)
		if err != nil {
			return err
		}
		applyProductRequest(&existing, req)
		updated, err = uow.Products().Update(r.Context(), existing)
		return err
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, toProductResponse(updated))
}

func applyProductRequest(p *models.Product, req ProductRequest) {
	p.Name = req.Name
	p.SKU = req.SKU
	if req.StockLevel != nil {
		p.StockLevel = *req.StockLevel
	}
	if req.Category.Set {
		p.Category = req.Category.Value
	}
	if req.Price.Set {
		p.Price = req.Price.Value
	}
	if req.Cost.Set {
		p.Cost = req.Cost.Value
	}
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Param id path int true "Product ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Product has restock history"
// @Router /products/{id} [delete]
func (s *Server) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		s.respondError(w, r, repo.ErrProductNotFound)
		return
	}

	err := s.store.WithTx(r.Context(), func(uow repo.UnitOfWork) error {
		return uow.Products().Delete(r.Context(), id)
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetLowStockProductsHandler godoc
// @Summary List products below the low-stock threshold
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/low-stock [get]
func (s *Server) GetLowStockProductsHandler(w http.ResponseWriter, r *http.Request) {
	var products []models.Product
	err := s.store.WithTx(r.Context(), func(uow repo.UnitOfWork) error {
		var err error
		products, err = uow.Products().LowStock(r.Context(), models.LowStockThreshold)
		return err
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, toProductResponses(products))
}

// GetAnalyticsHandler godoc
// @Summary Analytics placeholder
// @Tags products
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /products/analytics [get]
func (s *Server) GetAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, MessageResponse{Message: "Analytics data will be here."})
}
