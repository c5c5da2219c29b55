package handlers

import (
	"net/http"
	"time"

	"github.com/rogerio-castellano/shop-inventory/internal/repo"
)

// pendingWindow is how far back a restock still counts as pending on the dashboard.
const pendingWindow = 24 * time.Hour

// GetDashboardSummaryHandler godoc
// @Summary Dashboard summary
// @Description Totals across the inventory. restocksPending counts restock logs from the last 24 hours.
// @Tags dashboard
// @Produce json
// @Success 200 {object} DashboardSummaryResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard/summary [get]
func (s *Server) GetDashboardSummaryHandler(w http.ResponseWriter, r *http.Request) {
	since := s.now().Add(-pendingWindow)

	var summary repo.Summary
	err := s.store.WithTx(r.Context(), func(uow repo.UnitOfWork) error {
		var err error
		summary, err = uow.Summary(r.Context(), since)
		return err
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, DashboardSummaryResponse{
		TotalProducts:    summary.TotalProducts,
		TotalValue:       summary.TotalValue,
		LowStockProducts: summary.LowStockProducts,
		RestocksPending:  summary.RestocksPending,
	})
}
