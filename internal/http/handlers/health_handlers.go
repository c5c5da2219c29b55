package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

type HealthResponse struct {
	Status string `json:"status"`
}

// HealthHandler reports whether the store is reachable.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("health check failed", slog.Any("error", err))
		s.respond(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}
	s.respond(w, http.StatusOK, HealthResponse{Status: "ok"})
}
