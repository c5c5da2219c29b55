package handlers

import (
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rogerio-castellano/shop-inventory/internal/observability"
	"github.com/rogerio-castellano/shop-inventory/internal/repo"
)

// Server holds the dependencies shared by every handler. It carries no
// per-request state; each handler opens its own unit of work on the store.
type Server struct {
	store     repo.Store
	logger    *slog.Logger
	metrics   *observability.Metrics
	validator *validator.Validate
	now       func() time.Time
}

type Option func(*Server)

// WithMetrics makes the handlers report domain metrics such as restocks.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithClock overrides the time source used for restock timestamps and the
// pending-restock window.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func NewServer(store repo.Store, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		store:     store,
		logger:    logger,
		validator: newValidator(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
