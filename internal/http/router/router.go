package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/shop-inventory/docs"
	"github.com/rogerio-castellano/shop-inventory/internal/http/ban"
	"github.com/rogerio-castellano/shop-inventory/internal/http/handlers"
	mw "github.com/rogerio-castellano/shop-inventory/internal/http/middleware"
	rl "github.com/rogerio-castellano/shop-inventory/internal/http/rate_limiter"
	"github.com/rogerio-castellano/shop-inventory/internal/observability"
)

// Route is one entry of the API route table. Patterns are relative to /api.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Routes returns the API route table. It is built once and never changed
// after the router is constructed.
func Routes(s *handlers.Server) []Route {
	return []Route{
		{http.MethodGet, "/products", s.GetProductsHandler},
		{http.MethodPost, "/products", s.CreateProductHandler},
		{http.MethodGet, "/products/low-stock", s.GetLowStockProductsHandler},
		{http.MethodGet, "/products/analytics", s.GetAnalyticsHandler},
		{http.MethodGet, "/products/{id:[0-9]+}", s.GetProductByIdHandler},
		{http.MethodPut, "/products/{id:[0-9]+}", s.UpdateProductHandler},
		{http.MethodDelete, "/products/{id:[0-9]+}", s.DeleteProductHandler},
		{http.MethodPost, "/products/{id:[0-9]+}/restock", s.RestockProductHandler},
		{http.MethodGet, "/restocks", s.GetRestocksHandler},
		{http.MethodGet, "/dashboard/summary", s.GetDashboardSummaryHandler},
	}
}

type Options struct {
	Logger        *slog.Logger
	Metrics       *observability.Metrics
	Limiter       *rl.Limiter
	Bans          *ban.List
	AllowedOrigin string
}

func NewRouter(s *handlers.Server, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(opts.Metrics.Middleware)
	r.Use(mw.SecureHeaders())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", s.HealthHandler)
	r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{opts.AllowedOrigin},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			MaxAge:         300,
		}))
		api.Use(mw.RateLimit(opts.Limiter, opts.Bans, logger))

		for _, route := range Routes(s) {
			api.Method(route.Method, route.Pattern, route.Handler)
		}
	})

	return r
}
