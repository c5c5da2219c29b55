package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/shop-inventory/internal/config"
	"github.com/rogerio-castellano/shop-inventory/internal/db"
	"github.com/rogerio-castellano/shop-inventory/internal/http/ban"
	"github.com/rogerio-castellano/shop-inventory/internal/http/handlers"
	rl "github.com/rogerio-castellano/shop-inventory/internal/http/rate_limiter"
	"github.com/rogerio-castellano/shop-inventory/internal/http/router"
	"github.com/rogerio-castellano/shop-inventory/internal/logger"
	"github.com/rogerio-castellano/shop-inventory/internal/observability"
	"github.com/rogerio-castellano/shop-inventory/internal/redissvc"
	"github.com/rogerio-castellano/shop-inventory/internal/repo"
)

// @title Shop Inventory API
// @version 1.0
// @description REST API for managing shop products, restocks and the inventory dashboard.
// @host localhost:5000
// @BasePath /api
func main() {
	configPath := flag.String("config", "", "path to a config file (defaults to ./config.*)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	store, closeStore, err := openStore(ctx, cfg.Database)
	if err != nil {
		log.Error("❌ could not open store", slog.String("driver", cfg.Database.Driver), slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()

	var bans *ban.List
	if cfg.Redis.Addr != "" {
		rdb, err := redissvc.Connect(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Error("❌ could not connect to Redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer closeRedis(rdb, log)
		bans = ban.NewList(rdb, cfg.Ban.Strikes, cfg.Ban.Duration, log)
	}

	var limiter *rl.Limiter
	if cfg.RateLimit.RPS > 0 {
		limiter = rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	metrics := observability.NewMetrics()
	server := handlers.NewServer(store, log, handlers.WithMetrics(metrics))
	r := router.NewRouter(server, router.Options{
		Logger:        log,
		Metrics:       metrics,
		Limiter:       limiter,
		Bans:          bans,
		AllowedOrigin: cfg.CORS.AllowedOrigin,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("✅ server running", slog.String("addr", cfg.Server.Addr), slog.String("driver", cfg.Database.Driver))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown", slog.Any("error", err))
	}
}

// openStore builds the store for the configured driver and returns a function
// releasing its resources.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (repo.Store, func(), error) {
	if cfg.Driver == config.DriverMemory {
		return repo.NewInMemoryStore(), func() {}, nil
	}

	database, err := db.Connect(ctx, cfg.Driver, cfg.URL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.EnsureSchema(ctx, database); err != nil {
		database.Close()
		return nil, nil, err
	}
	return repo.NewSQLStore(database), func() { database.Close() }, nil
}

func closeRedis(rdb *redis.Client, log *slog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Warn("redis close", slog.Any("error", err))
	}
}
