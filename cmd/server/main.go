package main

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"ecommerce-be/internal/cart"
	"ecommerce-be/internal/config"
	"ecommerce-be/internal/db"
	"ecommerce-be/internal/graph"
	"ecommerce-be/internal/logger"
	"ecommerce-be/internal/metrics"
	"ecommerce-be/internal/middleware"

	"github.com/99designs/gqlgen/graphql/playground"
	"go.uber.org/zap"
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	limiter := middleware.NewRateLimiter()
	defer limiter.Stop()

	logger.L().Info("GraphQL server running",
		zap.String("url", "http://localhost:"+cfg.AppPort+"/"),
		zap.String("env", cfg.AppEnv),
	)

	return startServerFunc(":"+cfg.AppPort, newServer(cfg, database, limiter))
}

// newServer wires storage, service and GraphQL into the HTTP middleware chain.
func newServer(cfg *config.Config, database *sql.DB, limiter *middleware.RateLimiter) http.Handler {
	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo)

	resolver := &graph.Resolver{
		CartSvc: cartSvc,
	}

	router := setupRouter(graph.NewServer(resolver))

	var h http.Handler = router
	h = limiter.Middleware(h)
	h = middleware.AuthMiddleware(h)
	h = middleware.CORS(cfg.CORSOrigin, h)
	h = logger.LoggingMiddleware(h)
	h = logger.RequestIDMiddleware(h)

	return h
}

func setupRouter(gql http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/", playground.Handler("GraphQL Playground", "/query"))
	mux.Handle("/query", gql)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(metrics.Cart.Snapshot())
	})

	return mux
}
