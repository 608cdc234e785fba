package main

import (
	"fmt"
	"net/http"

	"shopmesh/internal/client"
	"shopmesh/internal/config"
	"shopmesh/internal/database"
	"shopmesh/internal/logger"
	"shopmesh/internal/repository"
	"shopmesh/internal/resilience"
	"shopmesh/internal/server"
	"shopmesh/internal/service"
	"shopmesh/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewForService("shipping-api", cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting shipping API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	dbService, err := database.New(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	db := dbService.DB()

	health := dbService.Health()
	log.Info("Database health check", zap.Any("health", health))

	if err := database.RunMigrations(db, "migrations", log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	orderItemRepo := repository.NewOrderItemRepository(db)

	productClient := client.NewProductClient(cfg.Services.ProductBaseURL, client.DefaultTimeout)
	orderClient := client.NewOrderClient(cfg.Services.OrderBaseURL, client.DefaultTimeout)
	executor := resilience.New(config.NewResilienceProvider(), log)
	features := config.NewFeatures()

	orderItemService := service.NewOrderItemService(orderItemRepo, productClient, orderClient, features, executor, log)

	orderItemHandler := transport.NewOrderItemHandler(orderItemService, log)

	srv := server.New(cfg, log, db, redisClient, func(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
		orderItemHandler.RegisterRoutes(r, authMiddleware)
	})

	if err := server.Run(srv, log); err != nil {
		log.Fatal("HTTP server error", zap.Error(err))
	}
}
