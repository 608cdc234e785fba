package main

import (
	"fmt"
	"net/http"

	"shopmesh/internal/config"
	"shopmesh/internal/database"
	"shopmesh/internal/logger"
	"shopmesh/internal/repository"
	"shopmesh/internal/server"
	"shopmesh/internal/service"
	"shopmesh/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewForService("product-api", cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting product API",
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

	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	productService := service.NewProductService(productRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)

	productHandler := transport.NewProductHandler(productService, log)
	categoryHandler := transport.NewCategoryHandler(categoryService, log)

	srv := server.New(cfg, log, db, redisClient, func(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
		productHandler.RegisterRoutes(r, authMiddleware)
		categoryHandler.RegisterRoutes(r, authMiddleware)
	})

	if err := server.Run(srv, log); err != nil {
		log.Fatal("HTTP server error", zap.Error(err))
	}
}
