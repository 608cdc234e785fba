package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"shopmesh/internal/config"
	"shopmesh/internal/database"
	custommiddleware "shopmesh/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RegisterRoutesFunc wires a service's handlers onto the shared
// router. The auth middleware is passed in so each handler decides
// which routes it protects.
type RegisterRoutesFunc func(r chi.Router, authMiddleware func(http.Handler) http.Handler)

// Server wraps http.Server with the resources it owns.
type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

// New builds a server with the shared middleware stack and the
// routes the caller registers. redisClient may be nil; rate limiting
// is skipped in that case.
func New(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client, registerRoutes RegisterRoutesFunc) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))

	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: 100,
			Window:            time.Minute,
			KeyPrefix:         cfg.Server.Name,
		}, logger))
	}

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{"status": "ok"}
		if db != nil {
			if version, err := database.SchemaVersion(db); err == nil {
				payload["schemaVersion"] = version
			}
		}
		custommiddleware.RespondWithJSON(w, http.StatusOK, payload)
	})

	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	registerRoutes(router, authMiddleware)

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
