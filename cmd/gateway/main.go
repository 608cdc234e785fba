package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"shopmesh/internal/config"
	"shopmesh/internal/gateway"
	"shopmesh/internal/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	gatewayCfg := config.LoadGateway()

	log, err := logger.NewForService("gateway", cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting API gateway",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	gw, err := gateway.New(gatewayCfg, cfg.JWT.Secret, log)
	if err != nil {
		log.Fatal("Failed to build gateway", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      gw,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	done := make(chan bool, 1)
	go func() {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		log.Info("Shutting down gracefully, press Ctrl+C again to force")
		stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server forced to shutdown", zap.Error(err))
		}

		done <- true
	}()

	log.Info("Gateway listening", zap.String("addr", srv.Addr))

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	<-done
	log.Info("Graceful shutdown complete")
}
