package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agentmart/agentmart/internal/api"
	"github.com/agentmart/agentmart/internal/auth"
	"github.com/agentmart/agentmart/internal/config"
	"github.com/agentmart/agentmart/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	if err := config.Load(); err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	// Without DATABASE_URL the server still starts, backed by the
	// degrade-to-empty store family: reads come back empty and writes
	// surface as unavailable.
	var pool *pgxpool.Pool
	stores := store.NewNull(logger)

	if dbURL := config.DatabaseURL(); dbURL != "" {
		p, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		if err := p.Ping(ctx); err != nil {
			logger.Fatal("failed to ping database", zap.Error(err))
		}
		logger.Info("connected to database")
		pool = p
		defer pool.Close()
		stores = store.New(pool, config.OwnerOpenID())
	} else {
		logger.Warn("DATABASE_URL not set, running with empty stores")
	}

	secret := config.SessionSecret()
	if secret == "" {
		secret = uuid.NewString()
		logger.Warn("SESSION_SECRET not set, using ephemeral secret")
	}
	sessions := auth.NewSessions(secret)

	app := api.NewApp(stores, pool, sessions, logger)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: app.Router,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
