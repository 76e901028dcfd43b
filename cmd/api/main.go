package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"rabbit-catalog/internal/config"
	"rabbit-catalog/internal/database"
	"rabbit-catalog/internal/logger"
	"rabbit-catalog/internal/repository"
	"rabbit-catalog/internal/server"
	"rabbit-catalog/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// In-flight requests get 30 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	done <- true
}

func main() {
	// Environment variables win over .env entries; missing .env is fine
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting rabbit catalog API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	var db *sql.DB
	if cfg.Database.Configured() {
		db, err = database.New(cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}

		log.Info("Database health check", zap.Any("health", database.Health(db)))

		if err := database.RunMigrations(db, "migrations", log); err != nil {
			log.Fatal("Failed to run migrations", zap.Error(err))
		}
		log.Info("Database migrations completed successfully")

		if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
			userService := service.NewUserService(
				repository.NewUserRepository(db),
				repository.NewRefreshTokenRepository(db),
				cfg.JWT.Secret,
			)
			if err := userService.EnsureAdmin(context.Background(), cfg.Admin.Email, cfg.Admin.Password); err != nil {
				log.Fatal("Failed to provision admin account", zap.Error(err))
			}
			log.Info("Admin account provisioned", zap.String("email", cfg.Admin.Email))
		}
	}

	srv, err := server.NewServer(cfg, log, db)
	if err != nil {
		log.Fatal("Failed to build server", zap.Error(err))
	}

	done := make(chan bool, 1)

	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	<-done
	log.Info("Graceful shutdown complete")
}
