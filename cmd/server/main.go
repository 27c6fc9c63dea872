package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dias221467/DevConnect/internal/config"
	"github.com/Dias221467/DevConnect/internal/database"
	"github.com/Dias221467/DevConnect/internal/handlers"
	"github.com/Dias221467/DevConnect/internal/repository"
	"github.com/Dias221467/DevConnect/internal/services"
	"github.com/Dias221467/DevConnect/pkg/logger"
	"github.com/Dias221467/DevConnect/pkg/middleware"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file and the environment
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.Fatalf("Configuration error: %v", err)
	}

	logger.InitLogger(cfg.LogLevel, cfg.LogFile)
	logger.Log.Info("Logger initialized")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.ConnectDB(cfg)
	if err != nil {
		logger.Log.Fatalf("Database connection error: %v", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Client().Disconnect(disconnectCtx); err != nil {
			logger.Log.WithError(err).Error("Failed to disconnect from MongoDB")
		}
	}()

	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = database.EnsureIndexes(indexCtx, db)
	cancel()
	if err != nil {
		logger.Log.Fatalf("Index creation error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	connectionRepo := repository.NewConnectionRepository(db)

	// --- Services ---
	svc := handlers.Services{
		Users:       services.NewUserService(userRepo),
		Requests:    services.NewRequestService(connectionRepo, userRepo),
		Connections: services.NewConnectionService(connectionRepo, userRepo),
		Feed:        services.NewFeedService(connectionRepo, userRepo),
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustProxy)
	go limiter.Run(ctx.Done(), time.Minute, 10*time.Minute)

	router := handlers.NewRouter(cfg, svc, limiter)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Log.Infof("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down server")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("Graceful shutdown failed")
	}
}
