package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/roomstays/payment-service/internal/config"
	"github.com/roomstays/payment-service/internal/infrastructure/cache"
	"github.com/roomstays/payment-service/internal/infrastructure/database"
	"github.com/roomstays/payment-service/internal/infrastructure/gateway/booking"
	httpServer "github.com/roomstays/payment-service/internal/infrastructure/http"
	"github.com/roomstays/payment-service/internal/infrastructure/provider/stripe"
	"github.com/roomstays/payment-service/internal/logger"
	"github.com/roomstays/payment-service/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// Run database migrations
	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize repositories
	repos := database.NewRepositories(db, zapLogger)

	// Initialize account cache
	redisCache, err := cache.NewRedisCache(&cfg.Redis, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer func() {
		if err := redisCache.Close(); err != nil {
			zapLogger.Error("Failed to close redis connection", zap.Error(err))
		}
	}()

	// Initialize payment provider and upstream clients
	paymentProvider := stripe.NewStripeProvider(cfg.Service.StripeSecretKey, zapLogger)
	bookingGateway := booking.NewClient(cfg.Service.BookingAPIURL, zapLogger)

	var emailService *usecase.EmailService
	if cfg.Service.EmailsAPIURL != "" {
		emailService = usecase.NewEmailService(cfg.Service.EmailsAPIURL, zapLogger)
	}

	// Initialize HTTP server
	httpSrv := httpServer.NewServer(cfg, zapLogger, httpServer.Dependencies{
		Repos:    repos,
		Provider: paymentProvider,
		Cache:    redisCache,
		Bookings: bookingGateway,
		Email:    emailService,
	})

	go func() {
		if err := httpSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Server shut down successfully")
}
