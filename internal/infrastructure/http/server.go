package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	handlers "github.com/roomstays/payment-service/internal/adapter/handler/http"
	"github.com/roomstays/payment-service/internal/config"
	"github.com/roomstays/payment-service/internal/domain/cache"
	"github.com/roomstays/payment-service/internal/domain/gateway"
	"github.com/roomstays/payment-service/internal/domain/provider"
	"github.com/roomstays/payment-service/internal/infrastructure/database"
	"github.com/roomstays/payment-service/internal/middleware/auth"
	"github.com/roomstays/payment-service/internal/usecase"
	"go.uber.org/zap"
)

// Dependencies carries everything the server wires into its handlers.
type Dependencies struct {
	Repos    *database.Repositories
	Provider provider.PaymentProvider
	Cache    cache.Cache
	Bookings gateway.BookingGateway
	Email    *usecase.EmailService
}

type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	deps   Dependencies
}

func NewServer(cfg *config.Config, logger *zap.Logger, deps Dependencies) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))

	return &Server{
		config: cfg,
		logger: logger,
		echo:   e,
		deps:   deps,
	}
}

func (s *Server) Start() error {
	// Setup routes
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	// Initialize usecases
	accounts := usecase.NewAccountService(s.deps.Repos.Profiles, s.deps.Provider, s.deps.Cache, s.logger)
	cards := usecase.NewCardService(s.deps.Repos.Users, s.deps.Repos.Profiles, s.deps.Provider, s.logger)
	ledger := usecase.NewLedgerService(s.deps.Repos.Transactions, s.logger)
	checkout := usecase.NewCheckoutService(
		s.deps.Repos.Users,
		s.deps.Repos.Profiles,
		s.deps.Repos.Listings,
		s.deps.Provider,
		s.deps.Bookings,
		ledger,
		s.deps.Email,
		s.logger,
	)

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(accounts, s.logger)
	cardHandler := handlers.NewCardHandler(cards, s.logger)
	checkoutHandler := handlers.NewCheckoutHandler(checkout, ledger, s.logger)

	// JWT middleware configuration
	jwtConfig := auth.JWTConfig{
		Secret: s.config.Service.JWTSecret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
		},
	}

	// API v1 routes, all behind authentication
	v1 := s.echo.Group("/api/v1", auth.JWTMiddleware(jwtConfig))

	users := v1.Group("/users/:userId")
	users.GET("/account", accountHandler.GetAccount)
	users.POST("/account", accountHandler.CreateAccount)
	users.DELETE("/account", accountHandler.DeleteAccount)

	users.GET("/customer", cardHandler.GetCustomer)
	users.GET("/cards", cardHandler.GetCards)
	users.POST("/cards", cardHandler.AddCard)
	users.DELETE("/cards/:cardId", cardHandler.RemoveCard)
	users.PUT("/cards/:cardId/default", cardHandler.UpdateDefaultCard)

	bookings := v1.Group("/bookings/:bookingId")
	bookings.POST("/payment", checkoutHandler.DoPayment)
	bookings.GET("/transactions", checkoutHandler.GetTransactions)
}
