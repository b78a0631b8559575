package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kartpay/internal/config"
	"kartpay/internal/database"
	"kartpay/internal/handler"
	"kartpay/internal/repository"
	"kartpay/internal/router"
	"kartpay/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting kartpay API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	paymentRepo := repository.NewPaymentRepository(pool, logger)
	cardTokenRepo := repository.NewCardTokenRepository(pool, logger)
	auditRepo := repository.NewAuditRepository(pool, logger)

	// Initialize services
	auditService := service.NewAuditService(auditRepo, logger)
	emailSender := service.NewEmailSender(cfg.Email, auditService, logger)
	customerService := service.NewCustomerService(customerRepo, auditService, logger)
	productService := service.NewProductService(productRepo, logger)
	cartService := service.NewCartService(orderRepo, productRepo, customerRepo, logger)
	checkoutService := service.NewCheckoutService(orderRepo, paymentRepo, customerRepo, productRepo, auditService, emailSender, cfg.Payment, logger)
	tokenizationService := service.NewTokenizationService(cardTokenRepo, auditService, cfg.Tokenization, logger)

	// Initialize HTTP handlers
	customerHandler := handler.NewCustomerHandler(customerService, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	orderHandler := handler.NewOrderHandler(cartService, logger)
	paymentHandler := handler.NewPaymentHandler(checkoutService, logger)
	tokenizationHandler := handler.NewTokenizationHandler(tokenizationService, logger)
	auditHandler := handler.NewAuditHandler(auditService, logger)

	// Initialize router
	mux := router.New(
		customerHandler,
		productHandler,
		orderHandler,
		paymentHandler,
		tokenizationHandler,
		auditHandler,
		cfg.Auth,
		logger,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
