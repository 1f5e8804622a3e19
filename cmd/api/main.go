package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"strikex/internal/captcha"
	"strikex/internal/config"
	"strikex/internal/coupon"
	"strikex/internal/database"
	"strikex/internal/events"
	"strikex/internal/handler"
	"strikex/internal/notify"
	"strikex/internal/payment"
	"strikex/internal/repository"
	"strikex/internal/router"
	"strikex/internal/service"
	"strikex/internal/session"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting strikex API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize session store
	rdb, err := database.NewRedisClient(ctx, cfg.Redis, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer rdb.Close()

	store := session.NewRedisStore(rdb, time.Duration(cfg.Redis.SessionTTL)*time.Second, logger)
	sessions := session.NewManager(store, cfg.Auth.SessionCookie, logger)

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	couponRepo := repository.NewCouponRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	addressRepo := repository.NewAddressRepository(pool, logger)
	adminRepo := repository.NewAdminRepository(pool, logger)
	apiKeyRepo := repository.NewAPIKeyRepository(pool, logger)

	// Initialize external collaborators
	provider := payment.NewStripeProvider(cfg.Stripe.SecretKey, logger)
	verifier := captcha.NewVerifier(cfg.Captcha.Secret, logger)
	notifier := notify.NewWebhookNotifier(cfg.Contact.WebhookURL, logger)
	evaluator := coupon.NewEvaluator(couponRepo, logger)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		kafkaPub := events.NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic, logger)
		kafkaPub.Start(context.Background())
		defer kafkaPub.Close()
		publisher = kafkaPub
		logger.Info().Strs("brokers", cfg.Events.Brokers).Str("topic", cfg.Events.Topic).Msg("order event publisher enabled")
	}

	// Initialize services
	cartService := service.NewCartService(cartRepo, productRepo, logger)
	checkoutService := service.NewCheckoutService(
		cartRepo, productRepo, orderRepo, userRepo, addressRepo,
		couponRepo, evaluator, provider, publisher, logger,
	)
	accountService := service.NewAccountService(orderRepo, addressRepo, logger)
	authService := service.NewAuthService(userRepo, cartService, verifier, logger)
	adminService := service.NewAdminService(adminRepo, userRepo, logger)
	catalogService := service.NewCatalogService(productRepo, logger)
	contactService := service.NewContactService(notifier, verifier, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Cart:     handler.NewCartHandler(cartService, logger),
		Coupon:   handler.NewCouponHandler(evaluator, cartService, sessions, logger),
		Checkout: handler.NewCheckoutHandler(checkoutService, sessions, logger),
		Webhook:  handler.NewWebhookHandler(checkoutService, cfg.Stripe.WebhookSecret, logger),
		Auth:     handler.NewAuthHandler(authService, sessions, logger),
		Account:  handler.NewAccountHandler(accountService, logger),
		Admin:    handler.NewAdminHandler(adminService, logger),
		Catalog:  handler.NewCatalogHandler(catalogService, logger),
		Contact:  handler.NewContactHandler(contactService, logger),
	}

	// Initialize router
	mux := router.New(handlers, sessions, cfg.Auth.APIKey, apiKeyRepo, logger)

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
