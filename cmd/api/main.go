package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shop-checkout/internal/cart"
	"shop-checkout/internal/checkout"
	"shop-checkout/internal/config"
	"shop-checkout/internal/database"
	"shop-checkout/internal/handler"
	"shop-checkout/internal/orderapi"
	"shop-checkout/internal/refdata"
	"shop-checkout/internal/router"
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
	logger.Info().Msg("starting shop-checkout API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the reference data provider from the configured source
	var provider refdata.Provider

	switch cfg.RefData.Source {
	case config.RefDataSourcePostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		provider = refdata.NewPostgresProvider(pool, logger)

	case config.RefDataSourceDataset:
		fileLoader := refdata.NewFileLoader(logger)
		var s3Loader refdata.Loader

		if cfg.RefData.S3.Enabled {
			s3Loader, err = refdata.NewS3Loader(ctx, cfg.RefData.S3.Bucket, cfg.RefData.S3.Region, logger)
			if err != nil {
				logger.Warn().
					Err(err).
					Msg("failed to initialise S3 loader, falling back to local file system only")
				s3Loader = nil
			}
		} else {
			logger.Info().Msg("using local file system for reference data files (S3 disabled)")
		}

		loader := refdata.NewFallbackLoader(s3Loader, fileLoader, cfg.RefData.S3.Prefix, cfg.RefData.S3.Enabled, logger)

		datasetCfg := refdata.DatasetConfig{
			CountriesPath: cfg.RefData.CountriesPath,
			StatesPath:    cfg.RefData.StatesPath,
		}
		provider, err = refdata.NewDatasetProvider(ctx, datasetCfg, loader, logger)
		if err != nil {
			return fmt.Errorf("failed to load reference data datasets: %w", err)
		}

	default:
		return fmt.Errorf("unknown reference data source: %s", cfg.RefData.Source)
	}

	// Initialize order API client
	orderClient := orderapi.NewClient(cfg.OrderAPI.BaseURL, time.Duration(cfg.OrderAPI.TimeoutSeconds)*time.Second, logger)

	// Each checkout session gets its own cart and route recorder
	sessions := checkout.NewManager(func() *checkout.Orchestrator {
		return checkout.New(checkout.Deps{
			RefData:      provider,
			Cart:         cart.NewStore(logger),
			Orders:       orderClient,
			Nav:          &checkout.RouteRecorder{},
			CatalogRoute: cfg.Checkout.CatalogRoute,
			Logger:       logger,
		})
	}, logger)

	// Initialize HTTP handlers
	refDataHandler := handler.NewRefDataHandler(provider, logger)
	checkoutHandler := handler.NewCheckoutHandler(sessions, logger)

	// Initialize router
	mux := router.New(refDataHandler, checkoutHandler, cfg.Auth.APIKey, logger)

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

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
