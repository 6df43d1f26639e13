package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/household-ledger/internal/api_gateway"
	"github.com/household-ledger/internal/api_gateway/service"
	"github.com/household-ledger/internal/config"
	"github.com/household-ledger/internal/data/postgres"
	"github.com/household-ledger/internal/ledger"
	"github.com/household-ledger/internal/logger"
	"github.com/household-ledger/internal/platform/messaging/producers"
	"github.com/household-ledger/internal/platform/persistence"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("api_gateway")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize database with app context, migrations run here when enabled
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	// Initialize Kafka producer for entry imports
	importProducer, err := producers.NewEntryImportProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize entry import Kafka producer", "error", err)
		postgresDB.Close()
		os.Exit(1)
	}

	// Initialize repositories and ledger services
	repos := postgres.NewRepositories(log, postgresDB)
	accountService := ledger.NewAccountService(log.With("service", "accounts"), postgresDB, repos)

	server := api_gateway.NewServer(log, cfg, api_gateway.Services{
		Accounts:   accountService,
		Entries:    ledger.NewEntryService(log.With("service", "entries"), postgresDB, repos),
		Categories: ledger.NewCategoryService(log.With("service", "categories"), postgresDB, repos),
		Sessions:   ledger.NewSessionService(log.With("service", "sessions"), postgresDB, repos),
		Imports:    service.NewImportService(log.With("service", "imports"), accountService, importProducer),
	})
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence, the server drains before the pool closes
	log.Info("Starting graceful shutdown...")

	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	if err = importProducer.Close(); err != nil {
		log.Error("Error closing Kafka producer", "error", err)
	}

	postgresDB.Close()

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
