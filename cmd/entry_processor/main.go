package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/household-ledger/internal/config"
	"github.com/household-ledger/internal/data/postgres"
	"github.com/household-ledger/internal/entry_processor/components"
	"github.com/household-ledger/internal/entry_processor/consumer"
	"github.com/household-ledger/internal/entry_processor/service"
	"github.com/household-ledger/internal/ledger"
	"github.com/household-ledger/internal/logger"
	"github.com/household-ledger/internal/platform/messaging/consumers"
	"github.com/household-ledger/internal/platform/messaging/producers"
	"github.com/household-ledger/internal/platform/persistence"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("entry_processor")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	log.Info("Starting Entry Processor",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
	)

	// Initialize database with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	// Initialize Kafka DLQ producer, nil when no DLQ topic is configured
	dlqProducer, err := producers.NewDLQProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize DLQ Kafka producer", "error", err)
		postgresDB.Close()
		os.Exit(1)
	}
	var deadLetters producers.DeadLetterPublisher
	if dlqProducer != nil {
		deadLetters = dlqProducer
	}

	// Initialize processing service backed by the ledger
	repos := postgres.NewRepositories(log, postgresDB)
	entryService := ledger.NewEntryService(log.With("service", "entries"), postgresDB, repos)
	processingService := components.CreateProcessingService(entryService, log, cfg)

	// Initialize import event handler and Kafka consumer
	importEventHandler := consumer.NewImportEventHandler(log, processingService, deadLetters)
	kafkaConsumer := consumers.NewKafkaConsumer(appCtx, log, &cfg.Kafka)

	log.Info("Starting Kafka consumer",
		"topic", cfg.Kafka.ImportTopic,
		"group", cfg.Kafka.ConsumerGroup,
	)
	if err := kafkaConsumer.Subscribe(appCtx, importEventHandler.HandleMessage); err != nil {
		log.Error("Failed to subscribe to import topic", "error", err)
		postgresDB.Close()
		os.Exit(1)
	}

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	<-quit
	log.Info("Shutdown signal received")

	// Cancel the application context, the consumer loop stops fetching
	cancelAppCtx()

	log.Info("Starting graceful shutdown...")

	// Close Kafka consumer, waits for the in-flight message
	closed := make(chan error, 1)
	go func() { closed <- kafkaConsumer.Close() }()
	select {
	case err = <-closed:
		if err != nil {
			log.Error("Error closing Kafka consumer", "error", err)
		}
	case <-time.After(cfg.Server.ShutdownTimeout):
		log.Warn("Shutdown timeout reached, forcing exit")
	}

	// Shutdown the worker pool if it's a WorkerPoolProcessingService
	if wpService, ok := processingService.(*service.WorkerPoolProcessingService); ok {
		wpService.Shutdown()
	}

	if dlqProducer != nil {
		if err = dlqProducer.Close(); err != nil {
			log.Error("Error closing DLQ Kafka producer", "error", err)
		}
	}

	// Shutdown postgres connection pool
	postgresDB.Close()

	log.Info("Entry Processor shutdown completed")
}
