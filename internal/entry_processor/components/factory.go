package components

import (
	"log/slog"

	"github.com/household-ledger/internal/config"
	"github.com/household-ledger/internal/entry_processor/service"
)

// CreateProcessingService creates a new ProcessingService with all its dependencies.
func CreateProcessingService(
	importer service.EntryImporter,
	logger *slog.Logger,
	cfg *config.Config,
) service.ProcessingService {
	validator := NewImportValidator(logger)
	baseService := service.NewProcessingService(validator, importer, logger)

	workerPoolService, err := service.NewWorkerPoolProcessingService(
		baseService,
		service.WorkerPoolConfig{
			Size: cfg.WorkerPool.Size,
		},
		logger.With("component", "worker_pool"),
	)
	if err != nil {
		logger.Error("Failed to create worker pool service, falling back to base service", "error", err)
		return baseService
	}

	logger.Info("Created worker pool processing service", "pool_size", cfg.WorkerPool.Size)
	return workerPoolService
}
