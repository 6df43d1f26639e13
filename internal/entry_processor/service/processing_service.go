package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/household-ledger/internal/domain/account"
	"github.com/household-ledger/internal/domain/category"
	"github.com/household-ledger/internal/domain/entry"
	"github.com/household-ledger/internal/domain/shared"
)

type ProcessingServiceImpl struct {
	validator ImportValidator
	importer  EntryImporter
	logger    *slog.Logger
}

func NewProcessingService(
	validator ImportValidator,
	importer EntryImporter,
	logger *slog.Logger,
) ProcessingService {
	return &ProcessingServiceImpl{
		validator: validator,
		importer:  importer,
		logger:    logger,
	}
}

// ProcessImport validates the request and books it through the importer.
// Business failures come back as *ImportRejectedError, anything else is
// returned as is so the message gets redelivered.
func (s *ProcessingServiceImpl) ProcessImport(ctx context.Context, request *shared.EntryImportRequest) error {
	logger := s.logger
	if request.CorrelationID != "" {
		logger = s.logger.With("correlation_id", request.CorrelationID)
	}

	logger.Info("Processing entry import", "import_id", request.ImportID.String(), "account_id", request.AccountID)

	// 1. Validate the request
	if err := s.validator.Validate(ctx, request); err != nil {
		logger.Error("Entry import validation failed", "import_id", request.ImportID.String(), "error", err)
		return &ImportRejectedError{Reason: shared.ImportFailureMalformed, Err: err}
	}

	// 2. Book the entry, idempotent per import id
	entryID, existed, err := s.importer.Import(ctx, request.ImportID, toEntry(request))
	switch {
	case errors.Is(err, account.ErrAccountNotFound{}):
		logger.Warn("Entry import references unknown account", "import_id", request.ImportID.String(), "error", err)
		return &ImportRejectedError{Reason: shared.ImportFailureAccountNotFound, Err: err}
	case errors.Is(err, category.ErrCategoryNotFound{}):
		logger.Warn("Entry import references unknown category", "import_id", request.ImportID.String(), "error", err)
		return &ImportRejectedError{Reason: shared.ImportFailureCategoryNotFound, Err: err}
	case err != nil:
		logger.Error("Failed to import entry", "import_id", request.ImportID.String(), "error", err)
		return fmt.Errorf("failed to import entry %s: %w", request.ImportID.String(), err)
	}

	if existed {
		logger.Info("Entry import already processed (idempotency)", "import_id", request.ImportID.String(), "entry_id", entryID)
		return nil
	}

	logger.Info("Entry imported", "import_id", request.ImportID.String(), "entry_id", entryID)
	return nil
}

func toEntry(request *shared.EntryImportRequest) *entry.Entry {
	e := &entry.Entry{
		AccountID:   request.AccountID,
		CategoryID:  request.CategoryID,
		Date:        request.Date,
		Amount:      request.Amount,
		Description: request.Description,
		Memo:        request.Memo,
	}
	for _, part := range request.SubEntries {
		e.SubEntries = append(e.SubEntries, &entry.Entry{
			CategoryID:  part.CategoryID,
			Amount:      part.Amount,
			Description: part.Description,
			Memo:        part.Memo,
		})
	}
	return e
}
