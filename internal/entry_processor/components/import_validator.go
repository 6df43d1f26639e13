package components

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/household-ledger/internal/domain/shared"
	"github.com/household-ledger/internal/entry_processor/service"
)

type ImportValidatorImpl struct {
	logger *slog.Logger
}

func NewImportValidator(logger *slog.Logger) service.ImportValidator {
	return &ImportValidatorImpl{logger: logger}
}

// Validate checks the fields every import must carry. Account and
// category existence is left to the ledger.
func (v *ImportValidatorImpl) Validate(ctx context.Context, request *shared.EntryImportRequest) error {
	logger := v.logger
	if request.CorrelationID != "" {
		logger = v.logger.With("correlation_id", request.CorrelationID)
	}

	if request.ImportID == uuid.Nil {
		logger.Error("Missing import id", "account_id", request.AccountID)
		return fmt.Errorf("%w: import_id is required", service.ErrMalformedImport)
	}

	if request.AccountID <= 0 {
		logger.Error("Invalid account id", "import_id", request.ImportID.String(), "account_id", request.AccountID)
		return fmt.Errorf("%w: account_id must be positive: %d", service.ErrMalformedImport, request.AccountID)
	}

	for i, part := range request.SubEntries {
		if part.CategoryID != nil && *part.CategoryID <= 0 {
			logger.Error("Invalid sub entry category", "import_id", request.ImportID.String(), "index", i)
			return fmt.Errorf("%w: sub_entries[%d].category_id must be positive", service.ErrMalformedImport, i)
		}
	}

	return nil
}
