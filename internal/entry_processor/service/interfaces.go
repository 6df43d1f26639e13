package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/household-ledger/internal/domain/entry"
	"github.com/household-ledger/internal/domain/shared"
)

// ProcessingService defines the interface for processing entry import requests.
type ProcessingService interface {
	ProcessImport(ctx context.Context, request *shared.EntryImportRequest) error
}

// ImportValidator rejects import requests that can never produce an entry
type ImportValidator interface {
	Validate(ctx context.Context, request *shared.EntryImportRequest) error
}

// EntryImporter books an entry at most once per import id
type EntryImporter interface {
	Import(ctx context.Context, importID uuid.UUID, in *entry.Entry) (int64, bool, error)
}
