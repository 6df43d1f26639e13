package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/household-ledger/internal/domain/entry"
	"github.com/household-ledger/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

// ImportRepository implements the entry.ImportRepository interface for PostgreSQL
type ImportRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewImportRepository creates a new PostgreSQL import repository
func NewImportRepository(logger *slog.Logger, db *persistence.PostgresDB) entry.ImportRepository {
	return &ImportRepository{
		querier: db.Querier(),
		logger:  logger,
	}
}

// WithTx returns a copy of the repository bound to tx
func (r *ImportRepository) WithTx(tx pgx.Tx) entry.ImportRepository {
	return &ImportRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// GetEntryID looks up the entry produced by an import request
func (r *ImportRepository) GetEntryID(ctx context.Context, importID uuid.UUID) (int64, bool, error) {
	query := `SELECT COALESCE(entry_id, 0) FROM entry_imports WHERE import_id = $1`

	var entryID int64
	err := r.querier.QueryRow(ctx, query, importID).Scan(&entryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		r.logger.Error("Failed to get entry import", "import_id", importID.String(), "error", err)
		return 0, false, fmt.Errorf("failed to get entry import: %w", err)
	}

	return entryID, true, nil
}

// Record marks importID as processed
func (r *ImportRepository) Record(ctx context.Context, importID uuid.UUID, entryID int64) error {
	query := `
		INSERT INTO entry_imports (import_id, entry_id, created_at)
		VALUES ($1, $2, NOW())
	`

	if _, err := r.querier.Exec(ctx, query, importID, entryID); err != nil {
		r.logger.Error("Failed to record entry import", "import_id", importID.String(), "error", err)
		return fmt.Errorf("failed to record entry import: %w", err)
	}

	return nil
}
