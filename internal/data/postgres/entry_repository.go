package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/household-ledger/internal/domain/entry"
	"github.com/household-ledger/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

const entryColumns = `e.id, e.account_id, e.category_id, COALESCE(c.name, ''), e.date, e.created_at,
		e.amount, e.description, e.memo, e.status, e.other_id, e.split_entry_id`

// EntryRepository implements the entry.Repository interface for PostgreSQL
type EntryRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewEntryRepository creates a new PostgreSQL entry repository
func NewEntryRepository(logger *slog.Logger, db *persistence.PostgresDB) entry.Repository {
	return &EntryRepository{
		querier: db.Querier(),
		logger:  logger,
	}
}

// WithTx returns a copy of the repository bound to tx
func (r *EntryRepository) WithTx(tx pgx.Tx) entry.Repository {
	return &EntryRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create inserts the entry and assigns its ID
func (r *EntryRepository) Create(ctx context.Context, e *entry.Entry) error {
	query := `
		INSERT INTO entries (account_id, category_id, date, created_at, amount, description, memo, status, other_id, split_entry_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.querier.QueryRow(ctx, query,
		e.AccountID,
		e.CategoryID,
		e.Date,
		e.CreatedAt,
		e.Amount,
		e.Description,
		e.Memo,
		string(e.Status),
		e.OtherID,
		e.SplitEntryID,
	).Scan(&e.ID)
	if err != nil {
		r.logger.Error("Failed to create entry", "account_id", e.AccountID, "error", err)
		return fmt.Errorf("failed to create entry: %w", err)
	}

	return nil
}

// GetByID retrieves an entry by its ID. Sub-entries are not loaded.
func (r *EntryRepository) GetByID(ctx context.Context, id int64) (*entry.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries e
		LEFT JOIN categories c ON c.id = e.category_id
		WHERE e.id = $1
	`

	e, err := scanEntry(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entry.ErrEntryNotFound{EntryID: id}
		}
		r.logger.Error("Failed to get entry", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	return e, nil
}

// Update overwrites every stored field of the entry
func (r *EntryRepository) Update(ctx context.Context, e *entry.Entry) error {
	query := `
		UPDATE entries
		SET account_id = $1, category_id = $2, date = $3, amount = $4, description = $5,
			memo = $6, status = $7, other_id = $8, split_entry_id = $9
		WHERE id = $10
	`

	result, err := r.querier.Exec(ctx, query,
		e.AccountID,
		e.CategoryID,
		e.Date,
		e.Amount,
		e.Description,
		e.Memo,
		string(e.Status),
		e.OtherID,
		e.SplitEntryID,
		e.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update entry", "id", e.ID, "error", err)
		return fmt.Errorf("failed to update entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entry.ErrEntryNotFound{EntryID: e.ID}
	}

	return nil
}

// Delete removes the entry
func (r *EntryRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM entries WHERE id = $1`

	result, err := r.querier.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete entry", "id", id, "error", err)
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entry.ErrEntryNotFound{EntryID: id}
	}

	return nil
}

// GetBySplitEntryID returns the parts of a split in insertion order
func (r *EntryRepository) GetBySplitEntryID(ctx context.Context, splitEntryID int64) ([]*entry.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries e
		LEFT JOIN categories c ON c.id = e.category_id
		WHERE e.split_entry_id = $1
		ORDER BY e.id
	`

	return r.queryEntries(ctx, "split entries", query, splitEntryID)
}

// DeleteBySplitEntryID removes every part of a split and reports how many went
func (r *EntryRepository) DeleteBySplitEntryID(ctx context.Context, splitEntryID int64) (int64, error) {
	query := `DELETE FROM entries WHERE split_entry_id = $1`

	result, err := r.querier.Exec(ctx, query, splitEntryID)
	if err != nil {
		r.logger.Error("Failed to delete split entries", "split_entry_id", splitEntryID, "error", err)
		return 0, fmt.Errorf("failed to delete split entries: %w", err)
	}

	return result.RowsAffected(), nil
}

// GetByAccountID returns the account's top-level entries oldest first, undated last
func (r *EntryRepository) GetByAccountID(ctx context.Context, accountID int64) ([]*entry.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries e
		LEFT JOIN categories c ON c.id = e.category_id
		WHERE e.account_id = $1 AND e.split_entry_id IS NULL
		ORDER BY e.date IS NULL, e.date, e.created_at, e.id
	`

	return r.queryEntries(ctx, "account entries", query, accountID)
}

// CountByAccountID counts the account's top-level entries
func (r *EntryRepository) CountByAccountID(ctx context.Context, accountID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM entries WHERE account_id = $1 AND split_entry_id IS NULL`

	var count int64
	if err := r.querier.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		r.logger.Error("Failed to count entries", "account_id", accountID, "error", err)
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}

	return count, nil
}

// ClearCategory detaches every entry from categoryID
func (r *EntryRepository) ClearCategory(ctx context.Context, categoryID int64) (int64, error) {
	query := `UPDATE entries SET category_id = NULL WHERE category_id = $1`

	result, err := r.querier.Exec(ctx, query, categoryID)
	if err != nil {
		r.logger.Error("Failed to clear entry category", "category_id", categoryID, "error", err)
		return 0, fmt.Errorf("failed to clear entry category: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *EntryRepository) queryEntries(ctx context.Context, what, query string, arg int64) ([]*entry.Entry, error) {
	rows, err := r.querier.Query(ctx, query, arg)
	if err != nil {
		r.logger.Error("Failed to get "+what, "arg", arg, "error", err)
		return nil, fmt.Errorf("failed to get %s: %w", what, err)
	}
	defer rows.Close()

	entries := []*entry.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			r.logger.Error("Failed to scan entry", "error", err)
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over "+what, "error", err)
		return nil, fmt.Errorf("error iterating over %s: %w", what, err)
	}

	return entries, nil
}

func scanEntry(row pgx.Row) (*entry.Entry, error) {
	var (
		e      entry.Entry
		status string
	)
	err := row.Scan(
		&e.ID,
		&e.AccountID,
		&e.CategoryID,
		&e.CategoryName,
		&e.Date,
		&e.CreatedAt,
		&e.Amount,
		&e.Description,
		&e.Memo,
		&status,
		&e.OtherID,
		&e.SplitEntryID,
	)
	if err != nil {
		return nil, err
	}
	e.Status = entry.Status(status)
	return &e, nil
}
