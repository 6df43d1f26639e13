package entry

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository manages entry persistence
type Repository interface {
	// Create inserts the entry and assigns its ID
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id int64) (*Entry, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, id int64) error

	GetBySplitEntryID(ctx context.Context, splitEntryID int64) ([]*Entry, error)
	DeleteBySplitEntryID(ctx context.Context, splitEntryID int64) (int64, error)

	// GetByAccountID returns the account's top-level entries with their
	// category names, in Chronological order
	GetByAccountID(ctx context.Context, accountID int64) ([]*Entry, error)
	CountByAccountID(ctx context.Context, accountID int64) (int64, error)

	// ClearCategory sets the category of every entry referencing categoryID to none
	ClearCategory(ctx context.Context, categoryID int64) (int64, error)
	WithTx(tx pgx.Tx) Repository
}

// ImportRepository remembers which import requests already produced an entry
type ImportRepository interface {
	// GetEntryID returns the entry created for importID, if any
	GetEntryID(ctx context.Context, importID uuid.UUID) (int64, bool, error)
	Record(ctx context.Context, importID uuid.UUID, entryID int64) error
	WithTx(tx pgx.Tx) ImportRepository
}

// ErrEntryNotFound indicates missing entry
type ErrEntryNotFound struct {
	EntryID int64
}

func (e ErrEntryNotFound) Error() string {
	return "entry not found: " + strconv.FormatInt(e.EntryID, 10)
}

// Is implements the errors.Is interface for ErrEntryNotFound
func (e ErrEntryNotFound) Is(target error) bool {
	t, ok := target.(ErrEntryNotFound)
	if !ok {
		return false
	}
	// If the target EntryID is zero, consider it a match for any ErrEntryNotFound
	if t.EntryID == 0 {
		return true
	}
	return e.EntryID == t.EntryID
}
