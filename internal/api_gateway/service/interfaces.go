package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/household-ledger/internal/domain/account"
	"github.com/household-ledger/internal/domain/category"
	"github.com/household-ledger/internal/domain/entry"
	"github.com/household-ledger/internal/domain/session"
	"github.com/household-ledger/internal/domain/shared"
)

// AccountService defines the interface for account operations
type AccountService interface {
	// Create books a new account together with its category row
	Create(ctx context.Context, name string, startBalance int64) (*account.Account, error)

	// Get returns ErrAccountNotFound if the account doesn't exist
	Get(ctx context.Context, id int64) (*account.Account, error)

	List(ctx context.Context) ([]*account.Account, error)
}

// EntryService defines the interface for entry operations
type EntryService interface {
	// Get returns the entry with its sub-entries, or ErrEntryNotFound
	Get(ctx context.Context, id int64) (*entry.Entry, error)

	// Create stores the entry, reconciles splits and transfers and returns the new ID
	Create(ctx context.Context, in *entry.Entry) (int64, error)

	// Update reconciles the stored entry with in. Returns ErrEntryNotFound for unknown IDs
	Update(ctx context.Context, in *entry.Entry) error

	// Delete removes the entry, its sub-entries and its transfer mirror
	Delete(ctx context.Context, id int64) error

	// List returns one page of the account's entries, newest first, with running balances
	List(ctx context.Context, accountID int64, page *int, filter string) ([]*entry.Entry, error)

	Count(ctx context.Context, accountID int64) (int64, error)
}

// CategoryService defines the interface for category tree operations
type CategoryService interface {
	Tree(ctx context.Context, sess *session.Session) (*category.Node, error)
	List(ctx context.Context, sess *session.Session) ([]category.Leveled, error)

	// Save overwrites every submitted node. Returns ErrInvalidTree when the
	// top node is not the root or an ID repeats
	Save(ctx context.Context, sess *session.Session, root *category.Node) error

	Create(ctx context.Context, sess *session.Session, node *category.Node) (int64, error)

	// Delete returns ErrReservedCategory for the root, the split marker and their ancestors
	Delete(ctx context.Context, sess *session.Session, id int64) error

	Root(ctx context.Context, sess *session.Session) (*category.Category, error)
	Split(ctx context.Context, sess *session.Session) (*category.Category, error)
}

// SessionService defines the interface for the ledger session
type SessionService interface {
	// Current returns ErrNotInitialized until Init has run
	Current(ctx context.Context) (*session.Session, error)

	// Init creates the reserved categories once. created is false when a
	// session already existed
	Init(ctx context.Context) (sess *session.Session, created bool, err error)
}

// ImportService defines the interface for asynchronous entry imports
type ImportService interface {
	// Submit publishes the request for the entry processor and returns its import ID
	Submit(ctx context.Context, request *shared.EntryImportRequest) (uuid.UUID, error)
}
