package session

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// Names given to the singleton categories on initialization
const (
	RootCategoryName  = "Categories"
	SplitCategoryName = "Split"
)

// ErrNotInitialized is returned while no session record exists
var ErrNotInitialized = errors.New("ledger session is not initialized")

// Session carries the identifiers of the two reserved categories. It is
// loaded once per request and passed to the services that need it.
type Session struct {
	ID              int64 `json:"id"`
	RootCategoryID  int64 `json:"root_category_id"`
	SplitCategoryID int64 `json:"split_category_id"`
}

// Repository persists the session record
type Repository interface {
	// Get returns ErrNotInitialized when no session exists
	Get(ctx context.Context) (*Session, error)
	Create(ctx context.Context, s *Session) error
	WithTx(tx pgx.Tx) Repository
}
