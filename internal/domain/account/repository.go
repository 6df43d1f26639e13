package account

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
)

// Repository defines account persistence operations
type Repository interface {
	// Create inserts the account together with its category row and assigns ID
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id int64) (*Account, error)
	GetAll(ctx context.Context) ([]*Account, error)
	WithTx(tx pgx.Tx) Repository
}

// ErrAccountNotFound indicates missing account
type ErrAccountNotFound struct {
	AccountID int64
}

func (e ErrAccountNotFound) Error() string {
	return "account not found: " + strconv.FormatInt(e.AccountID, 10)
}

// Is implements the errors.Is interface for ErrAccountNotFound
func (e ErrAccountNotFound) Is(target error) bool {
	t, ok := target.(ErrAccountNotFound)
	if !ok {
		return false
	}
	if t.AccountID == 0 {
		return true
	}
	return e.AccountID == t.AccountID
}
