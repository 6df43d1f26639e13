package account

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrEmptyName = errors.New("account name cannot be empty")
)

// Account is a money container. Its ID is also a category identifier, so an
// account can be chosen as an entry's category to express a transfer.
type Account struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	StartBalance int64     `json:"start_balance"` // Stored in cents/minor units
	CreatedAt    time.Time `json:"created_at"`
}

// NewAccount creates a new account with the given parameters
func NewAccount(name string, startBalance int64) (*Account, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	return &Account{
		Name:         name,
		StartBalance: startBalance,
		CreatedAt:    time.Now(),
	}, nil
}
