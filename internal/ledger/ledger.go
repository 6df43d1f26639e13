// Package ledger holds the bookkeeping rules: entry synchronization for splits
// and transfers, running balances over account listings, the category tree
// and the session singletons. Every mutating operation runs in one
// transaction obtained from a Transactor.
package ledger

import (
	"context"

	"github.com/household-ledger/internal/domain/account"
	"github.com/household-ledger/internal/domain/category"
	"github.com/household-ledger/internal/domain/entry"
	"github.com/household-ledger/internal/domain/session"
	"github.com/jackc/pgx/v5"
)

// Transactor runs fn inside a database transaction, committing when fn
// returns nil. *persistence.PostgresDB and *memory.Store implement it.
type Transactor interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// Repositories bundles the record store
type Repositories struct {
	Accounts   account.Repository
	Categories category.Repository
	Entries    entry.Repository
	Imports    entry.ImportRepository
	Sessions   session.Repository
}

func (r Repositories) withTx(tx pgx.Tx) Repositories {
	return Repositories{
		Accounts:   r.Accounts.WithTx(tx),
		Categories: r.Categories.WithTx(tx),
		Entries:    r.Entries.WithTx(tx),
		Imports:    r.Imports.WithTx(tx),
		Sessions:   r.Sessions.WithTx(tx),
	}
}
