package ledger

import (
	"context"
	"fmt"

	"github.com/household-ledger/internal/domain/account"
	"github.com/household-ledger/internal/domain/category"
)

// Directory resolves account and category identifiers
type Directory struct {
	accounts   account.Repository
	categories category.Repository
}

// NewDirectory creates a directory over the given repositories, which may be tx-bound
func NewDirectory(accounts account.Repository, categories category.Repository) *Directory {
	return &Directory{accounts: accounts, categories: categories}
}

// Account returns ErrAccountNotFound for unknown ids
func (d *Directory) Account(ctx context.Context, id int64) (*account.Account, error) {
	return d.accounts.GetByID(ctx, id)
}

// Resolve tags a category identifier. A nil id yields category.NoRef, an
// account id a transfer reference, anything unknown ErrCategoryNotFound.
func (d *Directory) Resolve(ctx context.Context, id *int64) (category.Ref, error) {
	if id == nil {
		return category.NoRef, nil
	}

	kind, err := d.categories.KindOf(ctx, *id)
	if err != nil {
		return category.Ref{}, err
	}

	switch kind {
	case category.KindAccount:
		return category.TransferRef(*id), nil
	case category.KindCategory:
		c, err := d.categories.GetByID(ctx, *id)
		if err != nil {
			return category.Ref{}, err
		}
		return category.RefOf(c), nil
	default:
		return category.Ref{}, fmt.Errorf("unexpected kind %q for category %d", kind, *id)
	}
}
