package ledger

import (
	"context"
	"slices"

	"github.com/household-ledger/internal/domain/entry"
)

// Count returns the number of top-level entries booked on the account
func (s *EntryService) Count(ctx context.Context, accountID int64) (int64, error) {
	return s.repos.Entries.CountByAccountID(ctx, accountID)
}

// List returns one page of the account's entries, newest first, each
// carrying the running balance up to and including itself. Entries not
// matching filter are left out before balances are accumulated.
func (s *EntryService) List(ctx context.Context, accountID int64, page *int, filter string) ([]*entry.Entry, error) {
	acc, err := s.repos.Accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	stored, err := s.repos.Entries.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	entries := WithBalances(acc.StartBalance, stored, filter)
	slices.Reverse(entries)

	return entry.Page(entries, page), nil
}

// WithBalances keeps the entries matching filter, in the given order, and
// sets Balance to startBalance plus every amount so far
func WithBalances(startBalance int64, entries []*entry.Entry, filter string) []*entry.Entry {
	out := make([]*entry.Entry, 0, len(entries))
	balance := startBalance
	for _, e := range entries {
		if !e.Contains(filter) {
			continue
		}
		balance += e.Amount
		c := e.Clone()
		c.Balance = balance
		out = append(out, c)
	}
	return out
}
