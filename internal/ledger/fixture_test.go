package ledger

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/household-ledger/internal/data/memory"
	"github.com/household-ledger/internal/domain/account"
	"github.com/household-ledger/internal/domain/category"
	"github.com/household-ledger/internal/domain/session"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store      *memory.Store
	repos      Repositories
	entries    *EntryService
	categories *CategoryService
	accounts   *AccountService
	sessions   *SessionService
	sess       *session.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := memory.New()
	repos := Repositories{
		Accounts:   store.Accounts(),
		Categories: store.Categories(),
		Entries:    store.Entries(),
		Imports:    store.Imports(),
		Sessions:   store.Sessions(),
	}

	f := &fixture{
		store:      store,
		repos:      repos,
		entries:    NewEntryService(logger, store, repos),
		categories: NewCategoryService(logger, store, repos),
		accounts:   NewAccountService(logger, store, repos),
		sessions:   NewSessionService(logger, store, repos),
	}

	clock := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	f.entries.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	sess, created, err := f.sessions.Init(context.Background())
	require.NoError(t, err)
	require.True(t, created)
	f.sess = sess
	return f
}

func (f *fixture) account(t *testing.T, name string, startBalance int64) *account.Account {
	t.Helper()
	acc, err := f.accounts.Create(context.Background(), name, startBalance)
	require.NoError(t, err)
	return acc
}

func (f *fixture) category(t *testing.T, name string, parentID *int64) int64 {
	t.Helper()
	id, err := f.categories.Create(context.Background(), f.sess, &category.Node{Name: name, ParentID: parentID})
	require.NoError(t, err)
	return id
}

func ptr[T any](v T) *T { return &v }

func day(d int) *time.Time {
	t := time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
	return &t
}
