// Package memory keeps every aggregate in process memory. It implements the
// same repository interfaces as the postgres package and backs service tests
// and local experiments.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/google/uuid"
	"github.com/household-ledger/internal/domain/account"
	"github.com/household-ledger/internal/domain/category"
	"github.com/household-ledger/internal/domain/entry"
	"github.com/household-ledger/internal/domain/session"
	"github.com/jackc/pgx/v5"
)

type categoryRow struct {
	category.Category
	Kind category.Kind
}

type tables struct {
	categories map[int64]categoryRow
	accounts   map[int64]account.Account
	entries    map[int64]*entry.Entry
	sessions   []session.Session
	imports    map[uuid.UUID]int64
	nextID     map[string]int64
}

func (t *tables) clone() *tables {
	c := &tables{
		categories: maps.Clone(t.categories),
		accounts:   maps.Clone(t.accounts),
		entries:    make(map[int64]*entry.Entry, len(t.entries)),
		sessions:   append([]session.Session(nil), t.sessions...),
		imports:    maps.Clone(t.imports),
		nextID:     maps.Clone(t.nextID),
	}
	for id, e := range t.entries {
		c.entries[id] = e.Clone()
	}
	return c
}

func (t *tables) id(table string) int64 {
	t.nextID[table]++
	return t.nextID[table]
}

// Store holds the tables. Transactions are serialized and roll back by
// restoring a snapshot taken on begin.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	t    *tables
}

// New creates an empty store; identifiers start at 1 per table
func New() *Store {
	return &Store{t: &tables{
		categories: map[int64]categoryRow{},
		accounts:   map[int64]account.Account{},
		entries:    map[int64]*entry.Entry{},
		imports:    map[uuid.UUID]int64{},
		nextID:     map[string]int64{},
	}}
}

// ExecuteTx runs fn with a nil transaction; memory repositories ignore it.
// Any error or panic restores the state seen on entry.
func (s *Store) ExecuteTx(_ context.Context, fn func(tx pgx.Tx) error) (err error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.t.clone()
	s.mu.Unlock()

	restore := func() {
		s.mu.Lock()
		s.t = snapshot
		s.mu.Unlock()
	}
	defer func() {
		if r := recover(); r != nil {
			restore()
			panic(r)
		}
	}()

	if err := fn(nil); err != nil {
		restore()
		return err
	}
	return nil
}

func (s *Store) with(fn func(t *tables) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.t)
}

// Accounts returns the account repository over the store
func (s *Store) Accounts() account.Repository { return &AccountRepository{s: s} }

// Categories returns the category repository over the store
func (s *Store) Categories() category.Repository { return &CategoryRepository{s: s} }

// Entries returns the entry repository over the store
func (s *Store) Entries() entry.Repository { return &EntryRepository{s: s} }

// Imports returns the import repository over the store
func (s *Store) Imports() entry.ImportRepository { return &ImportRepository{s: s} }

// Sessions returns the session repository over the store
func (s *Store) Sessions() session.Repository { return &SessionRepository{s: s} }
