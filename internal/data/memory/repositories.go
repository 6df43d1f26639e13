package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/household-ledger/internal/domain/account"
	"github.com/household-ledger/internal/domain/category"
	"github.com/household-ledger/internal/domain/entry"
	"github.com/household-ledger/internal/domain/session"
	"github.com/jackc/pgx/v5"
)

// AccountRepository implements account.Repository over the store tables
type AccountRepository struct{ s *Store }

func (r *AccountRepository) WithTx(pgx.Tx) account.Repository { return r }

func (r *AccountRepository) Create(_ context.Context, acc *account.Account) error {
	return r.s.with(func(t *tables) error {
		id := t.id("categories")
		t.categories[id] = categoryRow{
			Category: category.Category{ID: id, Name: acc.Name, Type: category.TypeNormal},
			Kind:     category.KindAccount,
		}
		acc.ID = id
		stored := *acc
		stored.Name = ""
		t.accounts[id] = stored
		return nil
	})
}

func (r *AccountRepository) GetByID(_ context.Context, id int64) (*account.Account, error) {
	var out *account.Account
	err := r.s.with(func(t *tables) error {
		acc, ok := t.accounts[id]
		if !ok {
			return account.ErrAccountNotFound{AccountID: id}
		}
		acc.Name = t.categories[id].Name
		out = &acc
		return nil
	})
	return out, err
}

func (r *AccountRepository) GetAll(_ context.Context) ([]*account.Account, error) {
	out := []*account.Account{}
	_ = r.s.with(func(t *tables) error {
		for id, acc := range t.accounts {
			acc.Name = t.categories[id].Name
			out = append(out, &acc)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *account.Account) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

// CategoryRepository implements category.Repository over the store tables
type CategoryRepository struct{ s *Store }

func (r *CategoryRepository) WithTx(pgx.Tx) category.Repository { return r }

func (r *CategoryRepository) Create(_ context.Context, c *category.Category) error {
	return r.s.with(func(t *tables) error {
		c.ID = t.id("categories")
		t.categories[c.ID] = categoryRow{Category: copyCategory(c), Kind: category.KindCategory}
		return nil
	})
}

func (r *CategoryRepository) GetByID(_ context.Context, id int64) (*category.Category, error) {
	var out *category.Category
	err := r.s.with(func(t *tables) error {
		row, ok := t.categories[id]
		if !ok || row.Kind != category.KindCategory {
			return category.ErrCategoryNotFound{CategoryID: id}
		}
		c := copyCategory(&row.Category)
		out = &c
		return nil
	})
	return out, err
}

func (r *CategoryRepository) GetAll(_ context.Context) ([]*category.Category, error) {
	out := []*category.Category{}
	_ = r.s.with(func(t *tables) error {
		for _, row := range t.categories {
			if row.Kind == category.KindCategory {
				c := copyCategory(&row.Category)
				out = append(out, &c)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *category.Category) int {
		switch {
		case a.ParentID == nil && b.ParentID != nil:
			return -1
		case a.ParentID != nil && b.ParentID == nil:
			return 1
		case a.ParentID != nil && b.ParentID != nil:
			if c := cmp.Compare(*a.ParentID, *b.ParentID); c != 0 {
				return c
			}
		}
		return cmp.Or(cmp.Compare(a.Position, b.Position), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (r *CategoryRepository) Update(_ context.Context, c *category.Category) error {
	return r.s.with(func(t *tables) error {
		row, ok := t.categories[c.ID]
		if !ok || row.Kind != category.KindCategory {
			return category.ErrCategoryNotFound{CategoryID: c.ID}
		}
		row.Category = copyCategory(c)
		t.categories[c.ID] = row
		return nil
	})
}

// Delete removes the category and, like the foreign keys of the SQL schema,
// its descendants. Entries referencing removed rows lose their category.
func (r *CategoryRepository) Delete(_ context.Context, id int64) error {
	return r.s.with(func(t *tables) error {
		row, ok := t.categories[id]
		if !ok || row.Kind != category.KindCategory {
			return category.ErrCategoryNotFound{CategoryID: id}
		}
		doomed := []int64{id}
		for i := 0; i < len(doomed); i++ {
			for cid, c := range t.categories {
				if c.ParentID != nil && *c.ParentID == doomed[i] {
					doomed = append(doomed, cid)
				}
			}
		}
		for _, cid := range doomed {
			delete(t.categories, cid)
			for _, e := range t.entries {
				if e.CategoryID != nil && *e.CategoryID == cid {
					e.CategoryID = nil
				}
			}
		}
		return nil
	})
}

func (r *CategoryRepository) NextPosition(_ context.Context, parentID int64) (int, error) {
	next := 0
	_ = r.s.with(func(t *tables) error {
		for _, row := range t.categories {
			if row.Kind == category.KindCategory && row.ParentID != nil && *row.ParentID == parentID {
				next = max(next, row.Position+1)
			}
		}
		return nil
	})
	return next, nil
}

func (r *CategoryRepository) KindOf(_ context.Context, id int64) (category.Kind, error) {
	var kind category.Kind
	err := r.s.with(func(t *tables) error {
		row, ok := t.categories[id]
		if !ok {
			return category.ErrCategoryNotFound{CategoryID: id}
		}
		kind = row.Kind
		return nil
	})
	return kind, err
}

func copyCategory(c *category.Category) category.Category {
	out := *c
	if c.ParentID != nil {
		p := *c.ParentID
		out.ParentID = &p
	}
	return out
}

// EntryRepository implements entry.Repository over the store tables
type EntryRepository struct{ s *Store }

func (r *EntryRepository) WithTx(pgx.Tx) entry.Repository { return r }

func (r *EntryRepository) Create(_ context.Context, e *entry.Entry) error {
	return r.s.with(func(t *tables) error {
		if _, ok := t.accounts[e.AccountID]; !ok {
			return account.ErrAccountNotFound{AccountID: e.AccountID}
		}
		e.ID = t.id("entries")
		t.entries[e.ID] = stored(e)
		return nil
	})
}

func (r *EntryRepository) GetByID(_ context.Context, id int64) (*entry.Entry, error) {
	var out *entry.Entry
	err := r.s.with(func(t *tables) error {
		e, ok := t.entries[id]
		if !ok {
			return entry.ErrEntryNotFound{EntryID: id}
		}
		out = t.read(e)
		return nil
	})
	return out, err
}

func (r *EntryRepository) Update(_ context.Context, e *entry.Entry) error {
	return r.s.with(func(t *tables) error {
		old, ok := t.entries[e.ID]
		if !ok {
			return entry.ErrEntryNotFound{EntryID: e.ID}
		}
		next := stored(e)
		next.CreatedAt = old.CreatedAt
		t.entries[e.ID] = next
		return nil
	})
}

// Delete drops the entry, cascading to its split parts and unlinking its mirror
func (r *EntryRepository) Delete(_ context.Context, id int64) error {
	return r.s.with(func(t *tables) error {
		if _, ok := t.entries[id]; !ok {
			return entry.ErrEntryNotFound{EntryID: id}
		}
		t.deleteEntry(id)
		return nil
	})
}

func (r *EntryRepository) GetBySplitEntryID(_ context.Context, splitEntryID int64) ([]*entry.Entry, error) {
	out := []*entry.Entry{}
	_ = r.s.with(func(t *tables) error {
		for _, e := range t.entries {
			if e.SplitEntryID != nil && *e.SplitEntryID == splitEntryID {
				out = append(out, t.read(e))
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *entry.Entry) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *EntryRepository) DeleteBySplitEntryID(_ context.Context, splitEntryID int64) (int64, error) {
	var n int64
	_ = r.s.with(func(t *tables) error {
		for id, e := range t.entries {
			if e.SplitEntryID != nil && *e.SplitEntryID == splitEntryID {
				t.deleteEntry(id)
				n++
			}
		}
		return nil
	})
	return n, nil
}

func (r *EntryRepository) GetByAccountID(_ context.Context, accountID int64) ([]*entry.Entry, error) {
	out := []*entry.Entry{}
	_ = r.s.with(func(t *tables) error {
		for _, e := range t.entries {
			if e.AccountID == accountID && !e.IsSubEntry() {
				out = append(out, t.read(e))
			}
		}
		return nil
	})
	slices.SortFunc(out, entry.Chronological)
	return out, nil
}

func (r *EntryRepository) CountByAccountID(_ context.Context, accountID int64) (int64, error) {
	var n int64
	_ = r.s.with(func(t *tables) error {
		for _, e := range t.entries {
			if e.AccountID == accountID && !e.IsSubEntry() {
				n++
			}
		}
		return nil
	})
	return n, nil
}

func (r *EntryRepository) ClearCategory(_ context.Context, categoryID int64) (int64, error) {
	var n int64
	_ = r.s.with(func(t *tables) error {
		for _, e := range t.entries {
			if e.CategoryID != nil && *e.CategoryID == categoryID {
				e.CategoryID = nil
				n++
			}
		}
		return nil
	})
	return n, nil
}

func stored(e *entry.Entry) *entry.Entry {
	c := e.Clone()
	c.SubEntries = nil
	c.CategoryName = ""
	c.Balance = 0
	return c
}

func (t *tables) read(e *entry.Entry) *entry.Entry {
	c := e.Clone()
	if c.CategoryID != nil {
		c.CategoryName = t.categories[*c.CategoryID].Name
	}
	return c
}

func (t *tables) deleteEntry(id int64) {
	delete(t.entries, id)
	for sid, e := range t.entries {
		if e.SplitEntryID != nil && *e.SplitEntryID == id {
			t.deleteEntry(sid)
		}
		if e.OtherID != nil && *e.OtherID == id {
			e.OtherID = nil
		}
	}
}

// ImportRepository implements entry.ImportRepository over the store tables
type ImportRepository struct{ s *Store }

func (r *ImportRepository) WithTx(pgx.Tx) entry.ImportRepository { return r }

func (r *ImportRepository) GetEntryID(_ context.Context, importID uuid.UUID) (int64, bool, error) {
	var (
		id    int64
		found bool
	)
	_ = r.s.with(func(t *tables) error {
		id, found = t.imports[importID]
		return nil
	})
	return id, found, nil
}

func (r *ImportRepository) Record(_ context.Context, importID uuid.UUID, entryID int64) error {
	return r.s.with(func(t *tables) error {
		t.imports[importID] = entryID
		return nil
	})
}

// SessionRepository implements session.Repository over the store tables
type SessionRepository struct{ s *Store }

func (r *SessionRepository) WithTx(pgx.Tx) session.Repository { return r }

func (r *SessionRepository) Get(_ context.Context) (*session.Session, error) {
	var out *session.Session
	err := r.s.with(func(t *tables) error {
		if len(t.sessions) == 0 {
			return session.ErrNotInitialized
		}
		s := t.sessions[0]
		out = &s
		return nil
	})
	return out, err
}

func (r *SessionRepository) Create(_ context.Context, s *session.Session) error {
	return r.s.with(func(t *tables) error {
		s.ID = t.id("sessions")
		t.sessions = append(t.sessions, *s)
		return nil
	})
}
