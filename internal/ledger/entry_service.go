package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/household-ledger/internal/domain/category"
	"github.com/household-ledger/internal/domain/entry"
	"github.com/jackc/pgx/v5"
)

// EntryService keeps entries, their split parts and their transfer mirrors in
// step. Sub-entries and mirrors are only ever written as a side effect of the
// entry that owns them.
type EntryService struct {
	db     Transactor
	repos  Repositories
	now    func() time.Time
	logger *slog.Logger
}

// NewEntryService creates a new entry service. Every mutation runs in one db transaction.
func NewEntryService(logger *slog.Logger, db Transactor, repos Repositories) *EntryService {
	return &EntryService{
		db:     db,
		repos:  repos,
		now:    time.Now,
		logger: logger,
	}
}

// Get returns a detached copy of the entry with its sub-entries
func (s *EntryService) Get(ctx context.Context, id int64) (*entry.Entry, error) {
	var out *entry.Entry
	err := s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		r := s.repos.withTx(tx)
		e, err := r.Entries.GetByID(ctx, id)
		if err != nil {
			return err
		}
		subs, err := r.Entries.GetBySplitEntryID(ctx, id)
		if err != nil {
			return err
		}
		if len(subs) > 0 {
			e.SubEntries = subs
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create stores a new entry built from the supplied state and returns its id.
// Identity and ownership links on the input are ignored. New entries are
// always CLEARED.
func (s *EntryService) Create(ctx context.Context, in *entry.Entry) (int64, error) {
	var id int64
	err := s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		var err error
		id, err = s.create(ctx, s.repos.withTx(tx), in)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Entry created", "entry_id", id, "account_id", in.AccountID)
	return id, nil
}

// Import creates the entry unless importID was already processed, in which
// case the entry created back then is returned.
func (s *EntryService) Import(ctx context.Context, importID uuid.UUID, in *entry.Entry) (int64, bool, error) {
	var (
		id      int64
		existed bool
	)
	err := s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		r := s.repos.withTx(tx)

		prev, found, err := r.Imports.GetEntryID(ctx, importID)
		if err != nil {
			return err
		}
		if found {
			id, existed = prev, true
			return nil
		}

		if id, err = s.create(ctx, r, in); err != nil {
			return err
		}
		return r.Imports.Record(ctx, importID, id)
	})
	if err != nil {
		return 0, false, err
	}

	if existed {
		s.logger.Info("Entry import already processed", "import_id", importID.String(), "entry_id", id)
	} else {
		s.logger.Info("Entry imported", "import_id", importID.String(), "entry_id", id)
	}
	return id, existed, nil
}

// Update applies the supplied state to a stored entry. The stored mirror link
// and creation time win over whatever the caller sent.
func (s *EntryService) Update(ctx context.Context, in *entry.Entry) error {
	err := s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		r := s.repos.withTx(tx)

		stored, err := r.Entries.GetByID(ctx, in.ID)
		if err != nil {
			return err
		}

		e := in.Clone()
		e.OtherID = stored.OtherID
		e.SplitEntryID = stored.SplitEntryID
		e.CreatedAt = stored.CreatedAt

		dir := NewDirectory(r.Accounts, r.Categories)
		ref, err := s.resolve(ctx, dir, e)
		if err != nil {
			return err
		}
		if err := s.reconcile(ctx, r, dir, e, ref); err != nil {
			return err
		}
		return r.Entries.Update(ctx, e)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Entry updated", "entry_id", in.ID)
	return nil
}

// Delete removes the entry together with its sub-entries and mirror
func (s *EntryService) Delete(ctx context.Context, id int64) error {
	err := s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		r := s.repos.withTx(tx)

		e, err := r.Entries.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if _, err := r.Entries.DeleteBySplitEntryID(ctx, id); err != nil {
			return err
		}
		if e.OtherID != nil {
			if err := deleteIfExists(ctx, r, *e.OtherID); err != nil {
				return err
			}
		}
		return r.Entries.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Entry deleted", "entry_id", id)
	return nil
}

func (s *EntryService) create(ctx context.Context, r Repositories, in *entry.Entry) (int64, error) {
	e := in.Clone()
	e.ID = 0
	e.OtherID = nil
	e.SplitEntryID = nil
	e.CreatedAt = s.now()
	e.Status = entry.StatusCleared

	dir := NewDirectory(r.Accounts, r.Categories)
	ref, err := s.resolve(ctx, dir, e)
	if err != nil {
		return 0, err
	}

	subs := e.SubEntries
	e.SubEntries = nil
	if err := r.Entries.Create(ctx, e); err != nil {
		return 0, err
	}
	e.SubEntries = subs

	if err := s.reconcile(ctx, r, dir, e, ref); err != nil {
		return 0, err
	}

	if err := r.Entries.Update(ctx, e); err != nil {
		return 0, err
	}
	return e.ID, nil
}

// resolve checks the owning account and normalizes the category reference
func (s *EntryService) resolve(ctx context.Context, dir *Directory, e *entry.Entry) (category.Ref, error) {
	if _, err := dir.Account(ctx, e.AccountID); err != nil {
		return category.Ref{}, err
	}
	ref, err := dir.Resolve(ctx, e.CategoryID)
	if err != nil {
		return category.Ref{}, err
	}
	e.CategoryID = ref.CategoryID()
	return ref, nil
}

// reconcile rebuilds the split parts and brings the mirror in line with ref.
// e must already be stored.
func (s *EntryService) reconcile(ctx context.Context, r Repositories, dir *Directory, e *entry.Entry, ref category.Ref) error {
	removed, err := r.Entries.DeleteBySplitEntryID(ctx, e.ID)
	if err != nil {
		return err
	}
	if removed > 0 {
		s.logger.Debug("Removed split parts", "entry_id", e.ID, "count", removed)
	}

	if ref.Kind == category.RefSplit {
		for _, sub := range e.SubEntries {
			if err := s.createPart(ctx, r, dir, e, sub); err != nil {
				return err
			}
		}
	}

	if ref.Kind == category.RefTransfer {
		return s.mirror(ctx, r, e, ref.AccountID)
	}

	if e.OtherID != nil {
		otherID := *e.OtherID
		e.OtherID = nil
		if err := deleteIfExists(ctx, r, otherID); err != nil {
			return err
		}
		s.logger.Debug("Removed transfer mirror", "entry_id", e.ID, "mirror_id", otherID)
	}
	return nil
}

func (s *EntryService) createPart(ctx context.Context, r Repositories, dir *Directory, parent, sub *entry.Entry) error {
	ref, err := dir.Resolve(ctx, sub.CategoryID)
	if err != nil {
		return err
	}

	splitID := parent.ID
	part := &entry.Entry{
		AccountID:    parent.AccountID,
		CategoryID:   ref.CategoryID(),
		Date:         parent.Date,
		CreatedAt:    parent.CreatedAt,
		Amount:       sub.Amount,
		Description:  sub.Description,
		Memo:         sub.Memo,
		Status:       sub.Status,
		SplitEntryID: &splitID,
	}
	if err := r.Entries.Create(ctx, part); err != nil {
		return fmt.Errorf("failed to store split part of entry %d: %w", parent.ID, err)
	}
	return nil
}

// mirror creates or refreshes the entry in targetAccountID that books e from
// the other side, and links both.
func (s *EntryService) mirror(ctx context.Context, r Repositories, e *entry.Entry, targetAccountID int64) error {
	var other *entry.Entry
	if e.OtherID != nil {
		stored, err := r.Entries.GetByID(ctx, *e.OtherID)
		switch {
		case err == nil:
			other = stored
		case !errors.Is(err, entry.ErrEntryNotFound{}):
			return err
		}
	}
	if other == nil {
		other = &entry.Entry{CreatedAt: e.CreatedAt}
	}

	ownerID, selfID := e.AccountID, e.ID
	other.AccountID = targetAccountID
	other.CategoryID = &ownerID
	other.Date = e.Date
	other.Amount = e.Amount
	other.Description = e.Description
	other.Memo = e.Memo
	other.Status = e.Status
	other.OtherID = &selfID
	other.SplitEntryID = nil

	if other.ID == 0 {
		if err := r.Entries.Create(ctx, other); err != nil {
			return fmt.Errorf("failed to store transfer mirror of entry %d: %w", e.ID, err)
		}
	} else if err := r.Entries.Update(ctx, other); err != nil {
		return err
	}

	mirrorID := other.ID
	e.OtherID = &mirrorID
	return nil
}

func deleteIfExists(ctx context.Context, r Repositories, id int64) error {
	err := r.Entries.Delete(ctx, id)
	if err != nil && !errors.Is(err, entry.ErrEntryNotFound{}) {
		return err
	}
	return nil
}
