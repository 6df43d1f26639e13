package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/household-ledger/internal/domain/category"
	"github.com/household-ledger/internal/domain/session"
	"github.com/jackc/pgx/v5"
)

// SessionService creates and loads the session record
type SessionService struct {
	db     Transactor
	repos  Repositories
	logger *slog.Logger
}

// NewSessionService creates a new session service
func NewSessionService(logger *slog.Logger, db Transactor, repos Repositories) *SessionService {
	return &SessionService{db: db, repos: repos, logger: logger}
}

// Current returns session.ErrNotInitialized until Init ran
func (s *SessionService) Current(ctx context.Context) (*session.Session, error) {
	return s.repos.Sessions.Get(ctx)
}

// Init creates the root and split categories and the session pointing at
// them. Running it again returns the existing session.
func (s *SessionService) Init(ctx context.Context) (*session.Session, bool, error) {
	var (
		sess    *session.Session
		created bool
	)
	err := s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		r := s.repos.withTx(tx)

		existing, err := r.Sessions.Get(ctx)
		if err == nil {
			sess = existing
			return nil
		}
		if !errors.Is(err, session.ErrNotInitialized) {
			return err
		}

		root, err := category.NewCategory(session.RootCategoryName, category.TypeNormal, nil)
		if err != nil {
			return err
		}
		if err := r.Categories.Create(ctx, root); err != nil {
			return err
		}

		split, err := category.NewCategory(session.SplitCategoryName, category.TypeSplit, &root.ID)
		if err != nil {
			return err
		}
		if err := r.Categories.Create(ctx, split); err != nil {
			return err
		}

		sess = &session.Session{RootCategoryID: root.ID, SplitCategoryID: split.ID}
		if err := r.Sessions.Create(ctx, sess); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		s.logger.Info("Session initialized", "root_category_id", sess.RootCategoryID, "split_category_id", sess.SplitCategoryID)
	}
	return sess, created, nil
}
