package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/household-ledger/internal/domain/session"
	"github.com/household-ledger/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

// SessionRepository implements the session.Repository interface for PostgreSQL
type SessionRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewSessionRepository creates a new PostgreSQL session repository
func NewSessionRepository(logger *slog.Logger, db *persistence.PostgresDB) session.Repository {
	return &SessionRepository{
		querier: db.Querier(),
		logger:  logger,
	}
}

// WithTx returns a copy of the repository bound to tx
func (r *SessionRepository) WithTx(tx pgx.Tx) session.Repository {
	return &SessionRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Get returns the first session record
func (r *SessionRepository) Get(ctx context.Context) (*session.Session, error) {
	query := `
		SELECT id, root_category_id, split_category_id
		FROM sessions
		ORDER BY id
		LIMIT 1
	`

	var s session.Session
	err := r.querier.QueryRow(ctx, query).Scan(&s.ID, &s.RootCategoryID, &s.SplitCategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrNotInitialized
		}
		r.logger.Error("Failed to get session", "error", err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &s, nil
}

// Create stores the session record and assigns its ID
func (r *SessionRepository) Create(ctx context.Context, s *session.Session) error {
	query := `
		INSERT INTO sessions (root_category_id, split_category_id)
		VALUES ($1, $2)
		RETURNING id
	`

	if err := r.querier.QueryRow(ctx, query, s.RootCategoryID, s.SplitCategoryID).Scan(&s.ID); err != nil {
		r.logger.Error("Failed to create session", "error", err)
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}
