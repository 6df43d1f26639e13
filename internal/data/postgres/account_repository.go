// Package postgres provides PostgreSQL implementations of the domain repositories.
// Every repository runs against a persistence.Querier so the same code serves
// both the pool and an open transaction.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/household-ledger/internal/domain/account"
	"github.com/household-ledger/internal/domain/category"
	"github.com/household-ledger/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

// AccountRepository implements the account.Repository interface for PostgreSQL
type AccountRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewAccountRepository creates a new PostgreSQL account repository.
func NewAccountRepository(logger *slog.Logger, db *persistence.PostgresDB) account.Repository {
	return &AccountRepository{
		querier: db.Querier(),
		logger:  logger,
	}
}

// WithTx returns a copy of the repository bound to tx
func (r *AccountRepository) WithTx(tx pgx.Tx) account.Repository {
	return &AccountRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores the account's category row first, so the account id lives in
// the category identifier space, then the account row itself. Callers run it
// inside a transaction.
func (r *AccountRepository) Create(ctx context.Context, acc *account.Account) error {
	categoryQuery := `
		INSERT INTO categories (name, kind, type, parent_id, position)
		VALUES ($1, $2, $3, NULL, 0)
		RETURNING id
	`

	var id int64
	err := r.querier.QueryRow(ctx, categoryQuery,
		acc.Name,
		string(category.KindAccount),
		string(category.TypeNormal),
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to create account category", "name", acc.Name, "error", err)
		return fmt.Errorf("failed to create account: %w", err)
	}

	accountQuery := `
		INSERT INTO accounts (id, start_balance, created_at)
		VALUES ($1, $2, $3)
	`

	_, err = r.querier.Exec(ctx, accountQuery, id, acc.StartBalance, acc.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create account", "id", id, "error", err)
		return fmt.Errorf("failed to create account: %w", err)
	}

	acc.ID = id
	return nil
}

// GetByID retrieves an account by its ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	query := `
		SELECT a.id, c.name, a.start_balance, a.created_at
		FROM accounts a
		JOIN categories c ON c.id = a.id
		WHERE a.id = $1
	`

	var acc account.Account
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&acc.ID,
		&acc.Name,
		&acc.StartBalance,
		&acc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound{AccountID: id}
		}
		r.logger.Error("Failed to get account", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &acc, nil
}

// GetAll returns every account ordered by name
func (r *AccountRepository) GetAll(ctx context.Context) ([]*account.Account, error) {
	query := `
		SELECT a.id, c.name, a.start_balance, a.created_at
		FROM accounts a
		JOIN categories c ON c.id = a.id
		ORDER BY c.name, a.id
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list accounts", "error", err)
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []*account.Account{}
	for rows.Next() {
		var acc account.Account
		if err := rows.Scan(&acc.ID, &acc.Name, &acc.StartBalance, &acc.CreatedAt); err != nil {
			r.logger.Error("Failed to scan account", "error", err)
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &acc)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over accounts", "error", err)
		return nil, fmt.Errorf("error iterating over accounts: %w", err)
	}

	return accounts, nil
}
