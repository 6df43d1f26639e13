package ledger

import (
	"context"
	"log/slog"

	"github.com/household-ledger/internal/domain/account"
	"github.com/jackc/pgx/v5"
)

// AccountService manages accounts
type AccountService struct {
	db     Transactor
	repos  Repositories
	logger *slog.Logger
}

// NewAccountService creates a new account service running its writes through db
func NewAccountService(logger *slog.Logger, db Transactor, repos Repositories) *AccountService {
	return &AccountService{db: db, repos: repos, logger: logger}
}

// Create opens a new account with the given starting balance
func (s *AccountService) Create(ctx context.Context, name string, startBalance int64) (*account.Account, error) {
	acc, err := account.NewAccount(name, startBalance)
	if err != nil {
		return nil, err
	}

	err = s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		return s.repos.Accounts.WithTx(tx).Create(ctx, acc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Account created", "account_id", acc.ID, "name", acc.Name)
	return acc, nil
}

// Get returns ErrAccountNotFound for unknown ids
func (s *AccountService) Get(ctx context.Context, id int64) (*account.Account, error) {
	return s.repos.Accounts.GetByID(ctx, id)
}

// List returns every account ordered by name
func (s *AccountService) List(ctx context.Context) ([]*account.Account, error) {
	return s.repos.Accounts.GetAll(ctx)
}
