package postgres

import (
	"log/slog"

	"github.com/household-ledger/internal/ledger"
	"github.com/household-ledger/internal/platform/persistence"
)

// NewRepositories wires every PostgreSQL repository the ledger needs
func NewRepositories(logger *slog.Logger, db *persistence.PostgresDB) ledger.Repositories {
	return ledger.Repositories{
		Accounts:   NewAccountRepository(logger, db),
		Categories: NewCategoryRepository(logger, db),
		Entries:    NewEntryRepository(logger, db),
		Imports:    NewImportRepository(logger, db),
		Sessions:   NewSessionRepository(logger, db),
	}
}
