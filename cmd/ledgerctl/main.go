package main

import (
	"context"
	"fmt"
	"os"

	"github.com/household-ledger/internal/cli"
	"github.com/household-ledger/internal/config"
	"github.com/household-ledger/internal/data/postgres"
	"github.com/household-ledger/internal/ledger"
	"github.com/household-ledger/internal/logger"
	"github.com/household-ledger/internal/platform/persistence"
)

type migrator struct{}

func (migrator) Up(databaseURL string) error { return persistence.RunMigrations(databaseURL) }

func (migrator) Down(databaseURL string, steps int) error {
	return persistence.RollbackMigrations(databaseURL, steps)
}

func (migrator) Version(databaseURL string) (uint, bool, error) {
	return persistence.MigrationVersion(databaseURL)
}

func main() {
	cfg, err := config.LoadConfig("ledgerctl")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)

	env := &cli.Environment{
		DatabaseURL: cfg.Postgres.URL,
		Migrator:    migrator{},
		Open: func(ctx context.Context) (*cli.Ledger, error) {
			db, err := persistence.NewPostgresDB(ctx, log, &cfg.Postgres)
			if err != nil {
				return nil, err
			}
			repos := postgres.NewRepositories(log, db)
			return &cli.Ledger{
				Sessions: ledger.NewSessionService(log, db, repos),
				Accounts: ledger.NewAccountService(log, db, repos),
				Close:    db.Close,
			}, nil
		},
	}

	if err := cli.NewRootCommand(env).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
