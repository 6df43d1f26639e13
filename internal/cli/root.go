// Package cli implements the ledgerctl administration commands.
package cli

import (
	"context"

	"github.com/household-ledger/internal/domain/account"
	"github.com/household-ledger/internal/domain/session"
	"github.com/spf13/cobra"
)

// Migrator applies and inspects the schema migrations
type Migrator interface {
	Up(databaseURL string) error
	Down(databaseURL string, steps int) error
	Version(databaseURL string) (uint, bool, error)
}

// SessionInitializer creates the ledger session
type SessionInitializer interface {
	Init(ctx context.Context) (*session.Session, bool, error)
}

// AccountManager creates and lists accounts
type AccountManager interface {
	Create(ctx context.Context, name string, startBalance int64) (*account.Account, error)
	List(ctx context.Context) ([]*account.Account, error)
}

// Ledger is an opened store with the services the commands use
type Ledger struct {
	Sessions SessionInitializer
	Accounts AccountManager
	Close    func()
}

// Environment carries what the commands depend on
type Environment struct {
	DatabaseURL string
	Migrator    Migrator
	Open        func(ctx context.Context) (*Ledger, error)
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(env *Environment) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Household ledger administration",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newInitCommand(env),
		newMigrateCommand(env),
		newAccountCommand(env),
	)

	return rootCmd
}

func openLedger(cmd *cobra.Command, env *Environment) (*Ledger, error) {
	l, err := env.Open(cmd.Context())
	if err != nil {
		return nil, err
	}
	if l.Close == nil {
		l.Close = func() {}
	}
	return l, nil
}
