package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newAccountCommand(env *Environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}

	cmd.AddCommand(newAccountCreateCommand(env), newAccountListCommand(env))
	return cmd
}

func newAccountCreateCommand(env *Environment) *cobra.Command {
	var startBalance int64

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLedger(cmd, env)
			if err != nil {
				return fmt.Errorf("opening ledger: %w", err)
			}
			defer l.Close()

			acc, err := l.Accounts.Create(cmd.Context(), args[0], startBalance)
			if err != nil {
				return fmt.Errorf("creating account: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created account %d %q\n", acc.ID, acc.Name)
			return nil
		},
	}

	cmd.Flags().Int64Var(&startBalance, "start-balance", 0, "opening balance in minor units")
	return cmd
}

func newAccountListCommand(env *Environment) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := openLedger(cmd, env)
			if err != nil {
				return fmt.Errorf("opening ledger: %w", err)
			}
			defer l.Close()

			accounts, err := l.Accounts.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing accounts: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTART BALANCE")
			for _, acc := range accounts {
				fmt.Fprintf(w, "%d\t%s\t%d\n", acc.ID, acc.Name, acc.StartBalance)
			}
			return w.Flush()
		},
	}
}
