package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCommand(env *Environment) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the root and split categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := openLedger(cmd, env)
			if err != nil {
				return fmt.Errorf("opening ledger: %w", err)
			}
			defer l.Close()

			sess, created, err := l.Sessions.Init(cmd.Context())
			if err != nil {
				return fmt.Errorf("initializing session: %w", err)
			}

			out := cmd.OutOrStdout()
			if created {
				fmt.Fprintln(out, "Initialized ledger session")
			} else {
				fmt.Fprintln(out, "Ledger session already initialized")
			}
			fmt.Fprintf(out, "  root category:  %d\n", sess.RootCategoryID)
			fmt.Fprintf(out, "  split category: %d\n", sess.SplitCategoryID)
			return nil
		},
	}
}
