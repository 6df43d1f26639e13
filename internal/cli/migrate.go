package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newMigrateCommand(env *Environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := env.Migrator.Up(env.DatabaseURL); err != nil {
					return fmt.Errorf("applying migrations: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Roll back migrations, one step by default",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) > 0 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n <= 0 {
						return fmt.Errorf("invalid steps %q: must be a positive integer", args[0])
					}
					steps = n
				}
				if err := env.Migrator.Down(env.DatabaseURL, steps); err != nil {
					return fmt.Errorf("rolling back migrations: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rolled back %d migration(s)\n", steps)
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				version, dirty, err := env.Migrator.Version(env.DatabaseURL)
				if err != nil {
					return fmt.Errorf("reading schema version: %w", err)
				}
				out := cmd.OutOrStdout()
				if dirty {
					fmt.Fprintf(out, "%d (dirty)\n", version)
				} else {
					fmt.Fprintf(out, "%d\n", version)
				}
				return nil
			},
		},
	)

	return cmd
}
