package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or inspect database migrations",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "up"
			if len(args) == 1 {
				action = args[0]
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			switch action {
			case "up":
				if err := a.repo.RunMigrations(); err != nil {
					return err
				}
			case "down":
				if err := a.repo.RollbackMigration(); err != nil {
					return err
				}
			case "status":
			default:
				return fmt.Errorf("unknown migrate action %q", action)
			}

			st, err := a.repo.MigrationStatus()
			if err != nil {
				return err
			}
			a.log.Info("migration status",
				zap.String("action", action),
				zap.Uint("current", st.CurrentVersion),
				zap.Uint("latest", st.LatestVersion),
				zap.Bool("dirty", st.Dirty),
				zap.Bool("pending", st.Pending))
			return nil
		},
	}
	return cmd
}
