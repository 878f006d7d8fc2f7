package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dkm94/invoice-dashboard/internal/adapters/postgres"
	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Long: `Apply the SQL migrations embedded in the binary, in name order.

Applied migrations are recorded with a checksum; a recorded migration whose
content has since changed stops the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := postgres.Connect(ctx, &a.cfg.Database, a.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := applyMigrations(ctx, db, a.logger)
			if err != nil {
				return err
			}

			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date.")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %s\n", name)
			}
			return nil
		},
	}
}

func applyMigrations(ctx context.Context, db *postgres.DB, logger *slog.Logger) ([]string, error) {
	applied, err := db.Migrate(ctx)
	if err != nil {
		logger.Error("migration failed", "error", err)
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	logger.Info("migrations applied", "count", len(applied))
	return applied, nil
}
