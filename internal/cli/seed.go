package cli

import (
	"fmt"

	"github.com/dkm94/invoice-dashboard/internal/adapters/postgres"
	"github.com/dkm94/invoice-dashboard/internal/adapters/security"
	"github.com/dkm94/invoice-dashboard/internal/seed"
	"github.com/spf13/cobra"
)

func newSeedCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load users, customers and invoices from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := seed.Load(file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := postgres.Connect(ctx, &a.cfg.Database, a.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			seeder := seed.NewSeeder(
				postgres.NewUserRepository(db),
				postgres.NewCustomerRepository(db),
				postgres.NewInvoiceRepository(db),
				security.NewBcryptHasher(0),
				a.logger,
			)

			res, err := seeder.Seed(ctx, f)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d users, %d customers, %d invoices (%d skipped)\n",
				res.Users, res.Customers, res.Invoices, res.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "seed.yaml", "seed file path")
	return cmd
}
