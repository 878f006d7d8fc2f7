package cli

import (
	"fmt"

	"github.com/dkm94/invoice-dashboard/internal/adapters/postgres"
	"github.com/dkm94/invoice-dashboard/internal/adapters/security"
	"github.com/dkm94/invoice-dashboard/internal/core/domain"
	"github.com/dkm94/invoice-dashboard/internal/core/service"
	"github.com/spf13/cobra"
)

func newCreateUserCmd(a *app) *cobra.Command {
	var name string
	var creds domain.Credentials

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Register a dashboard user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := postgres.Connect(ctx, &a.cfg.Database, a.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			auth := service.NewAuthService(
				postgres.NewUserRepository(db),
				postgres.NewSessionRepository(db),
				security.NewBcryptHasher(0),
				a.cfg.Session.TTL,
				a.logger,
			)

			user, err := auth.Register(ctx, name, creds)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&creds.Email, "email", "", "login email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "login password (at least 6 characters)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
