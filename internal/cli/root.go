// Package cli wires the dashboard commands.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/dkm94/invoice-dashboard/internal/config"
	"github.com/spf13/cobra"
)

var version = "dev"

// app carries what every subcommand shares once the root has loaded config.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "dashboard",
		Short:         "Invoice dashboard service",
		Long:          "Serves the authenticated invoice dashboard API and manages its database.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}

			cfg, err := config.LoadConfig(a.cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.cfg = cfg
			a.logger = cfg.Logger.NewLogger()
			slog.SetDefault(a.logger)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file path (YAML)")

	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newMigrateCmd(a))
	cmd.AddCommand(newSeedCmd(a))
	cmd.AddCommand(newCreateUserCmd(a))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dashboard %s\n", version)
		},
	}
}

func SetVersion(v string) {
	version = v
}

func Execute() error {
	return newRootCmd().Execute()
}
