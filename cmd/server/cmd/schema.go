package cmd

import (
	"fmt"

	"github.com/aqtareen/Taqreeb/internal/config"
	"github.com/spf13/cobra"
)

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create any missing database tables and exit",
		Long: `Connects to the configured database and creates the Taqreeb tables
if they do not exist yet. Existing tables and rows are left untouched,
so the command is safe to run on every deploy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			logger := config.NewLogger(cfg.Logging)

			gw, err := openDatabase(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer gw.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}
