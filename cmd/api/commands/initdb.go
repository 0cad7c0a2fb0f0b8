package commands

import (
	"github.com/spf13/cobra"

	"github.com/georgemunganga/product-manager/internal/database"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create missing tables and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.db.Close()

		if err := database.EnsureSchema(cmd.Context(), a.db); err != nil {
			return err
		}
		a.log.Info().Msg("schema ready")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initDBCmd)
}
