package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/georgemunganga/product-manager/internal/database"
)

var confirmReset bool

var resetDBCmd = &cobra.Command{
	Use:   "reset-db",
	Short: "Drop every table and recreate the schema empty",
	Long: `Drop every product manager table and recreate the schema.

All data is lost. Pass --yes to confirm.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmReset {
			return fmt.Errorf("refusing to drop data without --yes")
		}
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.db.Close()

		if err := database.Reset(cmd.Context(), a.db); err != nil {
			return err
		}
		a.log.Warn().Msg("database reset")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetDBCmd)

	resetDBCmd.Flags().BoolVarP(&confirmReset, "yes", "y", false, "Confirm that all data may be dropped")
}
