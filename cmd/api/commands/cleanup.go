package commands

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/georgemunganga/product-manager/internal/database"
	"github.com/georgemunganga/product-manager/internal/modules/maintenance"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove tags, customers and quotes nothing refers to",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.db.Close()

		svc := maintenance.NewService(maintenance.NewPostgresRepository(a.db), database.NewTxManager(a.db))
		rep, err := svc.CleanOrphans(a.log.WithContext(cmd.Context()))
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}
