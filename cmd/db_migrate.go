package cmd

import (
	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

// migrateCmd creates or upgrades the ledger tables registered by the
// store packages
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "create or upgrade the ledger database tables",
	Run: func(cmd *cobra.Command, args []string) {
		database := provideDatabase()
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			cmd.PrintErrln("migrate ledger tables:", err)
			return
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
