package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvicente/harmonydb/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Bring the database up to the current schema version",
	Long: `Opening the database applies any pending schema migrations, so this
command simply opens it and reports the resulting schema version.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	db, _, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	version, err := db.SchemaVersion()
	if err != nil {
		return err
	}
	fmt.Printf("Schema version: %d (target %d)\n", version, store.TargetVersion)
	return nil
}
