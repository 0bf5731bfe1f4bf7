package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Flush the write-ahead log into the main database file",
	RunE:  runCheckpoint,
}

func init() {
	rootCmd.AddCommand(checkpointCmd)
}

func runCheckpoint(cmd *cobra.Command, args []string) error {
	db, appLogger, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Checkpoint(); err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	appLogger.Info("WAL checkpoint complete")
	return nil
}
