package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var blacklistCmd = &cobra.Command{
	Use:   "blacklist",
	Short: "Inspect and manage blacklisted songs",
}

var blacklistListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the ids of all blacklisted songs",
	RunE:  runBlacklistList,
}

var blacklistResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the blacklist flag from every song",
	RunE:  runBlacklistReset,
}

var blacklistToggleCmd = &cobra.Command{
	Use:   "toggle <song-id>",
	Short: "Flip the blacklist flag of a single song",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlacklistToggle,
}

func init() {
	blacklistCmd.AddCommand(blacklistListCmd, blacklistResetCmd, blacklistToggleCmd)
	rootCmd.AddCommand(blacklistCmd)
}

func runBlacklistList(cmd *cobra.Command, args []string) error {
	db, _, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	ids, err := db.BlacklistedIDs(context.Background())
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

func runBlacklistReset(cmd *cobra.Command, args []string) error {
	db, appLogger, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ResetBlacklist(); err != nil {
		return err
	}
	appLogger.Info("blacklist cleared")
	return nil
}

func runBlacklistToggle(cmd *cobra.Command, args []string) error {
	db, appLogger, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ToggleBlacklist(args[0]); err != nil {
		return err
	}
	appLogger.Info("blacklist flag toggled", "song_id", args[0])
	return nil
}
