package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvicente/harmonydb/internal/constants"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and manage the playback history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print recently played songs, most recent first",
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all playback events",
	RunE:  runHistoryClear,
}

var historySize int

func init() {
	historyListCmd.Flags().IntVarP(&historySize, "size", "n", constants.DefaultHistorySize, "maximum number of songs to print")
	historyCmd.AddCommand(historyListCmd, historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	db, _, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	songs, err := db.History(historySize)
	if err != nil {
		return err
	}
	for _, song := range songs {
		artists := ""
		if song.ArtistsText != nil {
			artists = " - " + *song.ArtistsText
		}
		fmt.Printf("%s%s\n", song.Title, artists)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	db, appLogger, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ClearEvents(); err != nil {
		return err
	}
	appLogger.Info("playback history cleared")
	return nil
}
