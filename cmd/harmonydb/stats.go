package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvicente/harmonydb/internal/constants"
	"github.com/mvicente/harmonydb/internal/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show library counts and the most played songs",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	db, _, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	songs, err := db.ListSongs(domain.SongSortDateAdded, domain.SortDescending, false)
	if err != nil {
		return err
	}
	playlists, err := db.ListPlaylistPreviews(domain.PlaylistSortName, domain.SortAscending)
	if err != nil {
		return err
	}
	events, err := db.EventsCount()
	if err != nil {
		return err
	}
	blacklisted, err := db.BlacklistLength()
	if err != nil {
		return err
	}

	fmt.Printf("Songs:       %d\n", len(songs))
	fmt.Printf("Playlists:   %d\n", len(playlists))
	fmt.Printf("Play events: %d\n", events)
	fmt.Printf("Blacklisted: %d\n", blacklisted)

	trending, err := db.Trending(constants.DefaultTrendingLimit)
	if err != nil {
		return err
	}
	if len(trending) > 0 {
		fmt.Println("\nMost played:")
		for _, song := range trending {
			artists := ""
			if song.ArtistsText != nil {
				artists = " - " + *song.ArtistsText
			}
			fmt.Printf("  %s%s (%dms)\n", song.Title, artists, song.TotalPlayTimeMs)
		}
	}
	return nil
}
