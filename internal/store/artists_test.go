package store

import (
	"testing"
	"time"

	"github.com/mvicente/harmonydb/internal/domain"
)

func TestUpsertArtist(t *testing.T) {
	db := setupTestDB(t)

	name := "Band"
	if err := db.UpsertArtist(domain.Artist{ID: "artist1", Name: &name}); err != nil {
		t.Fatalf("UpsertArtist failed: %v", err)
	}

	artist, err := db.GetArtist("artist1")
	if err != nil {
		t.Fatalf("GetArtist failed: %v", err)
	}
	if artist == nil || artist.Name == nil || *artist.Name != "Band" {
		t.Errorf("Expected artist 'Band', got %+v", artist)
	}

	// Replacing updates in place.
	renamed := "The Band"
	bookmarked := time.Now().UnixMilli()
	if err := db.UpsertArtist(domain.Artist{ID: "artist1", Name: &renamed, BookmarkedAt: &bookmarked}); err != nil {
		t.Fatalf("UpsertArtist failed: %v", err)
	}
	artist, err = db.GetArtist("artist1")
	if err != nil {
		t.Fatalf("GetArtist failed: %v", err)
	}
	if *artist.Name != "The Band" || artist.BookmarkedAt == nil {
		t.Errorf("Expected updated artist, got %+v", artist)
	}
}

func TestListArtists_OnlyBookmarked(t *testing.T) {
	db := setupTestDB(t)

	followed := "Followed"
	ignored := "Ignored"
	at := time.Now().UnixMilli()
	if err := db.UpsertArtist(domain.Artist{ID: "a1", Name: &followed, BookmarkedAt: &at}); err != nil {
		t.Fatalf("UpsertArtist failed: %v", err)
	}
	if err := db.UpsertArtist(domain.Artist{ID: "a2", Name: &ignored}); err != nil {
		t.Fatalf("UpsertArtist failed: %v", err)
	}

	artists, err := db.ListArtists(domain.ArtistSortName, domain.SortAscending)
	if err != nil {
		t.Fatalf("ListArtists failed: %v", err)
	}
	if len(artists) != 1 || artists[0].ID != "a1" {
		t.Errorf("Expected only bookmarked artist, got %+v", artists)
	}
}

func TestDeleteArtist_CascadesJoins(t *testing.T) {
	db := setupTestDB(t)
	if err := db.InsertMediaItem(domain.MediaItem{
		ID:    "song1",
		Title: "Track",
		Metadata: &domain.MediaMetadata{
			ArtistNames: []string{"Band"},
			ArtistIDs:   []string{"artist1"},
		},
	}); err != nil {
		t.Fatalf("InsertMediaItem failed: %v", err)
	}

	if err := db.DeleteArtist("artist1"); err != nil {
		t.Fatalf("DeleteArtist failed: %v", err)
	}
	artists, err := db.SongArtistInfo("song1")
	if err != nil {
		t.Fatalf("SongArtistInfo failed: %v", err)
	}
	if len(artists) != 0 {
		t.Errorf("Expected join rows to cascade, got %+v", artists)
	}
}

func TestArtistSongs(t *testing.T) {
	db := setupTestDB(t)
	meta := &domain.MediaMetadata{
		ArtistNames: []string{"Band"},
		ArtistIDs:   []string{"artist1"},
	}
	if err := db.InsertMediaItem(domain.MediaItem{ID: "played", Title: "Played", Metadata: meta}); err != nil {
		t.Fatalf("InsertMediaItem failed: %v", err)
	}
	if err := db.InsertMediaItem(domain.MediaItem{ID: "unplayed", Title: "Unplayed", Metadata: meta}); err != nil {
		t.Fatalf("InsertMediaItem failed: %v", err)
	}
	if err := db.IncrementTotalPlayTime("played", 1000); err != nil {
		t.Fatalf("IncrementTotalPlayTime failed: %v", err)
	}

	songs, err := db.ArtistSongs("artist1")
	if err != nil {
		t.Fatalf("ArtistSongs failed: %v", err)
	}
	if len(songs) != 1 || songs[0].ID != "played" {
		t.Errorf("Expected only the played song, got %+v", songs)
	}
}
