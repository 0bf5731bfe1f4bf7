package store

import (
	"testing"

	"github.com/mvicente/harmonydb/internal/domain"
)

func TestUpsertLyrics(t *testing.T) {
	db := setupTestDB(t)
	insertTestSong(t, db, "song1", "First")

	fixed := "plain words"
	if err := db.UpsertLyrics(domain.Lyrics{SongID: "song1", Fixed: &fixed}); err != nil {
		t.Fatalf("UpsertLyrics failed: %v", err)
	}

	lyrics, err := db.GetLyrics("song1")
	if err != nil {
		t.Fatalf("GetLyrics failed: %v", err)
	}
	if lyrics == nil || lyrics.Fixed == nil || *lyrics.Fixed != fixed {
		t.Errorf("Expected fixed lyrics, got %+v", lyrics)
	}
	if lyrics.Synced != nil {
		t.Errorf("Expected nil synced variant, got %v", lyrics.Synced)
	}

	// Storing the synced variant replaces the row.
	synced := "[00:01.00] plain words"
	if err := db.UpsertLyrics(domain.Lyrics{SongID: "song1", Fixed: &fixed, Synced: &synced}); err != nil {
		t.Fatalf("UpsertLyrics failed: %v", err)
	}
	lyrics, err = db.GetLyrics("song1")
	if err != nil {
		t.Fatalf("GetLyrics failed: %v", err)
	}
	if lyrics.Synced == nil || *lyrics.Synced != synced {
		t.Errorf("Expected synced lyrics, got %+v", lyrics)
	}
}

func TestGetLyrics_Missing(t *testing.T) {
	db := setupTestDB(t)

	lyrics, err := db.GetLyrics("nope")
	if err != nil {
		t.Fatalf("GetLyrics failed: %v", err)
	}
	if lyrics != nil {
		t.Errorf("Expected nil for missing lyrics, got %+v", lyrics)
	}
}
