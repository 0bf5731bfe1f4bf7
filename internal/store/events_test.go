package store

import (
	"errors"
	"testing"

	"github.com/mvicente/harmonydb/internal/domain"
)

func TestInsertEvent_MissingSong(t *testing.T) {
	db := setupTestDB(t)

	err := db.InsertEvent(domain.Event{SongID: "nope", Timestamp: 1000, PlayTimeMs: 500})
	if !errors.Is(err, domain.ErrForeignKey) {
		t.Errorf("Expected ErrForeignKey for missing song, got: %v", err)
	}
}

func TestListEvents(t *testing.T) {
	db := setupTestDB(t)
	insertTestSong(t, db, "song1", "First")
	insertTestSong(t, db, "song2", "Second")

	if err := db.InsertEvent(domain.Event{SongID: "song1", Timestamp: 1000, PlayTimeMs: 500}); err != nil {
		t.Fatalf("InsertEvent failed: %v", err)
	}
	if err := db.InsertEvent(domain.Event{SongID: "song2", Timestamp: 2000, PlayTimeMs: 700}); err != nil {
		t.Fatalf("InsertEvent failed: %v", err)
	}

	events, err := db.ListEvents()
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	// Newest first, with the song joined in.
	if events[0].SongID != "song2" || events[0].Song.Title != "Second" {
		t.Errorf("Expected newest event for song2, got %+v", events[0])
	}
	if events[1].PlayTimeMs != 500 {
		t.Errorf("Expected play time 500, got %d", events[1].PlayTimeMs)
	}
}

func TestClearEventsFor(t *testing.T) {
	db := setupTestDB(t)
	insertTestSong(t, db, "song1", "First")
	insertTestSong(t, db, "song2", "Second")
	if err := db.InsertEvent(domain.Event{SongID: "song1", Timestamp: 1000, PlayTimeMs: 500}); err != nil {
		t.Fatalf("InsertEvent failed: %v", err)
	}
	if err := db.InsertEvent(domain.Event{SongID: "song2", Timestamp: 2000, PlayTimeMs: 700}); err != nil {
		t.Fatalf("InsertEvent failed: %v", err)
	}

	if err := db.ClearEventsFor("song1"); err != nil {
		t.Fatalf("ClearEventsFor failed: %v", err)
	}
	count, err := db.EventsCount()
	if err != nil {
		t.Fatalf("EventsCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 remaining event, got %d", count)
	}
}

func TestDeleteSong_CascadesEvents(t *testing.T) {
	db := setupTestDB(t)
	insertTestSong(t, db, "song1", "First")
	if err := db.InsertEvent(domain.Event{SongID: "song1", Timestamp: 1000, PlayTimeMs: 500}); err != nil {
		t.Fatalf("InsertEvent failed: %v", err)
	}

	if err := db.DeleteSong("song1"); err != nil {
		t.Fatalf("DeleteSong failed: %v", err)
	}
	count, err := db.EventsCount()
	if err != nil {
		t.Fatalf("EventsCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected events to cascade with song, got %d", count)
	}
}
