package store

import (
	"testing"

	"github.com/mvicente/harmonydb/internal/domain"
)

func TestReplaceQueue(t *testing.T) {
	db := setupTestDB(t)

	first := []domain.QueuedMediaItem{
		{MediaID: "a", Title: "Alpha"},
		{MediaID: "b", Title: "Beta"},
	}
	if err := db.ReplaceQueue(first); err != nil {
		t.Fatalf("ReplaceQueue failed: %v", err)
	}

	queue, err := db.Queue()
	if err != nil {
		t.Fatalf("Queue failed: %v", err)
	}
	if len(queue) != 2 || queue[0].MediaID != "a" || queue[1].MediaID != "b" {
		t.Errorf("Expected queue [a b], got %+v", queue)
	}
	if queue[0].Position != 0 || queue[1].Position != 1 {
		t.Errorf("Expected positions from slice order, got %+v", queue)
	}

	// Replacing swaps the whole snapshot.
	second := []domain.QueuedMediaItem{{MediaID: "c", Title: "Gamma"}}
	if err := db.ReplaceQueue(second); err != nil {
		t.Fatalf("ReplaceQueue failed: %v", err)
	}
	queue, err = db.Queue()
	if err != nil {
		t.Fatalf("Queue failed: %v", err)
	}
	if len(queue) != 1 || queue[0].MediaID != "c" {
		t.Errorf("Expected queue [c], got %+v", queue)
	}
}

func TestClearQueue(t *testing.T) {
	db := setupTestDB(t)
	if err := db.ReplaceQueue([]domain.QueuedMediaItem{{MediaID: "a", Title: "Alpha"}}); err != nil {
		t.Fatalf("ReplaceQueue failed: %v", err)
	}

	if err := db.ClearQueue(); err != nil {
		t.Fatalf("ClearQueue failed: %v", err)
	}
	queue, err := db.Queue()
	if err != nil {
		t.Fatalf("Queue failed: %v", err)
	}
	if len(queue) != 0 {
		t.Errorf("Expected empty queue, got %+v", queue)
	}
}

func TestPipedSessions(t *testing.T) {
	db := setupTestDB(t)

	id, err := db.InsertPipedSession(domain.PipedSession{
		APIBaseURL: "https://piped.example.com",
		Token:      "tok",
		Username:   "user",
	})
	if err != nil {
		t.Fatalf("InsertPipedSession failed: %v", err)
	}
	if id == 0 {
		t.Error("Expected generated session id")
	}

	sessions, err := db.ListPipedSessions()
	if err != nil {
		t.Fatalf("ListPipedSessions failed: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Username != "user" {
		t.Errorf("Expected stored session, got %+v", sessions)
	}

	if err := db.UpdatePipedSession(domain.PipedSession{
		ID: id, APIBaseURL: "https://piped.example.com", Token: "tok2", Username: "user",
	}); err != nil {
		t.Fatalf("UpdatePipedSession failed: %v", err)
	}
	sessions, err = db.ListPipedSessions()
	if err != nil {
		t.Fatalf("ListPipedSessions failed: %v", err)
	}
	if sessions[0].Token != "tok2" {
		t.Errorf("Expected rotated token, got %q", sessions[0].Token)
	}

	if err := db.DeletePipedSession(id); err != nil {
		t.Fatalf("DeletePipedSession failed: %v", err)
	}
	sessions, err = db.ListPipedSessions()
	if err != nil {
		t.Fatalf("ListPipedSessions failed: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("Expected no sessions after delete, got %+v", sessions)
	}
}
