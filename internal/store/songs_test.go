package store

import (
	"testing"
	"time"

	"github.com/mvicente/harmonydb/internal/domain"
)

func TestListSongs_CaseInsensitiveOrdering(t *testing.T) {
	db := setupTestDB(t)
	insertTestSong(t, db, "song1", "Banana")
	insertTestSong(t, db, "song2", "apple")
	insertTestSong(t, db, "song3", "cherry")

	songs, err := db.ListSongs(domain.SongSortTitle, domain.SortAscending, false)
	if err != nil {
		t.Fatalf("ListSongs failed: %v", err)
	}
	if len(songs) != 3 {
		t.Fatalf("Expected 3 songs, got %d", len(songs))
	}

	want := []string{"apple", "Banana", "cherry"}
	for i, title := range want {
		if songs[i].Title != title {
			t.Errorf("Position %d: expected %q, got %q", i, title, songs[i].Title)
		}
	}
}

func TestListSongs_LocalScope(t *testing.T) {
	db := setupTestDB(t)
	insertTestSong(t, db, "remote1", "Remote Song")
	insertTestSong(t, db, "local:file1", "Local Song")

	remote, err := db.ListSongs(domain.SongSortTitle, domain.SortAscending, false)
	if err != nil {
		t.Fatalf("ListSongs failed: %v", err)
	}
	if len(remote) != 1 || remote[0].ID != "remote1" {
		t.Errorf("Expected only remote1, got %+v", remote)
	}

	local, err := db.ListSongs(domain.SongSortTitle, domain.SortAscending, true)
	if err != nil {
		t.Fatalf("ListSongs failed: %v", err)
	}
	if len(local) != 1 || local[0].ID != "local:file1" {
		t.Errorf("Expected only local:file1, got %+v", local)
	}
	if !local[0].IsLocal() {
		t.Error("Expected IsLocal to be true for local song")
	}
}

func TestGetSong_Missing(t *testing.T) {
	db := setupTestDB(t)

	song, err := db.GetSong("nope")
	if err != nil {
		t.Fatalf("GetSong failed: %v", err)
	}
	if song != nil {
		t.Errorf("Expected nil for missing song, got %+v", song)
	}
}

func TestLike(t *testing.T) {
	db := setupTestDB(t)
	insertTestSong(t, db, "song1", "First")

	now := time.Now().UnixMilli()
	if err := db.Like("song1", &now); err != nil {
		t.Fatalf("Like failed: %v", err)
	}

	likedAt, err := db.LikedAt("song1")
	if err != nil {
		t.Fatalf("LikedAt failed: %v", err)
	}
	if likedAt == nil || *likedAt != now {
		t.Errorf("Expected liked_at %d, got %v", now, likedAt)
	}

	favorites, err := db.ListFavorites(domain.SongSortDateAdded, domain.SortDescending)
	if err != nil {
		t.Fatalf("ListFavorites failed: %v", err)
	}
	if len(favorites) != 1 {
		t.Fatalf("Expected 1 favorite, got %d", len(favorites))
	}

	// Unlike clears the marker.
	if err := db.Like("song1", nil); err != nil {
		t.Fatalf("Like(nil) failed: %v", err)
	}
	likedAt, err = db.LikedAt("song1")
	if err != nil {
		t.Fatalf("LikedAt failed: %v", err)
	}
	if likedAt != nil {
		t.Errorf("Expected cleared liked_at, got %v", likedAt)
	}
}

func TestIncrementTotalPlayTime(t *testing.T) {
	db := setupTestDB(t)
	insertTestSong(t, db, "song1", "First")

	if err := db.IncrementTotalPlayTime("song1", 30000); err != nil {
		t.Fatalf("IncrementTotalPlayTime failed: %v", err)
	}
	if err := db.IncrementTotalPlayTime("song1", 15000); err != nil {
		t.Fatalf("IncrementTotalPlayTime failed: %v", err)
	}

	song, err := db.GetSong("song1")
	if err != nil {
		t.Fatalf("GetSong failed: %v", err)
	}
	if song.TotalPlayTimeMs != 45000 {
		t.Errorf("Expected accrued play time 45000, got %d", song.TotalPlayTimeMs)
	}
}

func TestUpdateDurationText(t *testing.T) {
	db := setupTestDB(t)
	insertTestSong(t, db, "song1", "First")

	if err := db.UpdateDurationText("song1", "3:45"); err != nil {
		t.Fatalf("UpdateDurationText failed: %v", err)
	}
	song, err := db.GetSong("song1")
	if err != nil {
		t.Fatalf("GetSong failed: %v", err)
	}
	if song.DurationText == nil || *song.DurationText != "3:45" {
		t.Errorf("Expected duration 3:45, got %v", song.DurationText)
	}
}

func TestLoudnessBoost(t *testing.T) {
	db := setupTestDB(t)
	insertTestSong(t, db, "song1", "First")

	boost := 2.5
	if err := db.SetLoudnessBoost("song1", &boost); err != nil {
		t.Fatalf("SetLoudnessBoost failed: %v", err)
	}
	got, err := db.LoudnessBoost("song1")
	if err != nil {
		t.Fatalf("LoudnessBoost failed: %v", err)
	}
	if got == nil || *got != boost {
		t.Errorf("Expected boost %v, got %v", boost, got)
	}

	if err := db.SetLoudnessBoost("song1", nil); err != nil {
		t.Fatalf("SetLoudnessBoost(nil) failed: %v", err)
	}
	got, err = db.LoudnessBoost("song1")
	if err != nil {
		t.Fatalf("LoudnessBoost failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected cleared boost, got %v", got)
	}
}

func TestSearchSongs(t *testing.T) {
	db := setupTestDB(t)
	insertTestSong(t, db, "song1", "Midnight Train")
	insertTestSong(t, db, "song2", "Morning Light")
	if err := db.InsertMediaItem(domain.MediaItem{ID: "song3", Title: "Other", ArtistsText: "Night Owls"}); err != nil {
		t.Fatalf("InsertMediaItem failed: %v", err)
	}

	// Matches both title and artist text.
	songs, err := db.SearchSongs("night")
	if err != nil {
		t.Fatalf("SearchSongs failed: %v", err)
	}
	if len(songs) != 2 {
		t.Errorf("Expected 2 matches for 'night', got %d", len(songs))
	}
}

func TestDeleteSong(t *testing.T) {
	db := setupTestDB(t)
	insertTestSong(t, db, "song1", "First")

	if err := db.DeleteSong("song1"); err != nil {
		t.Fatalf("DeleteSong failed: %v", err)
	}
	song, err := db.GetSong("song1")
	if err != nil {
		t.Fatalf("GetSong failed: %v", err)
	}
	if song != nil {
		t.Errorf("Expected song deleted, got %+v", song)
	}
}

func TestHistory(t *testing.T) {
	db := setupTestDB(t)
	insertTestSong(t, db, "song1", "First")
	insertTestSong(t, db, "song2", "Second")

	base := time.Now().UnixMilli()
	events := []domain.Event{
		{SongID: "song1", Timestamp: base, PlayTimeMs: 1000},
		{SongID: "song2", Timestamp: base + 1, PlayTimeMs: 1000},
		{SongID: "song1", Timestamp: base + 2, PlayTimeMs: 1000},
	}
	for _, e := range events {
		if err := db.InsertEvent(e); err != nil {
			t.Fatalf("InsertEvent failed: %v", err)
		}
	}

	// Each song appears once, ordered by its most recent play.
	history, err := db.History(10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("Expected 2 history entries, got %d", len(history))
	}
	if history[0].ID != "song1" || history[1].ID != "song2" {
		t.Errorf("Expected order [song1 song2], got [%s %s]", history[0].ID, history[1].ID)
	}

	limited, err := db.History(1)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Expected 1 entry with size 1, got %d", len(limited))
	}
}

func TestTrending_ExcludesLocal(t *testing.T) {
	db := setupTestDB(t)
	insertTestSong(t, db, "remote1", "Remote")
	insertTestSong(t, db, "local:file1", "Local")

	now := time.Now().UnixMilli()
	if err := db.InsertEvent(domain.Event{SongID: "remote1", Timestamp: now, PlayTimeMs: 5000}); err != nil {
		t.Fatalf("InsertEvent failed: %v", err)
	}
	if err := db.InsertEvent(domain.Event{SongID: "local:file1", Timestamp: now, PlayTimeMs: 9000}); err != nil {
		t.Fatalf("InsertEvent failed: %v", err)
	}

	trending, err := db.Trending(10)
	if err != nil {
		t.Fatalf("Trending failed: %v", err)
	}
	if len(trending) != 1 || trending[0].ID != "remote1" {
		t.Errorf("Expected only remote1 in trending, got %+v", trending)
	}
}

func TestTrendingInPeriod(t *testing.T) {
	db := setupTestDB(t)
	insertTestSong(t, db, "song1", "Old Hit")
	insertTestSong(t, db, "song2", "New Hit")

	now := time.Now().UnixMilli()
	week := int64(7 * 24 * time.Hour / time.Millisecond)
	if err := db.InsertEvent(domain.Event{SongID: "song1", Timestamp: now - 2*week, PlayTimeMs: 90000}); err != nil {
		t.Fatalf("InsertEvent failed: %v", err)
	}
	if err := db.InsertEvent(domain.Event{SongID: "song2", Timestamp: now - 1000, PlayTimeMs: 1000}); err != nil {
		t.Fatalf("InsertEvent failed: %v", err)
	}

	trending, err := db.TrendingInPeriod(10, now, week)
	if err != nil {
		t.Fatalf("TrendingInPeriod failed: %v", err)
	}
	if len(trending) != 1 || trending[0].ID != "song2" {
		t.Errorf("Expected only song2 within period, got %+v", trending)
	}
}
