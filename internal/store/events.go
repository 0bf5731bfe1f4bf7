package store

import (
	"fmt"

	"github.com/mvicente/harmonydb/internal/domain"
)

// InsertEvent appends a play-history record. Events are append-only:
// never updated, only inserted or bulk-deleted.
func (db *DB) InsertEvent(event domain.Event) error {
	if _, err := db.Exec(`
INSERT OR IGNORE INTO events (song_id, timestamp, play_time_ms) VALUES (?, ?, ?)`,
		event.SongID, event.Timestamp, event.PlayTimeMs); err != nil {
		return fmt.Errorf("failed to insert event: %w", wrapFK(err))
	}
	db.notifier.notify(tableEvents)
	return nil
}

// ListEvents returns the full history joined with its songs, newest
// first.
func (db *DB) ListEvents() ([]domain.EventWithSong, error) {
	rows, err := db.Query(`
SELECT events.id, events.song_id, events.timestamp, events.play_time_ms,
	songs.id, songs.title, songs.artists_text, songs.duration_text, songs.thumbnail_url,
	songs.liked_at, songs.total_play_time_ms, songs.loudness_boost, songs.blacklisted, songs.explicit
FROM events
JOIN songs ON songs.id = events.song_id
ORDER BY events.timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close() //nolint:errcheck // deferred cleanup

	var events []domain.EventWithSong
	for rows.Next() {
		var e domain.EventWithSong
		if err := rows.Scan(
			&e.ID, &e.SongID, &e.Timestamp, &e.PlayTimeMs,
			&e.Song.ID, &e.Song.Title, &e.Song.ArtistsText, &e.Song.DurationText,
			&e.Song.ThumbnailURL, &e.Song.LikedAt, &e.Song.TotalPlayTimeMs,
			&e.Song.LoudnessBoost, &e.Song.Blacklisted, &e.Song.Explicit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}
	return events, nil
}

// ObserveEvents re-emits the history listing as plays are recorded.
func (db *DB) ObserveEvents() *Subscription[[]domain.EventWithSong] {
	return observe(db, []string{tableEvents, tableSongs}, db.ListEvents)
}

// EventsCount counts history rows.
func (db *DB) EventsCount() (int, error) {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM events"); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

// ClearEvents wipes the whole play history.
func (db *DB) ClearEvents() error {
	if _, err := db.Exec("DELETE FROM events"); err != nil {
		return fmt.Errorf("failed to clear events: %w", err)
	}
	db.notifier.notify(tableEvents)
	return nil
}

// ClearEventsFor wipes the history of one song.
func (db *DB) ClearEventsFor(songID string) error {
	if _, err := db.Exec("DELETE FROM events WHERE song_id = ?", songID); err != nil {
		return fmt.Errorf("failed to clear events for song: %w", err)
	}
	db.notifier.notify(tableEvents)
	return nil
}
