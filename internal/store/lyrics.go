package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mvicente/harmonydb/internal/domain"
)

// UpsertLyrics writes the lyrics variants for a song, replacing an
// existing row.
func (db *DB) UpsertLyrics(lyrics domain.Lyrics) error {
	if _, err := db.Exec(`
INSERT INTO lyrics (song_id, fixed, synced)
VALUES (?, ?, ?)
ON CONFLICT (song_id) DO UPDATE SET
	fixed = excluded.fixed,
	synced = excluded.synced`,
		lyrics.SongID, lyrics.Fixed, lyrics.Synced); err != nil {
		return fmt.Errorf("failed to upsert lyrics: %w", wrapFK(err))
	}
	db.notifier.notify(tableLyrics)
	return nil
}

// GetLyrics returns a song's lyrics row, or nil when none stored.
func (db *DB) GetLyrics(songID string) (*domain.Lyrics, error) {
	var lyrics domain.Lyrics
	err := db.Get(&lyrics, "SELECT * FROM lyrics WHERE song_id = ?", songID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lyrics: %w", err)
	}
	return &lyrics, nil
}

// ObserveLyrics emits the lyrics row whenever it changes.
func (db *DB) ObserveLyrics(songID string) *Subscription[*domain.Lyrics] {
	return observe(db, []string{tableLyrics}, func() (*domain.Lyrics, error) {
		return db.GetLyrics(songID)
	})
}
