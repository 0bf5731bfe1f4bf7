package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mvicente/harmonydb/internal/domain"
)

// UpsertFormat writes a song's resolved stream metadata, replacing an
// existing row. Created lazily when stream metadata is first resolved.
func (db *DB) UpsertFormat(format domain.Format) error {
	if _, err := db.Exec(`
INSERT INTO formats (song_id, loudness_db, content_length)
VALUES (?, ?, ?)
ON CONFLICT (song_id) DO UPDATE SET
	loudness_db = excluded.loudness_db,
	content_length = excluded.content_length`,
		format.SongID, format.LoudnessDb, format.ContentLength); err != nil {
		return fmt.Errorf("failed to upsert format: %w", wrapFK(err))
	}
	db.notifier.notify(tableFormats)
	return nil
}

// GetFormat returns a song's format row, or nil.
func (db *DB) GetFormat(songID string) (*domain.Format, error) {
	var format domain.Format
	err := db.Get(&format, "SELECT * FROM formats WHERE song_id = ?", songID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get format: %w", err)
	}
	return &format, nil
}

// ObserveFormat emits the format row whenever it changes.
func (db *DB) ObserveFormat(songID string) *Subscription[*domain.Format] {
	return observe(db, []string{tableFormats}, func() (*domain.Format, error) {
		return db.GetFormat(songID)
	})
}

// LoudnessDb returns the measured loudness of a song's stream, nil
// when unknown.
func (db *DB) LoudnessDb(songID string) (*float64, error) {
	var loudness *float64
	err := db.Get(&loudness, "SELECT loudness_db FROM formats WHERE song_id = ?", songID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get loudness: %w", err)
	}
	return loudness, nil
}
