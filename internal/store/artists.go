package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mvicente/harmonydb/internal/domain"
)

// GetArtist returns the artist with the given id, or nil.
func (db *DB) GetArtist(id string) (*domain.Artist, error) {
	var artist domain.Artist
	err := db.Get(&artist, "SELECT * FROM artists WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artist: %w", err)
	}
	return &artist, nil
}

// ObserveArtist emits the artist whenever its row changes.
func (db *DB) ObserveArtist(id string) *Subscription[*domain.Artist] {
	return observe(db, []string{tableArtists}, func() (*domain.Artist, error) {
		return db.GetArtist(id)
	})
}

// UpsertArtist writes an artist row, replacing an existing one. Used
// to refresh metadata and to set or clear the bookmark marker.
func (db *DB) UpsertArtist(artist domain.Artist) error {
	if _, err := db.Exec(`
INSERT INTO artists (id, name, thumbnail_url, bookmarked_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	name = excluded.name,
	thumbnail_url = excluded.thumbnail_url,
	bookmarked_at = excluded.bookmarked_at`,
		artist.ID, artist.Name, artist.ThumbnailURL, artist.BookmarkedAt); err != nil {
		return fmt.Errorf("failed to upsert artist: %w", err)
	}
	db.notifier.notify(tableArtists)
	return nil
}

// ListArtists returns bookmarked artists sorted per the builder.
func (db *DB) ListArtists(sortBy domain.ArtistSort, order domain.SortOrder) ([]domain.Artist, error) {
	query, err := BuildArtistsQuery(sortBy, order)
	if err != nil {
		return nil, err
	}
	var artists []domain.Artist
	if err := db.Select(&artists, query); err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	return artists, nil
}

// ObserveArtists is the reactive variant of ListArtists.
func (db *DB) ObserveArtists(sortBy domain.ArtistSort, order domain.SortOrder) (*Subscription[[]domain.Artist], error) {
	query, err := BuildArtistsQuery(sortBy, order)
	if err != nil {
		return nil, err
	}
	return observe(db, []string{tableArtists}, func() ([]domain.Artist, error) {
		var artists []domain.Artist
		if err := db.Select(&artists, query); err != nil {
			return nil, fmt.Errorf("failed to list artists: %w", err)
		}
		return artists, nil
	}), nil
}

// SongArtistInfo returns the artists linked to a song.
func (db *DB) SongArtistInfo(songID string) ([]domain.Artist, error) {
	var artists []domain.Artist
	if err := db.Select(&artists, `
SELECT artists.* FROM artists
JOIN song_artists ON artists.id = song_artists.artist_id
WHERE song_artists.song_id = ?`, songID); err != nil {
		return nil, fmt.Errorf("failed to get song artists: %w", err)
	}
	return artists, nil
}

// DeleteArtist removes an artist; join rows cascade.
func (db *DB) DeleteArtist(id string) error {
	if _, err := db.Exec("DELETE FROM artists WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete artist: %w", err)
	}
	db.notifier.notify(tableArtists, tableSongArtists)
	return nil
}
