package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mvicente/harmonydb/internal/domain"
)

// GetAlbum returns the album with the given id, or nil.
func (db *DB) GetAlbum(id string) (*domain.Album, error) {
	var album domain.Album
	err := db.Get(&album, "SELECT * FROM albums WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get album: %w", err)
	}
	return &album, nil
}

// ObserveAlbum emits the album whenever its row changes.
func (db *DB) ObserveAlbum(id string) *Subscription[*domain.Album] {
	return observe(db, []string{tableAlbums}, func() (*domain.Album, error) {
		return db.GetAlbum(id)
	})
}

// UpsertAlbum writes an album row, replacing an existing one.
func (db *DB) UpsertAlbum(album domain.Album) error {
	if _, err := db.Exec(`
INSERT INTO albums (id, title, thumbnail_url, year, authors_text, bookmarked_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	title = excluded.title,
	thumbnail_url = excluded.thumbnail_url,
	year = excluded.year,
	authors_text = excluded.authors_text,
	bookmarked_at = excluded.bookmarked_at`,
		album.ID, album.Title, album.ThumbnailURL, album.Year,
		album.AuthorsText, album.BookmarkedAt); err != nil {
		return fmt.Errorf("failed to upsert album: %w", err)
	}
	db.notifier.notify(tableAlbums)
	return nil
}

// UpsertAlbumTracks replaces an album row together with its track
// join rows in one transaction. Joins whose song no longer exists are
// rejected by the schema and roll the write back.
func (db *DB) UpsertAlbumTracks(album domain.Album, tracks []domain.SongAlbumMap) error {
	return db.inTx(func(tx *sqlx.Tx) error {
		if _, err := tx.Exec(`
INSERT INTO albums (id, title, thumbnail_url, year, authors_text, bookmarked_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	title = excluded.title,
	thumbnail_url = excluded.thumbnail_url,
	year = excluded.year,
	authors_text = excluded.authors_text,
	bookmarked_at = excluded.bookmarked_at`,
			album.ID, album.Title, album.ThumbnailURL, album.Year,
			album.AuthorsText, album.BookmarkedAt); err != nil {
			return fmt.Errorf("failed to upsert album: %w", err)
		}
		for _, track := range tracks {
			if _, err := tx.Exec(`
INSERT INTO song_albums (song_id, album_id, position)
VALUES (?, ?, ?)
ON CONFLICT (song_id, album_id) DO UPDATE SET position = excluded.position`,
				track.SongID, album.ID, track.Position); err != nil {
				return fmt.Errorf("failed to upsert album track: %w", wrapFK(err))
			}
		}
		return nil
	}, tableAlbums, tableSongAlbums)
}

// ListAlbums returns bookmarked albums sorted per the builder.
func (db *DB) ListAlbums(sortBy domain.AlbumSort, order domain.SortOrder) ([]domain.Album, error) {
	query, err := BuildAlbumsQuery(sortBy, order)
	if err != nil {
		return nil, err
	}
	var albums []domain.Album
	if err := db.Select(&albums, query); err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}
	return albums, nil
}

// ObserveAlbums is the reactive variant of ListAlbums.
func (db *DB) ObserveAlbums(sortBy domain.AlbumSort, order domain.SortOrder) (*Subscription[[]domain.Album], error) {
	query, err := BuildAlbumsQuery(sortBy, order)
	if err != nil {
		return nil, err
	}
	return observe(db, []string{tableAlbums}, func() ([]domain.Album, error) {
		var albums []domain.Album
		if err := db.Select(&albums, query); err != nil {
			return nil, fmt.Errorf("failed to list albums: %w", err)
		}
		return albums, nil
	}), nil
}

// SongAlbumInfo returns the album a song belongs to, or nil.
func (db *DB) SongAlbumInfo(songID string) (*domain.Album, error) {
	var album domain.Album
	err := db.Get(&album, `
SELECT albums.* FROM albums
JOIN song_albums ON albums.id = song_albums.album_id
WHERE song_albums.song_id = ?`, songID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get song album: %w", err)
	}
	return &album, nil
}

// ClearAlbum removes every track join row of an album.
func (db *DB) ClearAlbum(albumID string) error {
	if _, err := db.Exec("DELETE FROM song_albums WHERE album_id = ?", albumID); err != nil {
		return fmt.Errorf("failed to clear album: %w", err)
	}
	db.notifier.notify(tableSongAlbums)
	return nil
}

// DeleteAlbum removes an album; join rows cascade.
func (db *DB) DeleteAlbum(id string) error {
	if _, err := db.Exec("DELETE FROM albums WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete album: %w", err)
	}
	db.notifier.notify(tableAlbums, tableSongAlbums)
	return nil
}
