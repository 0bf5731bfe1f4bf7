package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mvicente/harmonydb/internal/domain"
)

// InsertMediaItem writes a media item's song row plus its album and
// artist linkage as one transaction. Re-inserting an item whose id
// already exists is a no-op that leaves related tables untouched.
//
// Conflict policy is deliberately asymmetric: album rows and the
// song-album join are advisory (ignore on conflict), while song-artist
// join rows are load-bearing and abort the whole transaction on a
// foreign key violation.
func (db *DB) InsertMediaItem(item domain.MediaItem) error {
	if item.ID == "" {
		return fmt.Errorf("media item id must be non-empty: %w", domain.ErrPrecondition)
	}
	meta := item.Metadata
	if meta != nil {
		if meta.AlbumID != nil && *meta.AlbumID == "" {
			return fmt.Errorf("album id must be non-empty: %w", domain.ErrPrecondition)
		}
		if (meta.ArtistNames != nil || meta.ArtistIDs != nil) &&
			len(meta.ArtistNames) != len(meta.ArtistIDs) {
			return fmt.Errorf("artist names (%d) and ids (%d) must have equal length: %w",
				len(meta.ArtistNames), len(meta.ArtistIDs), domain.ErrPrecondition)
		}
	}

	return db.inTx(func(tx *sqlx.Tx) error {
		explicit := meta != nil && meta.Explicit
		res, err := tx.Exec(`
INSERT INTO songs (id, title, artists_text, duration_text, thumbnail_url, explicit)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO NOTHING`,
			item.ID, item.Title, nullable(item.ArtistsText), nullable(item.DurationText),
			nullable(item.ThumbnailURL), explicit)
		if err != nil {
			return fmt.Errorf("failed to insert song: %w", err)
		}
		inserted, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read insert result: %w", err)
		}
		if inserted == 0 || meta == nil {
			return nil
		}

		if meta.AlbumID != nil {
			if _, err := tx.Exec(`
INSERT OR IGNORE INTO albums (id, title) VALUES (?, ?)`,
				*meta.AlbumID, nullable(meta.AlbumTitle)); err != nil {
				return fmt.Errorf("failed to insert album: %w", err)
			}
			if _, err := tx.Exec(`
INSERT OR IGNORE INTO song_albums (song_id, album_id, position) VALUES (?, ?, NULL)`,
				item.ID, *meta.AlbumID); err != nil {
				return fmt.Errorf("failed to insert song-album join: %w", err)
			}
		}

		for i, artistID := range meta.ArtistIDs {
			if _, err := tx.Exec(`
INSERT OR IGNORE INTO artists (id, name) VALUES (?, ?)`,
				artistID, nullable(meta.ArtistNames[i])); err != nil {
				return fmt.Errorf("failed to insert artist: %w", err)
			}
			// Strict policy: any violation fails the whole batch.
			if _, err := tx.Exec(`
INSERT INTO song_artists (song_id, artist_id) VALUES (?, ?)`,
				item.ID, artistID); err != nil {
				return fmt.Errorf("failed to insert song-artist join: %w", wrapFK(err))
			}
		}
		return nil
	}, tableSongs, tableArtists, tableAlbums, tableSongArtists, tableSongAlbums)
}

// nullable maps an empty string to NULL for optional text columns.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
