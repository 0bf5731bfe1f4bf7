package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mvicente/harmonydb/internal/constants"
	"github.com/mvicente/harmonydb/internal/domain"
)

// CreatePlaylist inserts a playlist and returns its surrogate id.
func (db *DB) CreatePlaylist(playlist *domain.Playlist) error {
	res, err := db.Exec("INSERT INTO playlists (name, thumbnail) VALUES (?, ?)",
		playlist.Name, playlist.Thumbnail)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read playlist id: %w", err)
	}
	playlist.ID = id
	db.notifier.notify(tablePlaylists)
	return nil
}

// UpdatePlaylist overwrites a playlist's name and thumbnail.
func (db *DB) UpdatePlaylist(playlist *domain.Playlist) error {
	res, err := db.Exec("UPDATE playlists SET name = ?, thumbnail = ? WHERE id = ?",
		playlist.Name, playlist.Thumbnail, playlist.ID)
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("playlist with id %d not found", playlist.ID)
	}
	db.notifier.notify(tablePlaylists)
	return nil
}

// DeletePlaylist removes a playlist; membership rows cascade.
func (db *DB) DeletePlaylist(id int64) error {
	if _, err := db.Exec("DELETE FROM playlists WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	db.notifier.notify(tablePlaylists, tableSongPlaylists)
	return nil
}

// GetPlaylist returns the playlist with the given id, or nil.
func (db *DB) GetPlaylist(id int64) (*domain.Playlist, error) {
	var playlist domain.Playlist
	err := db.Get(&playlist, "SELECT * FROM playlists WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}
	return &playlist, nil
}

// ListPlaylistPreviews returns playlists with member counts, sorted
// per the builder.
func (db *DB) ListPlaylistPreviews(sortBy domain.PlaylistSort, order domain.SortOrder) ([]domain.PlaylistPreview, error) {
	query, err := BuildPlaylistPreviewsQuery(sortBy, order)
	if err != nil {
		return nil, err
	}
	var previews []domain.PlaylistPreview
	if err := db.Select(&previews, query); err != nil {
		return nil, fmt.Errorf("failed to list playlist previews: %w", err)
	}
	return previews, nil
}

// ObservePlaylistPreviews is the reactive variant of
// ListPlaylistPreviews.
func (db *DB) ObservePlaylistPreviews(sortBy domain.PlaylistSort, order domain.SortOrder) (*Subscription[[]domain.PlaylistPreview], error) {
	query, err := BuildPlaylistPreviewsQuery(sortBy, order)
	if err != nil {
		return nil, err
	}
	return observe(db, []string{tablePlaylists, tableSongPlaylists}, func() ([]domain.PlaylistPreview, error) {
		var previews []domain.PlaylistPreview
		if err := db.Select(&previews, query); err != nil {
			return nil, fmt.Errorf("failed to list playlist previews: %w", err)
		}
		return previews, nil
	}), nil
}

// PlaylistSongs returns a playlist's members in position order.
func (db *DB) PlaylistSongs(playlistID int64) ([]domain.Song, error) {
	return selectSongs(db.DB, `
SELECT songs.* FROM song_playlists
JOIN songs ON songs.id = song_playlists.song_id
WHERE song_playlists.playlist_id = ?
ORDER BY song_playlists.position`, playlistID)
}

// ObservePlaylistSongs re-emits a playlist's members on membership or
// song changes.
func (db *DB) ObservePlaylistSongs(playlistID int64) *Subscription[[]domain.Song] {
	return observe(db, []string{tableSongPlaylists, tableSongs}, func() ([]domain.Song, error) {
		return db.PlaylistSongs(playlistID)
	})
}

// PlaylistThumbnailURLs returns the first member thumbnails used for
// the playlist mosaic.
func (db *DB) PlaylistThumbnailURLs(playlistID int64) ([]string, error) {
	var urls []string
	err := db.Select(&urls, `
SELECT songs.thumbnail_url FROM songs
JOIN song_playlists ON songs.id = song_playlists.song_id
WHERE song_playlists.playlist_id = ? AND songs.thumbnail_url IS NOT NULL
ORDER BY song_playlists.position
LIMIT ?`, playlistID, constants.PlaylistThumbnailCount)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist thumbnails: %w", err)
	}
	return urls, nil
}

// AddSongToPlaylist appends a membership row; an existing membership
// is left untouched.
func (db *DB) AddSongToPlaylist(m domain.SongPlaylistMap) error {
	res, err := db.Exec(`
INSERT OR IGNORE INTO song_playlists (song_id, playlist_id, position) VALUES (?, ?, ?)`,
		m.SongID, m.PlaylistID, m.Position)
	if err != nil {
		return fmt.Errorf("failed to add song to playlist: %w", wrapFK(err))
	}
	if rows, err := res.RowsAffected(); err == nil && rows > 0 {
		db.notifier.notify(tableSongPlaylists)
	}
	return nil
}

// RemoveSongFromPlaylist deletes one membership row.
func (db *DB) RemoveSongFromPlaylist(songID string, playlistID int64) error {
	if _, err := db.Exec(
		"DELETE FROM song_playlists WHERE song_id = ? AND playlist_id = ?",
		songID, playlistID,
	); err != nil {
		return fmt.Errorf("failed to remove song from playlist: %w", err)
	}
	db.notifier.notify(tableSongPlaylists)
	return nil
}

// MovePlaylistMember renumbers the membership rows between the two
// positions as one statement: rows between shift one step toward the
// vacated slot and the moved row lands on toPosition. The member set
// is untouched; the affected subrange is permuted, never renumbered
// wholesale.
func (db *DB) MovePlaylistMember(playlistID int64, fromPosition, toPosition int) error {
	if _, err := db.Exec(`
UPDATE song_playlists SET position =
CASE
	WHEN position < ? THEN position + 1
	WHEN position > ? THEN position - 1
	ELSE ?
END
WHERE playlist_id = ? AND position BETWEEN MIN(?, ?) AND MAX(?, ?)`,
		fromPosition, fromPosition, toPosition,
		playlistID, fromPosition, toPosition, fromPosition, toPosition,
	); err != nil {
		return fmt.Errorf("failed to move playlist member: %w", err)
	}
	db.notifier.notify(tableSongPlaylists)
	return nil
}

// ClearPlaylist removes every membership row of a playlist.
func (db *DB) ClearPlaylist(playlistID int64) error {
	if _, err := db.Exec("DELETE FROM song_playlists WHERE playlist_id = ?", playlistID); err != nil {
		return fmt.Errorf("failed to clear playlist: %w", err)
	}
	db.notifier.notify(tableSongPlaylists)
	return nil
}
