package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mvicente/harmonydb/internal/constants"
	"github.com/mvicente/harmonydb/internal/domain"
)

// GetSong returns the song with the given id, or nil when absent.
func (db *DB) GetSong(id string) (*domain.Song, error) {
	var song domain.Song
	err := db.Get(&song, "SELECT * FROM songs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get song: %w", err)
	}
	return &song, nil
}

// ObserveSong emits the song whenever its row changes.
func (db *DB) ObserveSong(id string) *Subscription[*domain.Song] {
	return observe(db, []string{tableSongs}, func() (*domain.Song, error) {
		return db.GetSong(id)
	})
}

// ListSongs returns songs sorted per the builder, scoped to locally
// imported or remote rows.
func (db *DB) ListSongs(sortBy domain.SongSort, order domain.SortOrder, local bool) ([]domain.Song, error) {
	query, err := BuildSongsQuery(sortBy, order, local)
	if err != nil {
		return nil, err
	}
	return selectSongs(db.DB, query)
}

// ObserveSongs is the reactive variant of ListSongs. The sort key is
// validated synchronously.
func (db *DB) ObserveSongs(sortBy domain.SongSort, order domain.SortOrder, local bool) (*Subscription[[]domain.Song], error) {
	query, err := BuildSongsQuery(sortBy, order, local)
	if err != nil {
		return nil, err
	}
	return observe(db, []string{tableSongs}, func() ([]domain.Song, error) {
		return selectSongs(db.DB, query)
	}), nil
}

// ListFavorites returns liked songs sorted per the builder.
func (db *DB) ListFavorites(sortBy domain.SongSort, order domain.SortOrder) ([]domain.Song, error) {
	query, err := BuildFavoritesQuery(sortBy, order)
	if err != nil {
		return nil, err
	}
	return selectSongs(db.DB, query)
}

// ObserveFavorites is the reactive variant of ListFavorites.
func (db *DB) ObserveFavorites(sortBy domain.SongSort, order domain.SortOrder) (*Subscription[[]domain.Song], error) {
	query, err := BuildFavoritesQuery(sortBy, order)
	if err != nil {
		return nil, err
	}
	return observe(db, []string{tableSongs}, func() ([]domain.Song, error) {
		return selectSongs(db.DB, query)
	}), nil
}

// SearchSongs matches the query against title and artist display text,
// case-insensitively via LIKE.
func (db *DB) SearchSongs(query string) ([]domain.Song, error) {
	return selectSongs(db.DB,
		"SELECT * FROM songs WHERE title LIKE '%' || ? || '%' OR artists_text LIKE '%' || ? || '%'",
		query, query)
}

// Like sets or clears the liked marker. A nil likedAt unlikes.
func (db *DB) Like(songID string, likedAt *int64) error {
	if _, err := db.Exec("UPDATE songs SET liked_at = ? WHERE id = ?", likedAt, songID); err != nil {
		return fmt.Errorf("failed to update liked_at: %w", err)
	}
	db.notifier.notify(tableSongs)
	return nil
}

// LikedAt returns the liked timestamp for a song, nil when not liked
// or absent.
func (db *DB) LikedAt(songID string) (*int64, error) {
	var likedAt *int64
	err := db.Get(&likedAt, "SELECT liked_at FROM songs WHERE id = ?", songID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get liked_at: %w", err)
	}
	return likedAt, nil
}

// UpdateDurationText overwrites the display duration for a song.
func (db *DB) UpdateDurationText(songID, durationText string) error {
	if _, err := db.Exec("UPDATE songs SET duration_text = ? WHERE id = ?", durationText, songID); err != nil {
		return fmt.Errorf("failed to update duration_text: %w", err)
	}
	db.notifier.notify(tableSongs)
	return nil
}

// IncrementTotalPlayTime accrues play time atomically. The accumulator
// only grows; this is an in-place increment, never an overwrite.
func (db *DB) IncrementTotalPlayTime(songID string, additionMs int64) error {
	if _, err := db.Exec(
		"UPDATE songs SET total_play_time_ms = total_play_time_ms + ? WHERE id = ?",
		additionMs, songID,
	); err != nil {
		return fmt.Errorf("failed to increment total play time: %w", err)
	}
	db.notifier.notify(tableSongs)
	return nil
}

// SetLoudnessBoost stores the per-song playback gain adjustment; nil
// clears it.
func (db *DB) SetLoudnessBoost(songID string, boost *float64) error {
	if _, err := db.Exec("UPDATE songs SET loudness_boost = ? WHERE id = ?", boost, songID); err != nil {
		return fmt.Errorf("failed to set loudness boost: %w", err)
	}
	db.notifier.notify(tableSongs)
	return nil
}

// LoudnessBoost returns the stored gain adjustment, nil when unset.
func (db *DB) LoudnessBoost(songID string) (*float64, error) {
	var boost *float64
	err := db.Get(&boost, "SELECT loudness_boost FROM songs WHERE id = ?", songID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get loudness boost: %w", err)
	}
	return boost, nil
}

// DeleteSong removes a song; join rows, events, format and lyrics
// cascade with it.
func (db *DB) DeleteSong(id string) error {
	if _, err := db.Exec("DELETE FROM songs WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	db.notifier.notify(tableSongs, tableSongArtists, tableSongAlbums, tableSongPlaylists,
		tableEvents, tableFormats, tableLyrics)
	return nil
}

// History returns the most recently played songs, one row per song,
// newest first.
func (db *DB) History(size int) ([]domain.Song, error) {
	if size <= 0 {
		size = constants.DefaultHistorySize
	}
	return selectSongs(db.DB, `
SELECT songs.* FROM events
JOIN songs ON songs.id = events.song_id
WHERE events.id IN (
	SELECT MAX(id) FROM events GROUP BY song_id
)
ORDER BY events.timestamp DESC
LIMIT ?`, size)
}

// ObserveHistory re-emits the history listing as plays are recorded.
func (db *DB) ObserveHistory(size int) *Subscription[[]domain.Song] {
	return observe(db, []string{tableEvents, tableSongs}, func() ([]domain.Song, error) {
		return db.History(size)
	})
}

// Trending returns the remote songs with the highest total play time.
func (db *DB) Trending(limit int) ([]domain.Song, error) {
	if limit <= 0 {
		limit = constants.DefaultTrendingLimit
	}
	return selectSongs(db.DB, `
SELECT songs.* FROM events
JOIN songs ON songs.id = events.song_id
WHERE songs.id NOT LIKE ?
GROUP BY events.song_id
ORDER BY SUM(events.play_time_ms) DESC
LIMIT ?`, domain.LocalIDPrefix+"%", limit)
}

// TrendingInPeriod restricts Trending to events newer than now-period.
func (db *DB) TrendingInPeriod(limit int, now, period int64) ([]domain.Song, error) {
	if limit <= 0 {
		limit = constants.DefaultTrendingLimit
	}
	return selectSongs(db.DB, `
SELECT songs.* FROM events
JOIN songs ON songs.id = events.song_id
WHERE (? - events.timestamp) <= ? AND songs.id NOT LIKE ?
GROUP BY events.song_id
ORDER BY SUM(events.play_time_ms) DESC
LIMIT ?`, now, period, domain.LocalIDPrefix+"%", limit)
}

// ArtistSongs returns the played songs linked to an artist, newest
// first.
func (db *DB) ArtistSongs(artistID string) ([]domain.Song, error) {
	return selectSongs(db.DB, `
SELECT songs.* FROM songs
JOIN song_artists ON songs.id = song_artists.song_id
WHERE song_artists.artist_id = ? AND songs.total_play_time_ms > 0
ORDER BY songs.rowid DESC`, artistID)
}

// AlbumSongs returns an album's tracks in album order.
func (db *DB) AlbumSongs(albumID string) ([]domain.Song, error) {
	return selectSongs(db.DB, `
SELECT songs.* FROM songs
JOIN song_albums ON songs.id = song_albums.song_id
WHERE song_albums.album_id = ? AND song_albums.position IS NOT NULL
ORDER BY song_albums.position`, albumID)
}

// ListSongsWithContentLength returns songs whose stream size is known.
func (db *DB) ListSongsWithContentLength(sortBy domain.SongSort, order domain.SortOrder) ([]domain.SongWithContentLength, error) {
	query, err := BuildSongsWithContentLengthQuery(sortBy, order)
	if err != nil {
		return nil, err
	}
	var songs []domain.SongWithContentLength
	if err := db.Select(&songs, query); err != nil {
		return nil, fmt.Errorf("failed to list songs with content length: %w", err)
	}
	return songs, nil
}

func selectSongs(q sqlx.Queryer, query string, args ...interface{}) ([]domain.Song, error) {
	var songs []domain.Song
	if err := sqlx.Select(q, &songs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select songs: %w", err)
	}
	return songs, nil
}
