package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// migrations is the full ordered lineage of the store file. Steps are
// forward-only and strictly monotonic; a fresh file replays all of
// them. Data rewrites skip source rows whose foreign key target is
// gone instead of failing the step.
var migrations = []migration{
	{
		version: 1,
		label:   "legacy baseline",
		deltas: []schemaDelta{
			{kind: deltaCreateTable, ddl: `
CREATE TABLE songs (
	id TEXT NOT NULL PRIMARY KEY,
	title TEXT NOT NULL,
	artists_text TEXT,
	duration_text TEXT,
	thumbnail_url TEXT,
	lyrics TEXT,
	synchronized_lyrics TEXT,
	liked_at INTEGER,
	total_play_time_ms INTEGER NOT NULL DEFAULT 0,
	loudness_db REAL,
	content_length INTEGER,
	album_id INTEGER
)`},
			{kind: deltaCreateTable, ddl: `
CREATE TABLE infos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	browse_id TEXT,
	text TEXT
)`},
			{kind: deltaCreateTable, ddl: `
CREATE TABLE song_authors (
	song_id TEXT NOT NULL,
	author_info_id INTEGER NOT NULL,
	PRIMARY KEY (song_id, author_info_id)
)`},
			{kind: deltaCreateTable, ddl: `
CREATE TABLE playlists (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	thumbnail TEXT
)`},
			{kind: deltaCreateTable, ddl: `
CREATE TABLE songs_in_playlists (
	song_id TEXT NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
	playlist_id INTEGER NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	PRIMARY KEY (song_id, playlist_id)
)`},
			{kind: deltaCreateTable, ddl: `
CREATE TABLE search_queries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	query TEXT NOT NULL UNIQUE
)`},
			{kind: deltaCreateTable, ddl: `
CREATE TABLE queued_media_items (
	position INTEGER NOT NULL PRIMARY KEY,
	media_id TEXT NOT NULL,
	title TEXT NOT NULL,
	artists_text TEXT,
	duration_text TEXT,
	thumbnail_url TEXT
)`},
			{kind: deltaCreateTable, ddl: `
CREATE TABLE events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	song_id TEXT NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
	timestamp INTEGER NOT NULL,
	play_time_ms INTEGER NOT NULL
)`},
		},
	},
	{
		version: 2,
		label:   "typed artist and album tables",
		deltas: []schemaDelta{
			{kind: deltaCreateTable, ddl: `
CREATE TABLE artists (
	id TEXT NOT NULL PRIMARY KEY,
	name TEXT,
	thumbnail_url TEXT,
	bookmarked_at INTEGER
)`},
			{kind: deltaCreateTable, ddl: `
CREATE TABLE albums (
	id TEXT NOT NULL PRIMARY KEY,
	title TEXT,
	thumbnail_url TEXT,
	year TEXT,
	authors_text TEXT,
	bookmarked_at INTEGER
)`},
			{kind: deltaCreateTable, ddl: `
CREATE TABLE song_artists (
	song_id TEXT NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
	artist_id TEXT NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
	PRIMARY KEY (song_id, artist_id)
)`},
			{kind: deltaCreateTable, ddl: `
CREATE TABLE song_albums (
	song_id TEXT NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
	album_id TEXT NOT NULL REFERENCES albums(id) ON DELETE CASCADE,
	position INTEGER,
	PRIMARY KEY (song_id, album_id)
)`},
		},
	},
	{
		version: 3,
		label:   "decompose generic info tables",
		rewrite: rewriteDecomposeInfos,
	},
	{
		version: 4,
		label:   "move album linkage into join table",
		rewrite: rewriteSongAlbumJoin,
	},
	{
		version: 5,
		label:   "rename playlist membership table",
		deltas: []schemaDelta{
			{kind: deltaRenameTable, table: legacyTableSongsInPlaylist, to: tableSongPlaylists},
		},
	},
	{
		version: 6,
		label:   "split stream format out of songs",
		deltas: []schemaDelta{
			{kind: deltaCreateTable, ddl: `
CREATE TABLE formats (
	song_id TEXT NOT NULL PRIMARY KEY REFERENCES songs(id) ON DELETE CASCADE,
	loudness_db REAL,
	content_length INTEGER
)`},
		},
		rewrite: rewriteFormatSplit,
	},
	{
		version: 7,
		label:   "piped session storage",
		deltas: []schemaDelta{
			{kind: deltaCreateTable, ddl: `
CREATE TABLE piped_sessions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	api_base_url TEXT NOT NULL,
	token TEXT NOT NULL,
	username TEXT NOT NULL
)`},
		},
	},
	{
		version: 8,
		label:   "split lyrics out of songs",
		deltas: []schemaDelta{
			{kind: deltaCreateTable, ddl: `
CREATE TABLE lyrics (
	song_id TEXT NOT NULL PRIMARY KEY REFERENCES songs(id) ON DELETE CASCADE,
	fixed TEXT,
	synced TEXT
)`},
		},
		rewrite: rewriteLyricsSplit,
	},
	{
		version: 9,
		label:   "loudness boost column",
		deltas: []schemaDelta{
			{kind: deltaAddColumn, table: tableSongs, ddl: "loudness_boost REAL"},
		},
	},
	{
		version: 10,
		label:   "blacklist and explicit flags, indexes",
		deltas: []schemaDelta{
			{kind: deltaAddColumn, table: tableSongs, ddl: "blacklisted INTEGER NOT NULL DEFAULT 0"},
			{kind: deltaAddColumn, table: tableSongs, ddl: "explicit INTEGER NOT NULL DEFAULT 0"},
			{kind: deltaCreateIndex, ddl: "CREATE INDEX idx_events_song_id ON events(song_id)"},
			{kind: deltaCreateIndex, ddl: "CREATE INDEX idx_song_playlists_playlist_id ON song_playlists(playlist_id)"},
			{kind: deltaCreateIndex, ddl: "CREATE INDEX idx_song_albums_album_id ON song_albums(album_id)"},
			{kind: deltaCreateIndex, ddl: "CREATE INDEX idx_song_artists_artist_id ON song_artists(artist_id)"},
		},
	},
}

// rewriteDecomposeInfos turns the generic infos key/value table and
// the song_authors join into typed artist/album rows keyed by browse
// id. Rows without a browse id or without a surviving song are
// skipped, not failed.
func rewriteDecomposeInfos(tx *sqlx.Tx) error {
	stmts := []string{
		// Albums referenced from songs, keyed by browse id.
		`INSERT OR IGNORE INTO albums (id, title)
SELECT DISTINCT i.browse_id, i.text
FROM infos i
JOIN songs s ON i.id = s.album_id
WHERE i.browse_id IS NOT NULL`,

		// Repoint songs at browse ids; dangling refs become NULL.
		`UPDATE songs SET album_id = (
	SELECT i.browse_id FROM infos i WHERE i.id = songs.album_id
) WHERE album_id IS NOT NULL`,

		// Denormalize author names into the flat display column.
		`UPDATE songs SET artists_text = (
	SELECT GROUP_CONCAT(i.text, '')
	FROM infos i
	JOIN song_authors sa ON i.id = sa.author_info_id
	WHERE sa.song_id = songs.id
) WHERE id IN (SELECT song_id FROM song_authors)`,

		// Typed artists.
		`INSERT OR IGNORE INTO artists (id, name)
SELECT DISTINCT i.browse_id, i.text
FROM infos i
JOIN song_authors sa ON i.id = sa.author_info_id
WHERE i.browse_id IS NOT NULL`,

		// Join rows; the songs join drops authors of deleted songs.
		`INSERT OR IGNORE INTO song_artists (song_id, artist_id)
SELECT sa.song_id, i.browse_id
FROM song_authors sa
JOIN infos i ON i.id = sa.author_info_id
JOIN songs s ON s.id = sa.song_id
WHERE i.browse_id IS NOT NULL`,

		"DROP TABLE " + legacyTableSongAuthors,
		"DROP TABLE " + legacyTableInfos,
	}
	return execAll(tx, stmts)
}

// rewriteSongAlbumJoin backfills song_albums from the inline
// songs.album_id column, then rebuilds songs without it.
func rewriteSongAlbumJoin(tx *sqlx.Tx) error {
	stmts := []string{
		`INSERT OR IGNORE INTO song_albums (song_id, album_id)
SELECT s.id, s.album_id
FROM songs s
JOIN albums a ON a.id = s.album_id
WHERE s.album_id IS NOT NULL`,

		`CREATE TABLE songs_new (
	id TEXT NOT NULL PRIMARY KEY,
	title TEXT NOT NULL,
	artists_text TEXT,
	duration_text TEXT,
	thumbnail_url TEXT,
	lyrics TEXT,
	synchronized_lyrics TEXT,
	liked_at INTEGER,
	total_play_time_ms INTEGER NOT NULL DEFAULT 0,
	loudness_db REAL,
	content_length INTEGER
)`,
		`INSERT INTO songs_new (id, title, artists_text, duration_text, thumbnail_url,
	lyrics, synchronized_lyrics, liked_at, total_play_time_ms, loudness_db, content_length)
SELECT id, title, artists_text, duration_text, thumbnail_url,
	lyrics, synchronized_lyrics, liked_at, total_play_time_ms, loudness_db, content_length
FROM songs`,
		`DROP TABLE songs`,
		`ALTER TABLE songs_new RENAME TO songs`,
	}
	return execAll(tx, stmts)
}

// rewriteFormatSplit moves loudness_db/content_length into formats,
// creating a row only when stream metadata was resolved, then rebuilds
// songs without the columns.
func rewriteFormatSplit(tx *sqlx.Tx) error {
	stmts := []string{
		`INSERT OR IGNORE INTO formats (song_id, loudness_db, content_length)
SELECT id, loudness_db, content_length
FROM songs
WHERE loudness_db IS NOT NULL OR content_length IS NOT NULL`,

		`CREATE TABLE songs_new (
	id TEXT NOT NULL PRIMARY KEY,
	title TEXT NOT NULL,
	artists_text TEXT,
	duration_text TEXT,
	thumbnail_url TEXT,
	lyrics TEXT,
	synchronized_lyrics TEXT,
	liked_at INTEGER,
	total_play_time_ms INTEGER NOT NULL DEFAULT 0
)`,
		`INSERT INTO songs_new (id, title, artists_text, duration_text, thumbnail_url,
	lyrics, synchronized_lyrics, liked_at, total_play_time_ms)
SELECT id, title, artists_text, duration_text, thumbnail_url,
	lyrics, synchronized_lyrics, liked_at, total_play_time_ms
FROM songs`,
		`DROP TABLE songs`,
		`ALTER TABLE songs_new RENAME TO songs`,
	}
	return execAll(tx, stmts)
}

// rewriteLyricsSplit moves the two lyrics variants into their own
// table. A lyrics row is inserted only when at least one variant is
// non-empty.
func rewriteLyricsSplit(tx *sqlx.Tx) error {
	stmts := []string{
		`INSERT OR IGNORE INTO lyrics (song_id, fixed, synced)
SELECT id, lyrics, synchronized_lyrics
FROM songs
WHERE (lyrics IS NOT NULL AND lyrics != '')
   OR (synchronized_lyrics IS NOT NULL AND synchronized_lyrics != '')`,

		`CREATE TABLE songs_new (
	id TEXT NOT NULL PRIMARY KEY,
	title TEXT NOT NULL,
	artists_text TEXT,
	duration_text TEXT,
	thumbnail_url TEXT,
	liked_at INTEGER,
	total_play_time_ms INTEGER NOT NULL DEFAULT 0
)`,
		`INSERT INTO songs_new (id, title, artists_text, duration_text, thumbnail_url,
	liked_at, total_play_time_ms)
SELECT id, title, artists_text, duration_text, thumbnail_url,
	liked_at, total_play_time_ms
FROM songs`,
		`DROP TABLE songs`,
		`ALTER TABLE songs_new RENAME TO songs`,
	}
	return execAll(tx, stmts)
}

func execAll(tx *sqlx.Tx, stmts []string) error {
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute rewrite statement: %w", err)
		}
	}
	return nil
}
