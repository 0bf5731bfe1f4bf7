package store

// TargetVersion is the schema version this build writes. The migration
// engine carries any older store file forward to it at open time.
// Downgrading is not supported.
const TargetVersion = 10

// Table names as of TargetVersion. The query builder and the
// invalidation notifier key on these.
const (
	tableSongs           = "songs"
	tableArtists         = "artists"
	tableAlbums          = "albums"
	tablePlaylists       = "playlists"
	tableSongArtists     = "song_artists"
	tableSongAlbums      = "song_albums"
	tableSongPlaylists   = "song_playlists"
	tableFormats         = "formats"
	tableLyrics          = "lyrics"
	tableEvents          = "events"
	tableSearchQueries   = "search_queries"
	tableQueuedMedia     = "queued_media_items"
	tablePipedSessions   = "piped_sessions"
)

// Legacy tables that only exist in pre-migration store files.
const (
	legacyTableInfos           = "infos"
	legacyTableSongAuthors     = "song_authors"
	legacyTableSongsInPlaylist = "songs_in_playlists"
)
