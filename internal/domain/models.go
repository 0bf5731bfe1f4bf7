package domain

import "strings"

// LocalIDPrefix marks songs imported from device storage rather than a
// remote catalog. The prefix partitions song ids for query scoping.
const LocalIDPrefix = "local:"

// Song is a library track. Ids are stable catalog identifiers, except
// for locally imported files which carry LocalIDPrefix.
type Song struct {
	ID              string   `db:"id" json:"id"`
	Title           string   `db:"title" json:"title"`
	ArtistsText     *string  `db:"artists_text" json:"artists_text,omitempty"`
	DurationText    *string  `db:"duration_text" json:"duration_text,omitempty"`
	ThumbnailURL    *string  `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	LikedAt         *int64   `db:"liked_at" json:"liked_at,omitempty"`
	TotalPlayTimeMs int64    `db:"total_play_time_ms" json:"total_play_time_ms"`
	LoudnessBoost   *float64 `db:"loudness_boost" json:"loudness_boost,omitempty"`
	Blacklisted     bool     `db:"blacklisted" json:"blacklisted"`
	Explicit        bool     `db:"explicit" json:"explicit"`
}

// IsLocal reports whether the song was imported from local storage.
func (s *Song) IsLocal() bool {
	return strings.HasPrefix(s.ID, LocalIDPrefix)
}

// Artist is a followed or referenced artist. BookmarkedAt is non-nil
// for user-followed artists.
type Artist struct {
	ID           string  `db:"id" json:"id"`
	Name         *string `db:"name" json:"name,omitempty"`
	ThumbnailURL *string `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	BookmarkedAt *int64  `db:"bookmarked_at" json:"bookmarked_at,omitempty"`
}

type Album struct {
	ID           string  `db:"id" json:"id"`
	Title        *string `db:"title" json:"title,omitempty"`
	ThumbnailURL *string `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	Year         *string `db:"year" json:"year,omitempty"`
	AuthorsText  *string `db:"authors_text" json:"authors_text,omitempty"`
	BookmarkedAt *int64  `db:"bookmarked_at" json:"bookmarked_at,omitempty"`
}

type Playlist struct {
	ID        int64   `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	Thumbnail *string `db:"thumbnail" json:"thumbnail,omitempty"`
}

// PlaylistPreview is the listing projection of a playlist with its
// member count.
type PlaylistPreview struct {
	ID        int64   `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	SongCount int     `db:"song_count" json:"song_count"`
	Thumbnail *string `db:"thumbnail" json:"thumbnail,omitempty"`
}

// SongArtistMap joins a song to one of its artists. Rows cascade on
// deletion of either parent.
type SongArtistMap struct {
	SongID   string `db:"song_id" json:"song_id"`
	ArtistID string `db:"artist_id" json:"artist_id"`
}

// SongAlbumMap joins a song to an album. Position is the album track
// number when known.
type SongAlbumMap struct {
	SongID   string `db:"song_id" json:"song_id"`
	AlbumID  string `db:"album_id" json:"album_id"`
	Position *int   `db:"position" json:"position,omitempty"`
}

// SongPlaylistMap joins a song to a playlist. Position is the explicit
// user-controlled ordering inside the playlist.
type SongPlaylistMap struct {
	SongID     string `db:"song_id" json:"song_id"`
	PlaylistID int64  `db:"playlist_id" json:"playlist_id"`
	Position   int    `db:"position" json:"position"`
}

// Format holds resolved stream metadata for a song, created lazily.
type Format struct {
	SongID        string   `db:"song_id" json:"song_id"`
	LoudnessDb    *float64 `db:"loudness_db" json:"loudness_db,omitempty"`
	ContentLength *int64   `db:"content_length" json:"content_length,omitempty"`
}

// SongWithContentLength is a song joined with its known stream size.
type SongWithContentLength struct {
	Song
	ContentLength int64 `db:"content_length" json:"content_length"`
}

// Lyrics holds the plain and time-synced text variants for a song.
type Lyrics struct {
	SongID string  `db:"song_id" json:"song_id"`
	Fixed  *string `db:"fixed" json:"fixed,omitempty"`
	Synced *string `db:"synced" json:"synced,omitempty"`
}

// Event is an append-only play-history record.
type Event struct {
	ID         int64  `db:"id" json:"id"`
	SongID     string `db:"song_id" json:"song_id"`
	Timestamp  int64  `db:"timestamp" json:"timestamp"`
	PlayTimeMs int64  `db:"play_time_ms" json:"play_time_ms"`
}

// EventWithSong is a history row joined with its song.
type EventWithSong struct {
	Event
	Song Song `json:"song"`
}

type SearchQuery struct {
	ID    int64  `db:"id" json:"id"`
	Query string `db:"query" json:"query"`
}

// QueuedMediaItem is one entry of the persisted playback queue
// snapshot.
type QueuedMediaItem struct {
	Position     int     `db:"position" json:"position"`
	MediaID      string  `db:"media_id" json:"media_id"`
	Title        string  `db:"title" json:"title"`
	ArtistsText  *string `db:"artists_text" json:"artists_text,omitempty"`
	DurationText *string `db:"duration_text" json:"duration_text,omitempty"`
	ThumbnailURL *string `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
}

// PipedSession stores credentials for an external piped instance.
type PipedSession struct {
	ID         int64  `db:"id" json:"id"`
	APIBaseURL string `db:"api_base_url" json:"api_base_url"`
	Token      string `db:"token" json:"token"`
	Username   string `db:"username" json:"username"`
}

// MediaMetadata is the optional bundle a media item source may attach
/// to an item: album linkage, parallel artist id/name arrays, and the
// explicit-content flag.
type MediaMetadata struct {
	AlbumID     *string  `json:"album_id,omitempty"`
	AlbumTitle  string   `json:"album_title,omitempty"`
	ArtistNames []string `json:"artist_names,omitempty"`
	ArtistIDs   []string `json:"artist_ids,omitempty"`
	Explicit    bool     `json:"explicit,omitempty"`
}

// MediaItem is the inbound record consumed from the media item source
// collaborator. It is the input to the composite insert.
type MediaItem struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	ArtistsText  string         `json:"artists_text,omitempty"`
	DurationText string         `json:"duration_text,omitempty"`
	ThumbnailURL string         `json:"thumbnail_url,omitempty"`
	Metadata     *MediaMetadata `json:"metadata,omitempty"`
}
