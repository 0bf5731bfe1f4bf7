package store

import (
	"fmt"

	"github.com/mvicente/harmonydb/internal/domain"
)

// Dynamic query construction for the sorted listings. Builders are
// pure functions over closed enum sets: caller-supplied values never
// reach the generated text, only enum selections do. An unrecognized
// sort key fails with domain.ErrUnsupportedSortKey instead of falling
// back to a default ordering.

func orderSuffix(order domain.SortOrder) string {
	if order == domain.SortDescending {
		return "DESC"
	}
	return "ASC"
}

// BuildSongsQuery lists songs scoped to locally imported or remote
// rows by the id prefix test.
func BuildSongsQuery(sortBy domain.SongSort, order domain.SortOrder, local bool) (string, error) {
	where := "WHERE id NOT LIKE '" + domain.LocalIDPrefix + "%'"
	if local {
		where = "WHERE id LIKE '" + domain.LocalIDPrefix + "%'"
	}
	var orderClause string
	switch sortBy {
	case domain.SongSortTitle:
		orderClause = "title COLLATE NOCASE " + orderSuffix(order)
	case domain.SongSortPlayTime:
		orderClause = "total_play_time_ms " + orderSuffix(order)
	case domain.SongSortDateAdded:
		orderClause = "rowid " + orderSuffix(order)
	default:
		return "", fmt.Errorf("song sort %q: %w", sortBy, domain.ErrUnsupportedSortKey)
	}
	return "SELECT * FROM songs " + where + " ORDER BY " + orderClause, nil
}

// BuildFavoritesQuery lists songs bearing a liked marker.
func BuildFavoritesQuery(sortBy domain.SongSort, order domain.SortOrder) (string, error) {
	var orderClause string
	switch sortBy {
	case domain.SongSortTitle:
		orderClause = "title COLLATE NOCASE " + orderSuffix(order)
	case domain.SongSortPlayTime:
		orderClause = "total_play_time_ms " + orderSuffix(order)
	case domain.SongSortDateAdded:
		orderClause = "liked_at " + orderSuffix(order)
	default:
		return "", fmt.Errorf("favorites sort %q: %w", sortBy, domain.ErrUnsupportedSortKey)
	}
	return "SELECT * FROM songs WHERE liked_at IS NOT NULL ORDER BY " + orderClause, nil
}

// BuildArtistsQuery lists bookmarked artists.
func BuildArtistsQuery(sortBy domain.ArtistSort, order domain.SortOrder) (string, error) {
	var orderClause string
	switch sortBy {
	case domain.ArtistSortName:
		orderClause = "name COLLATE NOCASE " + orderSuffix(order)
	case domain.ArtistSortDateAdded:
		orderClause = "bookmarked_at " + orderSuffix(order)
	default:
		return "", fmt.Errorf("artist sort %q: %w", sortBy, domain.ErrUnsupportedSortKey)
	}
	return "SELECT * FROM artists WHERE bookmarked_at IS NOT NULL ORDER BY " + orderClause, nil
}

// BuildAlbumsQuery lists bookmarked albums. Year ordering breaks ties
// by author text.
func BuildAlbumsQuery(sortBy domain.AlbumSort, order domain.SortOrder) (string, error) {
	suffix := orderSuffix(order)
	var orderClause string
	switch sortBy {
	case domain.AlbumSortTitle:
		orderClause = "title COLLATE NOCASE " + suffix
	case domain.AlbumSortYear:
		orderClause = "year " + suffix + ", authors_text COLLATE NOCASE " + suffix
	case domain.AlbumSortDateAdded:
		orderClause = "bookmarked_at " + suffix
	default:
		return "", fmt.Errorf("album sort %q: %w", sortBy, domain.ErrUnsupportedSortKey)
	}
	return "SELECT * FROM albums WHERE bookmarked_at IS NOT NULL ORDER BY " + orderClause, nil
}

// BuildPlaylistPreviewsQuery lists playlists with their member counts.
func BuildPlaylistPreviewsQuery(sortBy domain.PlaylistSort, order domain.SortOrder) (string, error) {
	var orderClause string
	switch sortBy {
	case domain.PlaylistSortName:
		orderClause = "name COLLATE NOCASE " + orderSuffix(order)
	case domain.PlaylistSortSongCount:
		orderClause = "song_count " + orderSuffix(order)
	case domain.PlaylistSortDateAdded:
		orderClause = "rowid " + orderSuffix(order)
	default:
		return "", fmt.Errorf("playlist sort %q: %w", sortBy, domain.ErrUnsupportedSortKey)
	}
	return "SELECT id, name, thumbnail, " +
		"(SELECT COUNT(*) FROM song_playlists WHERE playlist_id = playlists.id) AS song_count " +
		"FROM playlists ORDER BY " + orderClause, nil
}

// BuildSongsWithContentLengthQuery lists songs whose stream size is
// known, for cache budgeting.
func BuildSongsWithContentLengthQuery(sortBy domain.SongSort, order domain.SortOrder) (string, error) {
	var orderClause string
	switch sortBy {
	case domain.SongSortTitle:
		orderClause = "songs.title COLLATE NOCASE " + orderSuffix(order)
	case domain.SongSortPlayTime:
		orderClause = "songs.total_play_time_ms " + orderSuffix(order)
	case domain.SongSortDateAdded:
		orderClause = "songs.rowid " + orderSuffix(order)
	default:
		return "", fmt.Errorf("content length sort %q: %w", sortBy, domain.ErrUnsupportedSortKey)
	}
	return "SELECT songs.*, formats.content_length FROM songs " +
		"JOIN formats ON songs.id = formats.song_id " +
		"WHERE formats.content_length IS NOT NULL ORDER BY " + orderClause, nil
}
