package domain

import "errors"

// Error taxonomy for the store surface. Callers match with errors.Is.
var (
	// ErrPrecondition marks caller-supplied input that is rejected at
	// the API boundary: empty ids, empty candidate lists, mismatched
	// parallel arrays. Never retried.
	ErrPrecondition = errors.New("precondition violation")

	// ErrUnsupportedSortKey is returned by the query builder for a
	// sort key outside an entity's closed recognized set.
	ErrUnsupportedSortKey = errors.New("unsupported sort key")

	// ErrForeignKey marks a strict-policy join insert that referenced
	// a missing row. The enclosing transaction is rolled back.
	ErrForeignKey = errors.New("foreign key violation")

	// ErrMigration is fatal: store initialization is aborted and no
	// partial store state is left addressable.
	ErrMigration = errors.New("migration failed")
)

// SortOrder selects ascending or descending result ordering.
type SortOrder int

const (
	SortAscending SortOrder = iota
	SortDescending
)

func (o SortOrder) String() string {
	if o == SortDescending {
		return "descending"
	}
	return "ascending"
}

// SongSort is the closed set of song sort keys.
type SongSort string

const (
	SongSortTitle     SongSort = "title"
	SongSortPlayTime  SongSort = "playtime"
	SongSortDateAdded SongSort = "dateadded"
)

// ArtistSort is the closed set of artist sort keys.
type ArtistSort string

const (
	ArtistSortName      ArtistSort = "name"
	ArtistSortDateAdded ArtistSort = "dateadded"
)

// AlbumSort is the closed set of album sort keys.
type AlbumSort string

const (
	AlbumSortTitle     AlbumSort = "title"
	AlbumSortYear      AlbumSort = "year"
	AlbumSortDateAdded AlbumSort = "dateadded"
)

// PlaylistSort is the closed set of playlist-preview sort keys.
type PlaylistSort string

const (
	PlaylistSortName      PlaylistSort = "name"
	PlaylistSortSongCount PlaylistSort = "songcount"
	PlaylistSortDateAdded PlaylistSort = "dateadded"
)
