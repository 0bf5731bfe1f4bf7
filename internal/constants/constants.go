// Package constants defines shared application constants
package constants

const (
	// DefaultDBPath is the default location of the library store file
	DefaultDBPath = "harmonydb.db"

	// DefaultBusyTimeoutMs is how long SQLite waits on a locked
	// database before failing
	DefaultBusyTimeoutMs = 30000

	// BlacklistChunkSize bounds the number of ids bound per membership
	// query. SQLite caps bound parameters at 999 by default; 900
	// leaves headroom for fixed parameters in the same statement.
	BlacklistChunkSize = 900

	// DefaultHistorySize is the default number of rows returned by the
	// play-history query
	DefaultHistorySize = 100

	// DefaultTrendingLimit is the default number of rows returned by
	// the trending query
	DefaultTrendingLimit = 3

	// PlaylistThumbnailCount is how many member thumbnails make up a
	// playlist mosaic preview
	PlaylistThumbnailCount = 4
)
