package store

import (
	"fmt"

	"github.com/mvicente/harmonydb/internal/domain"
)

// SaveSearchQuery records a search term, replacing a previous entry
// with the same text so it moves to the front of the history.
func (db *DB) SaveSearchQuery(query string) error {
	if query == "" {
		return fmt.Errorf("search query must not be empty: %w", domain.ErrPrecondition)
	}
	if _, err := db.Exec("INSERT OR REPLACE INTO search_queries (query) VALUES (?)",
		query); err != nil {
		return fmt.Errorf("failed to save search query: %w", err)
	}
	db.notifier.notify(tableSearchQueries)
	return nil
}

// SearchQueries returns stored queries containing the filter text,
// most recent first. An empty filter matches everything.
func (db *DB) SearchQueries(filter string) ([]domain.SearchQuery, error) {
	var queries []domain.SearchQuery
	err := db.Select(&queries, `
SELECT * FROM search_queries
WHERE query LIKE '%' || ? || '%'
ORDER BY id DESC`, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list search queries: %w", err)
	}
	return queries, nil
}

// ObserveSearchQueries emits matching stored queries whenever the
// history changes.
func (db *DB) ObserveSearchQueries(filter string) *Subscription[[]domain.SearchQuery] {
	return observe(db, []string{tableSearchQueries}, func() ([]domain.SearchQuery, error) {
		return db.SearchQueries(filter)
	})
}

// SearchQueriesCount returns the number of stored search queries.
func (db *DB) SearchQueriesCount() (int, error) {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM search_queries"); err != nil {
		return 0, fmt.Errorf("failed to count search queries: %w", err)
	}
	return count, nil
}

// DeleteSearchQuery removes a single stored query by its exact text.
func (db *DB) DeleteSearchQuery(query string) error {
	if _, err := db.Exec("DELETE FROM search_queries WHERE query = ?", query); err != nil {
		return fmt.Errorf("failed to delete search query: %w", err)
	}
	db.notifier.notify(tableSearchQueries)
	return nil
}

// ClearSearchQueries removes the whole search history.
func (db *DB) ClearSearchQueries() error {
	if _, err := db.Exec("DELETE FROM search_queries"); err != nil {
		return fmt.Errorf("failed to clear search queries: %w", err)
	}
	db.notifier.notify(tableSearchQueries)
	return nil
}
