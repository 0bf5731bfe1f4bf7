package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mvicente/harmonydb/internal/domain"
)

// ReplaceQueue atomically swaps the persisted playback queue snapshot
// for the given items. Positions are assigned from slice order.
func (db *DB) ReplaceQueue(items []domain.QueuedMediaItem) error {
	return db.inTx(func(tx *sqlx.Tx) error {
		if _, err := tx.Exec("DELETE FROM queued_media_items"); err != nil {
			return fmt.Errorf("failed to clear queue: %w", err)
		}
		for i, item := range items {
			if _, err := tx.Exec(`
INSERT INTO queued_media_items (position, media_id, title, artists_text, duration_text, thumbnail_url)
VALUES (?, ?, ?, ?, ?, ?)`,
				i, item.MediaID, item.Title, item.ArtistsText, item.DurationText, item.ThumbnailURL); err != nil {
				return fmt.Errorf("failed to insert queue item %q: %w", item.MediaID, err)
			}
		}
		return nil
	}, tableQueuedMedia)
}

// Queue returns the persisted playback queue in position order.
func (db *DB) Queue() ([]domain.QueuedMediaItem, error) {
	var items []domain.QueuedMediaItem
	err := db.Select(&items, "SELECT * FROM queued_media_items ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to list queue: %w", err)
	}
	return items, nil
}

// ClearQueue drops the persisted playback queue snapshot.
func (db *DB) ClearQueue() error {
	if _, err := db.Exec("DELETE FROM queued_media_items"); err != nil {
		return fmt.Errorf("failed to clear queue: %w", err)
	}
	db.notifier.notify(tableQueuedMedia)
	return nil
}
