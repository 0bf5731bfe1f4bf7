package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mvicente/harmonydb/internal/constants"
	"github.com/mvicente/harmonydb/internal/domain"
)

// ToggleBlacklist flips the blacklist marker for one song.
func (db *DB) ToggleBlacklist(songID string) error {
	if _, err := db.Exec("UPDATE songs SET blacklisted = NOT blacklisted WHERE id = ?", songID); err != nil {
		return fmt.Errorf("failed to toggle blacklist: %w", err)
	}
	db.notifier.notify(tableSongs)
	return nil
}

// ResetBlacklist clears the marker from every blacklisted song.
func (db *DB) ResetBlacklist() error {
	if _, err := db.Exec("UPDATE songs SET blacklisted = NOT blacklisted WHERE blacklisted"); err != nil {
		return fmt.Errorf("failed to reset blacklist: %w", err)
	}
	db.notifier.notify(tableSongs)
	return nil
}

// Blacklisted reports the marker for a song, nil when the song is
// absent.
func (db *DB) Blacklisted(songID string) (*bool, error) {
	var blacklisted bool
	err := db.Get(&blacklisted, "SELECT blacklisted FROM songs WHERE id = ?", songID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blacklist marker: %w", err)
	}
	return &blacklisted, nil
}

// BlacklistLength counts blacklisted songs.
func (db *DB) BlacklistLength() (int, error) {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM songs WHERE blacklisted"); err != nil {
		return 0, fmt.Errorf("failed to count blacklist: %w", err)
	}
	return count, nil
}

// BlacklistedIDs returns the ids of all blacklisted songs.
func (db *DB) BlacklistedIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := db.SelectContext(ctx, &ids, "SELECT id FROM songs WHERE blacklisted"); err != nil {
		return nil, fmt.Errorf("failed to list blacklisted ids: %w", err)
	}
	return ids, nil
}

// FilterBlacklisted drops blacklisted songs from candidates, keeping
// the order and relative positions of the survivors. Candidates must
// be non-empty. Distinct ids are probed in fixed-size batches so one
// query never binds more than the engine's parameter cap; cancellation
// is honored between batches, and a batch's results are incorporated
// all-or-nothing.
func (db *DB) FilterBlacklisted(ctx context.Context, candidates []domain.MediaItem) ([]domain.MediaItem, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("candidates must be non-empty: %w", domain.ErrPrecondition)
	}

	seen := make(map[string]struct{}, len(candidates))
	distinct := make([]string, 0, len(candidates))
	for _, item := range candidates {
		if item.ID == "" {
			continue
		}
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		distinct = append(distinct, item.ID)
	}
	if len(distinct) == 0 {
		return candidates, nil
	}

	excluded := make(map[string]struct{})
	for start := 0; start < len(distinct); start += constants.BlacklistChunkSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+constants.BlacklistChunkSize, len(distinct))

		query, args, err := sqlx.In(
			"SELECT id FROM songs WHERE blacklisted AND id IN (?)",
			distinct[start:end],
		)
		if err != nil {
			return nil, fmt.Errorf("failed to expand id batch: %w", err)
		}
		var ids []string
		if err := db.SelectContext(ctx, &ids, db.Rebind(query), args...); err != nil {
			return nil, fmt.Errorf("failed to probe blacklist batch: %w", err)
		}
		for _, id := range ids {
			excluded[id] = struct{}{}
		}
	}
	if len(excluded) == 0 {
		return candidates, nil
	}

	filtered := make([]domain.MediaItem, 0, len(candidates))
	for _, item := range candidates {
		if _, ok := excluded[item.ID]; !ok {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}
