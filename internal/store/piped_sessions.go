package store

import (
	"fmt"

	"github.com/mvicente/harmonydb/internal/domain"
)

// InsertPipedSession stores credentials for an external piped instance
// and returns the generated row id.
func (db *DB) InsertPipedSession(session domain.PipedSession) (int64, error) {
	res, err := db.Exec(`
INSERT INTO piped_sessions (api_base_url, token, username)
VALUES (?, ?, ?)`,
		session.APIBaseURL, session.Token, session.Username)
	if err != nil {
		return 0, fmt.Errorf("failed to insert piped session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read piped session id: %w", err)
	}
	db.notifier.notify(tablePipedSessions)
	return id, nil
}

// UpdatePipedSession overwrites a stored session's credentials.
func (db *DB) UpdatePipedSession(session domain.PipedSession) error {
	res, err := db.Exec(`
UPDATE piped_sessions SET api_base_url = ?, token = ?, username = ? WHERE id = ?`,
		session.APIBaseURL, session.Token, session.Username, session.ID)
	if err != nil {
		return fmt.Errorf("failed to update piped session: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("piped session with id %d not found", session.ID)
	}
	db.notifier.notify(tablePipedSessions)
	return nil
}

// ListPipedSessions returns all stored piped sessions.
func (db *DB) ListPipedSessions() ([]domain.PipedSession, error) {
	var sessions []domain.PipedSession
	err := db.Select(&sessions, "SELECT * FROM piped_sessions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list piped sessions: %w", err)
	}
	return sessions, nil
}

// ObservePipedSessions emits all stored sessions whenever they change.
func (db *DB) ObservePipedSessions() *Subscription[[]domain.PipedSession] {
	return observe(db, []string{tablePipedSessions}, func() ([]domain.PipedSession, error) {
		return db.ListPipedSessions()
	})
}

// DeletePipedSession removes a stored session by id.
func (db *DB) DeletePipedSession(id int64) error {
	if _, err := db.Exec("DELETE FROM piped_sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete piped session: %w", err)
	}
	db.notifier.notify(tablePipedSessions)
	return nil
}
