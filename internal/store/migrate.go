package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mvicente/harmonydb/internal/domain"
	"github.com/mvicente/harmonydb/internal/logger"
)

// deltaKind tags the structural schema transformations the engine can
// apply mechanically from a before/after diff.
type deltaKind int

const (
	deltaCreateTable deltaKind = iota
	deltaAddColumn
	deltaRenameColumn
	deltaRenameTable
	deltaDropColumn
	deltaDropTable
	deltaCreateIndex
)

// schemaDelta is one structural change. The fields used depend on the
// kind: create table/index carry full DDL in ddl, add column carries
// the column definition in ddl, renames carry column/to.
type schemaDelta struct {
	kind   deltaKind
	table  string
	column string
	to     string
	ddl    string
}

// migration carries a store from version-1 to version. Structural
// deltas are applied first, then the data rewrite when present. Each
// migration is one atomic unit.
type migration struct {
	version int
	label   string
	deltas  []schemaDelta
	rewrite func(tx *sqlx.Tx) error
}

// migrate brings the store at the other end of db up to TargetVersion.
// Any error is fatal for store initialization; there is no partial
// success and no retry. Downgrades are rejected.
func migrate(db *sqlx.DB, log *logger.Logger) error {
	return migrateTo(db, TargetVersion, log)
}

func migrateTo(db *sqlx.DB, target int, log *logger.Logger) error {
	version, err := userVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w: %w", err, domain.ErrMigration)
	}
	if version > target {
		return fmt.Errorf("store is at version %d, newer than supported %d: %w", version, target, domain.ErrMigration)
	}

	for _, m := range migrations {
		if m.version <= version || m.version > target {
			continue
		}
		step := log.WithMigration(m.version-1, m.version)
		step.Info("applying migration", "label", m.label)
		if err := applyMigration(db, m); err != nil {
			step.Error("migration failed", "label", m.label, "error", err)
			return fmt.Errorf("migration to version %d (%s): %w: %w", m.version, m.label, err, domain.ErrMigration)
		}
	}
	return nil
}

func applyMigration(db *sqlx.DB, m migration) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // deferred cleanup

	for _, d := range m.deltas {
		if err := applyDelta(tx, d); err != nil {
			return err
		}
	}
	if m.rewrite != nil {
		if err := m.rewrite(tx); err != nil {
			return err
		}
	}
	// PRAGMA does not take bound parameters; version comes from the
	// static migration list.
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	return tx.Commit()
}

func applyDelta(tx *sqlx.Tx, d schemaDelta) error {
	var stmt string
	switch d.kind {
	case deltaCreateTable, deltaCreateIndex:
		stmt = d.ddl
	case deltaAddColumn:
		stmt = fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", d.table, d.ddl)
	case deltaRenameColumn:
		stmt = fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s", d.table, d.column, d.to)
	case deltaRenameTable:
		stmt = fmt.Sprintf("ALTER TABLE %s RENAME TO %s", d.table, d.to)
	case deltaDropColumn:
		stmt = fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", d.table, d.column)
	case deltaDropTable:
		stmt = fmt.Sprintf("DROP TABLE %s", d.table)
	default:
		return fmt.Errorf("unknown schema delta kind %d", d.kind)
	}
	if _, err := tx.Exec(stmt); err != nil {
		return fmt.Errorf("failed to apply %q: %w", stmt, err)
	}
	return nil
}

func userVersion(db *sqlx.DB) (int, error) {
	var version int
	if err := db.Get(&version, "PRAGMA user_version"); err != nil {
		return 0, err
	}
	return version, nil
}
