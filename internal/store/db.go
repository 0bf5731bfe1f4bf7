package store

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/mvicente/harmonydb/internal/constants"
	"github.com/mvicente/harmonydb/internal/domain"
	"github.com/mvicente/harmonydb/internal/logger"
)

// DB is the library store handle. All reads and writes go through it;
// mutating methods notify the reactive layer after commit.
type DB struct {
	*sqlx.DB
	log      *logger.Logger
	notifier *notifier
}

// Options tunes store opening. The zero value is usable.
type Options struct {
	BusyTimeoutMs int
	Logger        *logger.Logger
}

// Open opens or creates the store file at path and runs any pending
// migrations. A migration failure is fatal: no handle is returned and
// the store file must not be used.
func Open(path string, opts *Options) (*DB, error) {
	if opts == nil {
		opts = &Options{}
	}
	timeout := opts.BusyTimeoutMs
	if timeout <= 0 {
		timeout = constants.DefaultBusyTimeoutMs
	}
	log := opts.Logger
	if log == nil {
		log = logger.Default()
	}
	log = log.WithComponent("store")

	// Migrations run on a dedicated connection with foreign keys off,
	// so table rebuilds do not trigger cascades against live child
	// rows. The runtime pool enforces them.
	migDB, err := sqlx.Connect("sqlite", dsn(path, timeout, false))
	if err != nil {
		return nil, fmt.Errorf("failed to open db for migration: %w", err)
	}
	migDB.SetMaxOpenConns(1)
	if err := migrate(migDB, log); err != nil {
		migDB.Close()
		return nil, err
	}
	if err := migDB.Close(); err != nil {
		return nil, fmt.Errorf("failed to close migration connection: %w", err)
	}

	sdb, err := sqlx.Connect("sqlite", dsn(path, timeout, true))
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	return &DB{
		DB:       sdb,
		log:      log,
		notifier: newNotifier(),
	}, nil
}

func dsn(path string, busyTimeoutMs int, foreignKeys bool) string {
	fk := 0
	if foreignKeys {
		fk = 1
	}
	return fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=foreign_keys(%d)",
		path, busyTimeoutMs, fk,
	)
}

var (
	sharedOnce sync.Once
	sharedDB   *DB
	sharedErr  error
)

// Shared returns the process-wide store handle, opening it on first
// call. Concurrent callers block until the single opening caller
// finishes; all receive the same handle or the same open error.
func Shared(path string, opts *Options) (*DB, error) {
	sharedOnce.Do(func() {
		sharedDB, sharedErr = Open(path, opts)
	})
	return sharedDB, sharedErr
}

// Close stops all subscriptions and closes the underlying pool.
func (db *DB) Close() error {
	db.notifier.closeAll()
	return db.DB.Close()
}

// SchemaVersion returns the store file's current schema version.
func (db *DB) SchemaVersion() (int, error) {
	return userVersion(db.DB)
}

// Checkpoint flushes the WAL into the main store file.
func (db *DB) Checkpoint() error {
	if _, err := db.Exec("PRAGMA wal_checkpoint(FULL)"); err != nil {
		return fmt.Errorf("failed to checkpoint: %w", err)
	}
	return nil
}

// inTx runs fn inside a transaction; on success it commits and
// notifies subscribers of the touched tables, on any failure it rolls
// back wholesale.
func (db *DB) inTx(fn func(tx *sqlx.Tx) error, tables ...string) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // deferred cleanup

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	db.notifier.notify(tables...)
	return nil
}

// isFKViolation reports whether err is a SQLite foreign key failure.
func isFKViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// wrapFK converts SQLite foreign key failures into the exported
// sentinel so callers can match with errors.Is.
func wrapFK(err error) error {
	if isFKViolation(err) {
		return fmt.Errorf("%v: %w", err, domain.ErrForeignKey)
	}
	return err
}
