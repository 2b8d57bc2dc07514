package sqlite

import (
	"context"
	"database/sql"

	// Import the SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/pkg/errors"

	"github.com/hrygo/callwave/internal/profile"
	"github.com/hrygo/callwave/store"
)

// DB is the SQLite implementation of store.Driver.
type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens the SQLite database named by the profile DSN.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	// busy_timeout avoids spurious SQLITE_BUSY when the admin API writes a
	// window while the dispatcher is reading.
	db, err := sql.Open("sqlite", profile.DSN+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database %s", profile.DSN)
	}

	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return &DB{db: db, profile: profile}, nil
}

// GetDB returns the underlying database handle.
func (d *DB) GetDB() *sql.DB {
	return d.db
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Migrate creates the schema.
func (d *DB) Migrate(ctx context.Context) error {
	const stmt = `
		CREATE TABLE IF NOT EXISTS job_window (
			name TEXT PRIMARY KEY,
			enabled INTEGER NOT NULL DEFAULT 0,
			start_time TEXT NOT NULL,
			end_time TEXT,
			updated_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
		)`
	if _, err := d.db.ExecContext(ctx, stmt); err != nil {
		return errors.Wrap(err, "failed to create job_window table")
	}
	return nil
}
