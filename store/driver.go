package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that a store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	// Migrate creates or upgrades the schema.
	Migrate(ctx context.Context) error

	// JobWindow model related methods.
	UpsertJobWindow(ctx context.Context, upsert *JobWindow) (*JobWindow, error)
	GetJobWindow(ctx context.Context, name string) (*JobWindow, error)
	ListJobWindows(ctx context.Context, find *FindJobWindow) ([]*JobWindow, error)
}
