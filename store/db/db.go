// Package db provides the database driver factory.
package db

import (
	"github.com/pkg/errors"

	"github.com/hrygo/callwave/internal/profile"
	"github.com/hrygo/callwave/store"
	"github.com/hrygo/callwave/store/db/postgres"
	"github.com/hrygo/callwave/store/db/sqlite"
)

// NewDBDriver creates a new db driver based on profile.
// SQLite serves development and single-node installs; PostgreSQL is the
// production driver.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	default:
		return nil, errors.Errorf("unknown db driver %q: only 'sqlite' and 'postgres' are supported", profile.Driver)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
