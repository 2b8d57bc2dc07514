// Package store provides database access to the job-window configuration
// that the dispatcher reads on every tick.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/callwave/internal/profile"
	"github.com/hrygo/callwave/server/scheduling/window"
)

// windowCacheTTL bounds how stale the dispatcher's view of a window edit can
// be. Ticks are a minute apart, so a few seconds of staleness is invisible.
const windowCacheTTL = 10 * time.Second

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// Job windows are read on every dispatcher tick; cache the full list
	// briefly to keep ticks off the database.
	mu             sync.RWMutex
	windowCache    []*JobWindow
	windowCachedAt time.Time
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

// GetDriver returns the underlying driver.
func (s *Store) GetDriver() Driver {
	return s.driver
}

// Close closes the store.
func (s *Store) Close() error {
	return s.driver.Close()
}

// Migrate creates or upgrades the schema.
func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

// UpsertJobWindow validates and persists a job window, invalidating the cache.
func (s *Store) UpsertJobWindow(ctx context.Context, upsert *JobWindow) (*JobWindow, error) {
	if err := upsert.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid job window")
	}

	result, err := s.driver.UpsertJobWindow(ctx, upsert)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.windowCache = nil
	s.mu.Unlock()

	return result, nil
}

// GetJobWindow returns the job window for a name, or nil when unconfigured.
func (s *Store) GetJobWindow(ctx context.Context, name string) (*JobWindow, error) {
	return s.driver.GetJobWindow(ctx, name)
}

// ListJobWindows lists job windows with filter. The unfiltered list is
// served from a short-lived cache.
func (s *Store) ListJobWindows(ctx context.Context, find *FindJobWindow) ([]*JobWindow, error) {
	cacheable := find == nil || (find.Name == nil && !find.OnlyEnabled)

	if cacheable {
		s.mu.RLock()
		if s.windowCache != nil && time.Since(s.windowCachedAt) < windowCacheTTL {
			cached := s.windowCache
			s.mu.RUnlock()
			return cached, nil
		}
		s.mu.RUnlock()
	}

	windows, err := s.driver.ListJobWindows(ctx, find)
	if err != nil {
		return nil, err
	}

	if cacheable {
		s.mu.Lock()
		s.windowCache = windows
		s.windowCachedAt = time.Now()
		s.mu.Unlock()
	}

	return windows, nil
}

// EnsureDefaultJobWindows seeds a disabled default window for every known
// job name that has no row yet, so administrators always have something to
// edit. Defaults cover 9:00-18:00 Eastern expressed as 13:00-22:00 UTC
// (EDT); operators are expected to adjust them.
func (s *Store) EnsureDefaultJobWindows(ctx context.Context) error {
	for _, name := range window.AllJobNames {
		existing, err := s.driver.GetJobWindow(ctx, string(name))
		if err != nil {
			return errors.Wrapf(err, "failed to look up job window %s", name)
		}
		if existing != nil {
			continue
		}

		end := "22:00"
		seed := &JobWindow{
			Name:      string(name),
			Enabled:   false,
			StartTime: "13:00",
			EndTime:   &end,
		}
		if _, err := s.UpsertJobWindow(ctx, seed); err != nil {
			return errors.Wrapf(err, "failed to seed job window %s", name)
		}
	}
	return nil
}
