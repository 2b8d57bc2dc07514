// Package timezone provides timezone utilities for the callwave scheduling core.
//
// All job windows are stored in UTC but configured and read by operators in a
// reference civil zone (US Eastern by default). This package owns the zone
// lookup so that conversions always go through the IANA daylight-saving rules
// for the calendar date in question, never a hardcoded numeric offset.
package timezone

import (
	"fmt"
	"time"
)

// Common timezone identifiers.
const (
	// TimezoneUTC is the UTC timezone identifier.
	TimezoneUTC = "UTC"

	// TimezoneAmericaNewYork is the Eastern Time timezone, the default
	// reference civil zone for window configuration.
	TimezoneAmericaNewYork = "America/New_York"

	// TimezoneAmericaChicago is the Central Time timezone.
	TimezoneAmericaChicago = "America/Chicago"

	// TimezoneAmericaLosAngeles is the Pacific Time timezone.
	TimezoneAmericaLosAngeles = "America/Los_Angeles"
)

// ParseTimezone parses an IANA timezone identifier (e.g., "America/New_York").
// If the timezone is invalid, returns UTC and an error.
func ParseTimezone(tz string) (*time.Location, error) {
	if tz == "" || tz == TimezoneUTC {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	return loc, nil
}

// MustParseTimezone parses a timezone or panics if invalid.
// Use this for constants that are known to be valid at compile time.
func MustParseTimezone(tz string) *time.Location {
	loc, err := ParseTimezone(tz)
	if err != nil {
		panic(err)
	}
	return loc
}

// IsValidTimezone checks if a timezone identifier is valid.
func IsValidTimezone(tz string) bool {
	_, err := ParseTimezone(tz)
	return err == nil
}

// Pre-loaded reference zone locations.
var (
	// LocationAmericaNewYork is the pre-loaded America/New_York location.
	LocationAmericaNewYork = MustParseTimezone(TimezoneAmericaNewYork)
)

// StartOfDay returns the start of the day (00:00:00) in the given timezone.
func StartOfDay(t time.Time, tz *time.Location) time.Time {
	if tz == nil {
		tz = time.UTC
	}
	local := t.In(tz)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, tz)
}

// EndOfDay returns the end of the day (23:59:59.999999999) in the given timezone.
func EndOfDay(t time.Time, tz *time.Location) time.Time {
	if tz == nil {
		tz = time.UTC
	}
	local := t.In(tz)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999999999, tz)
}

// FormatCivilDate formats an instant as a civil date (YYYY-MM-DD) in the given zone.
func FormatCivilDate(t time.Time, tz *time.Location) string {
	if tz == nil {
		tz = time.UTC
	}
	return t.In(tz).Format("2006-01-02")
}
