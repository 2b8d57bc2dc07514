// Package civiltime provides the CivilTime value type and date-aware
// conversion between a reference civil zone and UTC.
//
// A CivilTime is a wall-clock time of day with no date component. It is
// interpreted in one of two frames: the reference civil zone (whose UTC
// offset varies with daylight saving) or UTC. Because the offset depends on
// the calendar date, every conversion takes the date explicitly.
package civiltime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var civilTimePattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// CivilTime is an immutable wall-clock time of day (hour and minute).
type CivilTime struct {
	hour   int
	minute int
}

// New creates a CivilTime, validating that hour is in [0, 23] and minute is
// in [0, 59]. Out-of-range values are a hard failure, never clamped; silent
// clamping is exactly the class of bug this core exists to eliminate.
func New(hour, minute int) (CivilTime, error) {
	if hour < 0 || hour > 23 {
		return CivilTime{}, fmt.Errorf("hour %d out of range [0, 23]", hour)
	}
	if minute < 0 || minute > 59 {
		return CivilTime{}, fmt.Errorf("minute %d out of range [0, 59]", minute)
	}
	return CivilTime{hour: hour, minute: minute}, nil
}

// MustNew creates a CivilTime or panics. Use only for compile-time constants.
func MustNew(hour, minute int) CivilTime {
	t, err := New(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse parses a "HH:MM" string into a CivilTime.
// Malformed input (non-numeric, wrong shape, out of range) is an explicit
// parse failure.
func Parse(s string) (CivilTime, error) {
	matches := civilTimePattern.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return CivilTime{}, fmt.Errorf("invalid time of day %q, expected HH:MM", s)
	}

	hour, err := strconv.Atoi(matches[1])
	if err != nil {
		return CivilTime{}, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(matches[2])
	if err != nil {
		return CivilTime{}, fmt.Errorf("invalid minute in %q: %w", s, err)
	}

	return New(hour, minute)
}

// Hour returns the hour component.
func (t CivilTime) Hour() int {
	return t.hour
}

// Minute returns the minute component.
func (t CivilTime) Minute() int {
	return t.minute
}

// String formats the time of day as "HH:MM".
func (t CivilTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// MinutesOfDay returns the time of day as minutes since midnight.
// Used for ordering comparisons within a single civil day.
func (t CivilTime) MinutesOfDay() int {
	return t.hour*60 + t.minute
}

// Before reports whether t is strictly earlier in the day than other.
func (t CivilTime) Before(other CivilTime) bool {
	return t.MinutesOfDay() < other.MinutesOfDay()
}

// After reports whether t is strictly later in the day than other.
func (t CivilTime) After(other CivilTime) bool {
	return t.MinutesOfDay() > other.MinutesOfDay()
}

// EndOfDay is the last representable time of day, used when a window has no
// configured end time.
var EndOfDay = CivilTime{hour: 23, minute: 59}
