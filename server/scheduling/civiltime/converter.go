package civiltime

import (
	"time"
)

// Converter converts a CivilTime between UTC and a reference civil zone as of
// a given calendar date. The date matters: the reference zone's UTC offset
// changes across daylight-saving transitions, so a fixed offset would shift
// every configured window by an hour twice a year.
type Converter struct {
	zone *time.Location
}

// NewConverter creates a Converter for the given reference zone.
// A nil zone falls back to UTC, which makes the conversion the identity.
func NewConverter(zone *time.Location) *Converter {
	if zone == nil {
		zone = time.UTC
	}
	return &Converter{zone: zone}
}

// Zone returns the reference zone the converter was built with.
func (c *Converter) Zone() *time.Location {
	return c.zone
}

// ToReferenceZone converts a UTC time of day into the reference zone, as of
// the calendar date carried by date (evaluated in UTC).
func (c *Converter) ToReferenceZone(t CivilTime, date time.Time) CivilTime {
	d := date.UTC()
	instant := time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	local := instant.In(c.zone)
	return CivilTime{hour: local.Hour(), minute: local.Minute()}
}

// ToUTC converts a reference-zone time of day into UTC, as of the calendar
// date carried by date (evaluated in the reference zone).
//
// Round-trip note: ToUTC(ToReferenceZone(t, d), d) == t for every valid t,
// except times that fall inside the reference zone's spring-forward gap,
// which the zone rules resolve to the nearest valid instant.
func (c *Converter) ToUTC(t CivilTime, date time.Time) CivilTime {
	d := date.In(c.zone)
	instant := time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, c.zone)
	utc := instant.UTC()
	return CivilTime{hour: utc.Hour(), minute: utc.Minute()}
}

// At materializes a reference-zone time of day into a full instant on the
// calendar day carried by date (evaluated in the reference zone).
func (c *Converter) At(t CivilTime, date time.Time) time.Time {
	d := date.In(c.zone)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, c.zone)
}
