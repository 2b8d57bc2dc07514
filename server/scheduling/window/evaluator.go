package window

import (
	"time"

	"github.com/hrygo/callwave/server/scheduling/civiltime"
)

// Evaluator decides whether a job is inside its configured run window at a
// given instant.
//
// The comparison happens in the reference civil zone, not UTC. Operators
// configure windows colloquially ("call between 9am and 6pm Eastern"); a UTC
// comparison would silently shift the effective window by an hour across
// every daylight-saving transition.
type Evaluator struct {
	converter *civiltime.Converter
}

// NewEvaluator creates an Evaluator comparing in the given reference zone.
func NewEvaluator(zone *time.Location) *Evaluator {
	return &Evaluator{converter: civiltime.NewConverter(zone)}
}

// IsWithinWindow reports whether nowUTC falls inside w's daily window,
// inclusive at both ends. A disabled window is never within.
//
// This is a pure boolean gate over (window, now). It does not track whether
// the job already ran today; that bookkeeping belongs to the dispatcher.
func (e *Evaluator) IsWithinWindow(w *JobWindow, nowUTC time.Time) bool {
	if w == nil || !w.Enabled {
		return false
	}

	local := nowUTC.UTC().In(e.converter.Zone())
	current := civiltime.MustNew(local.Hour(), local.Minute())

	start := e.converter.ToReferenceZone(w.Start, nowUTC)

	// An absent end means "until end of day" in the reference frame, so it
	// is not converted from UTC: the window simply never closes early.
	end := civiltime.EndOfDay
	if w.End != nil {
		end = e.converter.ToReferenceZone(*w.End, nowUTC)
	}

	return !current.Before(start) && !current.After(end)
}
