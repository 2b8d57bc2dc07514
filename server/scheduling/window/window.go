// Package window defines job run windows and the evaluator that decides
// whether an automated job is currently inside its allowed daily window.
package window

import (
	"fmt"

	"github.com/hrygo/callwave/server/scheduling/civiltime"
)

// JobName identifies an automated outbound-call job.
type JobName string

// The enumerated set of jobs whose windows are administrator-configurable.
const (
	// JobScheduledCalls is the batch job that places first-contact calls.
	JobScheduledCalls JobName = "ScheduledCalls"

	// JobRescheduleCall is the job that places calls a lead asked to move.
	JobRescheduleCall JobName = "RescheduleCall"

	// JobReminderCall is the job that places reminder follow-up calls.
	JobReminderCall JobName = "ReminderCall"
)

// AllJobNames lists every known job, in dispatch order.
var AllJobNames = []JobName{JobScheduledCalls, JobRescheduleCall, JobReminderCall}

// Valid reports whether n is one of the known job names.
func (n JobName) Valid() bool {
	switch n {
	case JobScheduledCalls, JobRescheduleCall, JobReminderCall:
		return true
	default:
		return false
	}
}

// JobWindow is the configured daily run window for a named job.
// Start and End are times of day stored in UTC. A nil End means the window
// runs until the end of the day (23:59 inclusive).
//
// Records are owned and persisted by the dispatcher's configuration store;
// this package only reads and evaluates them.
type JobWindow struct {
	Name    JobName
	Enabled bool
	Start   civiltime.CivilTime
	End     *civiltime.CivilTime
}

// Validate checks the window configuration. It is called at configuration
// write time so that malformed windows are rejected up front rather than
// discovered on a scheduler tick.
func (w *JobWindow) Validate() error {
	if !w.Name.Valid() {
		return fmt.Errorf("unknown job name %q", w.Name)
	}
	if w.End != nil && w.End.Before(w.Start) {
		return fmt.Errorf("job %s: end time %s is before start time %s", w.Name, w.End, w.Start)
	}
	return nil
}

// EffectiveEnd returns the configured end time, or the last representable
// time of day when no end is configured.
func (w *JobWindow) EffectiveEnd() civiltime.CivilTime {
	if w.End == nil {
		return civiltime.EndOfDay
	}
	return *w.End
}
