package store

import (
	"github.com/pkg/errors"

	"github.com/hrygo/callwave/server/scheduling/civiltime"
	"github.com/hrygo/callwave/server/scheduling/window"
)

// JobWindow is the persisted configuration row for a named job's run window.
// StartTime and EndTime are "HH:MM" times of day stored in UTC; a nil
// EndTime means the window runs until the end of the day.
type JobWindow struct {
	Name      string
	Enabled   bool
	StartTime string
	EndTime   *string
	UpdatedTs int64
}

// FindJobWindow is the find condition for job windows.
type FindJobWindow struct {
	Name        *string
	OnlyEnabled bool
}

// Validate parses and checks the row the way the evaluator will read it.
// Called on every write so malformed windows are rejected at configuration
// time, not discovered on a scheduler tick.
func (w *JobWindow) Validate() error {
	if _, err := w.ToWindow(); err != nil {
		return err
	}
	return nil
}

// ToWindow converts the persisted row into the evaluator's domain type.
func (w *JobWindow) ToWindow() (*window.JobWindow, error) {
	start, err := civiltime.Parse(w.StartTime)
	if err != nil {
		return nil, errors.Wrapf(err, "job %s: invalid start time", w.Name)
	}

	result := &window.JobWindow{
		Name:    window.JobName(w.Name),
		Enabled: w.Enabled,
		Start:   start,
	}

	if w.EndTime != nil {
		end, err := civiltime.Parse(*w.EndTime)
		if err != nil {
			return nil, errors.Wrapf(err, "job %s: invalid end time", w.Name)
		}
		result.End = &end
	}

	if err := result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}
