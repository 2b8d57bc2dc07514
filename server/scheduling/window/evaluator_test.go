package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/callwave/server/scheduling/civiltime"
)

// 13:00-22:00 UTC is 9:00-18:00 Eastern during EDT and 8:00-17:00 during EST.
func businessHoursWindow() *JobWindow {
	end := civiltime.MustNew(22, 0)
	return &JobWindow{
		Name:    JobScheduledCalls,
		Enabled: true,
		Start:   civiltime.MustNew(13, 0),
		End:     &end,
	}
}

func newEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return NewEvaluator(loc)
}

func TestIsWithinWindow(t *testing.T) {
	eval := newEvaluator(t)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		// July weekday, EDT: window is 9:00-18:00 Eastern.
		{"july afternoon inside", time.Date(2024, 7, 10, 17, 30, 0, 0, time.UTC), true},
		{"july morning before open", time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC), false},
		{"july at start inclusive", time.Date(2024, 7, 10, 13, 0, 0, 0, time.UTC), true},
		{"july at end inclusive", time.Date(2024, 7, 10, 22, 0, 0, 0, time.UTC), true},
		{"july just past end", time.Date(2024, 7, 10, 22, 1, 0, 0, time.UTC), false},
		// January weekday, EST: same stored window reads 8:00-17:00 Eastern.
		{"january midday inside", time.Date(2024, 1, 10, 17, 30, 0, 0, time.UTC), true},
		{"january before open", time.Date(2024, 1, 10, 12, 30, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eval.IsWithinWindow(businessHoursWindow(), tt.now))
		})
	}
}

func TestIsWithinWindow_StrictlyOutsideIsAlwaysFalse(t *testing.T) {
	eval := newEvaluator(t)
	w := businessHoursWindow()

	before := []time.Time{
		time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 7, 10, 12, 59, 0, 0, time.UTC),
	}
	after := []time.Time{
		time.Date(2024, 7, 10, 22, 1, 0, 0, time.UTC),
		time.Date(2024, 7, 10, 23, 59, 0, 0, time.UTC),
	}

	for _, now := range before {
		assert.False(t, eval.IsWithinWindow(w, now), "before start at %s", now)
	}
	for _, now := range after {
		assert.False(t, eval.IsWithinWindow(w, now), "after end at %s", now)
	}
}

func TestIsWithinWindow_Disabled(t *testing.T) {
	eval := newEvaluator(t)

	w := businessHoursWindow()
	w.Enabled = false

	assert.False(t, eval.IsWithinWindow(w, time.Date(2024, 7, 10, 17, 30, 0, 0, time.UTC)))
}

func TestIsWithinWindow_NilWindow(t *testing.T) {
	eval := newEvaluator(t)
	assert.False(t, eval.IsWithinWindow(nil, time.Date(2024, 7, 10, 17, 30, 0, 0, time.UTC)))
}

func TestIsWithinWindow_NoEndRunsUntilEndOfDay(t *testing.T) {
	eval := newEvaluator(t)

	w := &JobWindow{
		Name:    JobReminderCall,
		Enabled: true,
		Start:   civiltime.MustNew(13, 0),
	}

	// 23:30 Eastern on a July evening is 03:30 UTC the next day.
	lateEvening := time.Date(2024, 7, 11, 3, 30, 0, 0, time.UTC)
	assert.True(t, eval.IsWithinWindow(w, lateEvening))

	beforeOpen := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)
	assert.False(t, eval.IsWithinWindow(w, beforeOpen))
}
