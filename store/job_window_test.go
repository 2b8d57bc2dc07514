package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/callwave/server/scheduling/window"
)

func strPtr(s string) *string { return &s }

func TestJobWindow_Validate(t *testing.T) {
	tests := []struct {
		name    string
		row     JobWindow
		wantErr bool
	}{
		{
			name: "valid with end",
			row:  JobWindow{Name: "ScheduledCalls", StartTime: "13:00", EndTime: strPtr("22:00")},
		},
		{
			name: "valid without end",
			row:  JobWindow{Name: "ReminderCall", StartTime: "13:00"},
		},
		{
			name:    "malformed start",
			row:     JobWindow{Name: "ScheduledCalls", StartTime: "25:00"},
			wantErr: true,
		},
		{
			name:    "malformed end",
			row:     JobWindow{Name: "ScheduledCalls", StartTime: "13:00", EndTime: strPtr("9pm")},
			wantErr: true,
		},
		{
			name:    "end before start",
			row:     JobWindow{Name: "ScheduledCalls", StartTime: "22:00", EndTime: strPtr("13:00")},
			wantErr: true,
		},
		{
			name:    "unknown job name",
			row:     JobWindow{Name: "NightlyReport", StartTime: "13:00"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.row.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestJobWindow_ToWindow(t *testing.T) {
	row := JobWindow{
		Name:      "ScheduledCalls",
		Enabled:   true,
		StartTime: "13:00",
		EndTime:   strPtr("22:00"),
	}

	w, err := row.ToWindow()
	require.NoError(t, err)

	assert.Equal(t, window.JobScheduledCalls, w.Name)
	assert.True(t, w.Enabled)
	assert.Equal(t, "13:00", w.Start.String())
	require.NotNil(t, w.End)
	assert.Equal(t, "22:00", w.End.String())
}

func TestJobWindow_ToWindowOpenEnded(t *testing.T) {
	row := JobWindow{Name: "ReminderCall", StartTime: "13:00"}

	w, err := row.ToWindow()
	require.NoError(t, err)
	assert.Nil(t, w.End)
	assert.Equal(t, "23:59", w.EffectiveEnd().String())
}
