package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimezone(t *testing.T) {
	loc, err := ParseTimezone("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())

	loc, err = ParseTimezone("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = ParseTimezone("UTC")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = ParseTimezone("Mars/Olympus_Mons")
	require.Error(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestIsValidTimezone(t *testing.T) {
	assert.True(t, IsValidTimezone("America/New_York"))
	assert.True(t, IsValidTimezone("UTC"))
	assert.False(t, IsValidTimezone("Not/A_Zone"))
}

func TestStartOfDayAndEndOfDay(t *testing.T) {
	// 2024-07-10 03:30 UTC is 2024-07-09 23:30 Eastern.
	instant := time.Date(2024, 7, 10, 3, 30, 0, 0, time.UTC)

	start := StartOfDay(instant, LocationAmericaNewYork)
	assert.Equal(t, time.Date(2024, 7, 9, 0, 0, 0, 0, LocationAmericaNewYork), start)

	end := EndOfDay(instant, LocationAmericaNewYork)
	assert.Equal(t, time.Date(2024, 7, 9, 23, 59, 59, 999999999, LocationAmericaNewYork), end)

	assert.Equal(t, time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC), StartOfDay(instant, nil))
}

func TestFormatCivilDate(t *testing.T) {
	instant := time.Date(2024, 7, 10, 3, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-07-10", FormatCivilDate(instant, nil))
	assert.Equal(t, "2024-07-09", FormatCivilDate(instant, LocationAmericaNewYork))
}
