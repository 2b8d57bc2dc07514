package resolve

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInferencer struct {
	at        time.Time
	err       error
	gotPhrase string
}

func (f *fakeInferencer) InferDate(_ context.Context, phrase string, _ time.Time) (time.Time, error) {
	f.gotPhrase = phrase
	return f.at, f.err
}

type blockingInferencer struct{}

func (blockingInferencer) InferDate(ctx context.Context, _ string, _ time.Time) (time.Time, error) {
	<-ctx.Done()
	return time.Time{}, ctx.Err()
}

func TestResolve_EmptyPhraseIsAbsence(t *testing.T) {
	r := newTestResolver(t)

	assert.Nil(t, r.Resolve(context.Background(), "", referenceNow))
	assert.Nil(t, r.Resolve(context.Background(), "   \t\n", referenceNow))
}

func TestResolve_PatternTierAppliesDefaultHour(t *testing.T) {
	r := newTestResolver(t)

	got := r.Resolve(context.Background(), "after 5 days", referenceNow)
	require.NotNil(t, got)

	// 2024-03-06 10:00 EST is 15:00 UTC.
	assert.Equal(t, time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC), got.At)
	assert.Equal(t, TierPattern, got.Tier)
}

func TestResolve_PatternLandingOnWeekendRollsToMonday(t *testing.T) {
	r := newTestResolver(t)

	got := r.Resolve(context.Background(), "next saturday", referenceNow)
	require.NotNil(t, got)

	// Saturday 2024-03-02 rolls to Monday 2024-03-04 at the default hour.
	assert.Equal(t, time.Date(2024, 3, 4, 15, 0, 0, 0, time.UTC), got.At)
	assert.Equal(t, TierPattern, got.Tier)
}

func TestResolve_NoInferencerIsAbsence(t *testing.T) {
	r := newTestResolver(t)

	assert.Nil(t, r.Resolve(context.Background(), "whenever suits you", referenceNow))
}

func TestResolve_InferenceTier(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// The collaborator answers with Saturday midnight; normalization rolls it
	// to Monday at the default hour. 2024-03-11 10:00 is EDT, so 14:00 UTC.
	inf := &fakeInferencer{at: time.Date(2024, 3, 9, 0, 0, 0, 0, loc)}
	r := newTestResolver(t, WithInferencer(inf))

	got := r.Resolve(context.Background(), "when my kid is back from camp", referenceNow)
	require.NotNil(t, got)

	assert.Equal(t, time.Date(2024, 3, 11, 14, 0, 0, 0, time.UTC), got.At)
	assert.Equal(t, TierInference, got.Tier)
	assert.Equal(t, "when my kid is back from camp", inf.gotPhrase)
}

func TestResolve_PatternShortCircuitsInference(t *testing.T) {
	inf := &fakeInferencer{at: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	r := newTestResolver(t, WithInferencer(inf))

	got := r.Resolve(context.Background(), "next monday", referenceNow)
	require.NotNil(t, got)

	assert.Equal(t, TierPattern, got.Tier)
	assert.Empty(t, inf.gotPhrase)
}

func TestResolve_InferenceFailureIsAbsence(t *testing.T) {
	inf := &fakeInferencer{err: errors.New("upstream unavailable")}
	r := newTestResolver(t, WithInferencer(inf))

	assert.Nil(t, r.Resolve(context.Background(), "sometime after the move", referenceNow))
}

func TestResolve_InferencePastDateIsAbsence(t *testing.T) {
	inf := &fakeInferencer{at: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}
	r := newTestResolver(t, WithInferencer(inf))

	assert.Nil(t, r.Resolve(context.Background(), "back in february", referenceNow))
}

func TestResolve_InferenceTimeout(t *testing.T) {
	r := newTestResolver(t,
		WithInferencer(blockingInferencer{}),
		WithInferenceTimeout(10*time.Millisecond))

	assert.Nil(t, r.Resolve(context.Background(), "let me think about it", referenceNow))
}

func TestNormalize(t *testing.T) {
	r := newTestResolver(t)
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name      string
		candidate time.Time
		want      time.Time
		wantOK    bool
	}{
		{
			name:      "date only gets default hour",
			candidate: time.Date(2024, 3, 6, 0, 0, 0, 0, loc),
			want:      time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC),
			wantOK:    true,
		},
		{
			name:      "explicit time preserved",
			candidate: time.Date(2024, 3, 6, 14, 30, 0, 0, loc),
			want:      time.Date(2024, 3, 6, 19, 30, 0, 0, time.UTC),
			wantOK:    true,
		},
		{
			name:      "saturday with explicit time rolls to monday default hour",
			candidate: time.Date(2024, 3, 9, 11, 0, 0, 0, loc),
			want:      time.Date(2024, 3, 11, 14, 0, 0, 0, time.UTC),
			wantOK:    true,
		},
		{
			name:      "past date rejected",
			candidate: time.Date(2024, 2, 28, 0, 0, 0, 0, loc),
			wantOK:    false,
		},
		{
			name:      "same day earlier time still accepted",
			candidate: time.Date(2024, 3, 1, 8, 0, 0, 0, loc),
			want:      time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC),
			wantOK:    true,
		},
		{
			name:   "zero value rejected",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Normalize(tt.candidate, referenceNow)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	r := newTestResolver(t)

	first, ok := r.Normalize(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), referenceNow)
	require.True(t, ok)

	second, ok := r.Normalize(first, referenceNow)
	require.True(t, ok)
	assert.Equal(t, first, second)
}
