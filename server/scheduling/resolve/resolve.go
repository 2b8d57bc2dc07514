// Package resolve turns free-text rescheduling phrases ("next monday",
// "after 5 days") into concrete, business-day-adjusted follow-up instants.
//
// Resolution is a pipeline of two candidate tiers and one mandatory
// normalization stage:
//
//  1. the deterministic tier matches a closed set of phrase patterns;
//  2. the inferential tier (optional) asks an external text-understanding
//     collaborator for a best-effort date — its output is never trusted
//     directly;
//  3. the normalization stage applies the default hour, rolls weekend
//     landings to the next business day, and rejects unusable candidates.
//
// The pipeline short-circuits on the first tier that produces a candidate;
// normalization runs on that candidate regardless of its source.
package resolve

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/hrygo/callwave/plugin/ai/timeout"
	"github.com/hrygo/callwave/server/scheduling/busday"
	"github.com/hrygo/callwave/server/scheduling/civiltime"
)

// Tier identifies which resolution tier produced a candidate.
type Tier string

const (
	// TierPattern is the deterministic pattern-matching tier.
	TierPattern Tier = "pattern"
	// TierInference is the external text-understanding tier.
	TierInference Tier = "inference"
)

// Schedule is a resolved follow-up instant. At is always a UTC instant on a
// business day carrying a concrete time of day.
type Schedule struct {
	At   time.Time
	Tier Tier
}

// Inferencer is the optional external text-understanding collaborator.
// now is the caller-supplied reference instant; implementations present its
// reference-zone calendar date to the collaborator.
type Inferencer interface {
	InferDate(ctx context.Context, phrase string, now time.Time) (time.Time, error)
}

// DefaultInferenceTimeout bounds a single inferential-tier call.
const DefaultInferenceTimeout = timeout.InferenceTimeout

// Resolver resolves free-text rescheduling phrases.
type Resolver struct {
	converter    *civiltime.Converter
	defaultHour  int
	inferencer   Inferencer
	inferTimeout time.Duration
	logger       *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithInferencer enables the inferential tier.
func WithInferencer(inf Inferencer) Option {
	return func(r *Resolver) {
		r.inferencer = inf
	}
}

// WithInferenceTimeout overrides the deadline applied to inferential calls.
func WithInferenceTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.inferTimeout = d
		}
	}
}

// WithLogger overrides the resolver's logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Resolver for the given reference zone. defaultHour is the
// reference-zone hour applied to candidates that carry a date but no time.
func New(zone *time.Location, defaultHour int, opts ...Option) (*Resolver, error) {
	if _, err := civiltime.New(defaultHour, 0); err != nil {
		return nil, err
	}

	r := &Resolver{
		converter:    civiltime.NewConverter(zone),
		defaultHour:  defaultHour,
		inferTimeout: DefaultInferenceTimeout,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Resolve turns phrase into a follow-up schedule relative to now.
// A nil result is the explicit "no schedule" outcome: the phrase was empty,
// matched nothing, or produced a candidate normalization rejected. It is a
// valid outcome the caller must handle, not an error.
//
// Failures of the inferential tier (timeout, cancellation, malformed
// response) are logged and degrade to "no schedule"; they never propagate.
func (r *Resolver) Resolve(ctx context.Context, phrase string, now time.Time) *Schedule {
	trimmed := strings.TrimSpace(phrase)
	if trimmed == "" {
		return nil
	}

	if candidate, ok := r.matchPattern(trimmed, now); ok {
		return r.finish(candidate, TierPattern, now)
	}

	if r.inferencer == nil {
		return nil
	}

	ictx, cancel := context.WithTimeout(ctx, r.inferTimeout)
	defer cancel()

	candidate, err := r.inferencer.InferDate(ictx, trimmed, now)
	if err != nil {
		r.logger.Warn("schedule inference failed, treating as no candidate",
			"phrase", trimmed,
			"error", err)
		return nil
	}

	return r.finish(candidate, TierInference, now)
}

func (r *Resolver) finish(candidate time.Time, tier Tier, now time.Time) *Schedule {
	normalized, ok := r.Normalize(candidate, now)
	if !ok {
		r.logger.Debug("candidate rejected during normalization",
			"candidate", candidate,
			"tier", string(tier))
		return nil
	}
	return &Schedule{At: normalized, Tier: tier}
}

// Normalize applies the mandatory final stage to a raw candidate:
//
//   - a zero time of day (date-only candidate) gets the default hour in the
//     reference zone;
//   - a weekend calendar date advances to the following Monday at the
//     default hour;
//   - a candidate whose reference-zone calendar date is already past is
//     rejected.
//
// Normalization is idempotent: a candidate already on a business day with a
// non-zero time of day comes back unchanged. The returned instant is UTC.
func (r *Resolver) Normalize(candidate time.Time, now time.Time) (time.Time, bool) {
	if candidate.IsZero() {
		return time.Time{}, false
	}

	zone := r.converter.Zone()
	local := candidate.In(zone)

	if local.Hour() == 0 && local.Minute() == 0 {
		local = time.Date(local.Year(), local.Month(), local.Day(), r.defaultHour, 0, 0, 0, zone)
	}

	if !busday.IsBusinessDay(local) {
		rolled := busday.NextBusinessDayOnOrAfter(local)
		local = time.Date(rolled.Year(), rolled.Month(), rolled.Day(), r.defaultHour, 0, 0, 0, zone)
	}

	// A past calendar date means the candidate cannot be acted on; rolling
	// it forward would invent a date the human never asked for.
	today := busday.DateOnly(now.In(zone))
	if busday.DateOnly(local).Before(today) {
		return time.Time{}, false
	}

	return local.UTC(), true
}

// DefaultHour returns the configured default hour of day.
func (r *Resolver) DefaultHour() int {
	return r.defaultHour
}
