// Package dateinfer implements the inferential scheduling tier: it asks an
// LLM collaborator to turn a free-text rescheduling phrase into a concrete
// date, then hardens the response back into a time.Time.
//
// Everything returned from here is untrusted with respect to scheduling
// guarantees. The resolver's normalization stage always re-validates it.
package dateinfer

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/hrygo/callwave/plugin/ai"
	"github.com/hrygo/callwave/plugin/ai/timeout"
)

const systemPromptTemplate = `You are a scheduling assistant for an outbound-call CRM.
Today's date is %s and the timezone is %s.
The user supplies a phrase describing when a follow-up call should happen.
Reply with exactly one ISO-8601 date or date-time (for example 2024-03-06 or
2024-03-06T%02d:00:00) and nothing else. If the phrase does not describe a
time, reply with the single word NONE.`

// isoCandidatePattern extracts the first ISO-8601-looking token from a model
// response, tolerating surrounding prose.
var isoCandidatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}(?:[T ]\d{2}:\d{2}(?::\d{2})?(?:Z|[+-]\d{2}:?\d{2})?)?`)

// ChatCompleter is the single-turn chat surface dateinfer needs.
type ChatCompleter interface {
	Chat(ctx context.Context, messages []ai.Message) (string, error)
}

// Client asks a chat model to infer a schedule date from a phrase.
type Client struct {
	llm         ChatCompleter
	zone        *time.Location
	defaultHour int
	limiter     *rate.Limiter
	logger      *slog.Logger
}

// New creates a Client. zone is the reference civil zone presented to the
// model; defaultHour is included in the prompt so date-time answers land on
// the configured hour.
func New(llm ChatCompleter, zone *time.Location, defaultHour int) *Client {
	if zone == nil {
		zone = time.UTC
	}
	return &Client{
		llm:         llm,
		zone:        zone,
		defaultHour: defaultHour,
		// One inference per second with a small burst keeps a chatty
		// call-outcome handler from saturating the provider.
		limiter: rate.NewLimiter(rate.Limit(1), 3),
		logger:  slog.Default(),
	}
}

// WithLogger overrides the client's logger.
func (c *Client) WithLogger(l *slog.Logger) *Client {
	if l != nil {
		c.logger = l
	}
	return c
}

// InferDate asks the model for a schedule date. The returned instant is a
// raw, untrusted candidate; a date-only answer comes back at midnight in the
// reference zone so the caller's normalization applies the default hour.
func (c *Client) InferDate(ctx context.Context, phrase string, now time.Time) (time.Time, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return time.Time{}, err
	}

	today := now.In(c.zone).Format("2006-01-02")
	system := fmt.Sprintf(systemPromptTemplate, today, c.zone.String(), c.defaultHour)

	response, err := c.llm.Chat(ctx, []ai.Message{
		ai.SystemPrompt(system),
		ai.UserMessage(phrase),
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("inference call failed: %w", err)
	}

	candidate, err := c.hardenResponse(response)
	if err != nil {
		c.logger.Debug("unusable inference response",
			"phrase", phrase,
			"response", truncate(response, 80))
		return time.Time{}, err
	}

	return candidate, nil
}

// hardenResponse extracts and parses the first ISO-8601 token from a model
// response. Anything that does not parse is rejected, never guessed at.
func (c *Client) hardenResponse(response string) (time.Time, error) {
	trimmed := strings.TrimSpace(response)
	if trimmed == "" || strings.EqualFold(trimmed, "NONE") {
		return time.Time{}, fmt.Errorf("no date in response")
	}
	if len(trimmed) > timeout.MaxInferenceResponseLength {
		return time.Time{}, fmt.Errorf("response too long (%d bytes)", len(trimmed))
	}

	token := isoCandidatePattern.FindString(trimmed)
	if token == "" {
		return time.Time{}, fmt.Errorf("no ISO-8601 date in response")
	}

	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, token, c.zone); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable date token %q", token)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
