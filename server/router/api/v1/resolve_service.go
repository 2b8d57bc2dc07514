package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/callwave/internal/observability"
)

// ResolveRequest carries a free-text rescheduling phrase. Now is optional
// (RFC 3339); it exists so operators can replay historical transcripts.
type ResolveRequest struct {
	Phrase string `json:"phrase"`
	Now    string `json:"now,omitempty"`
}

// ResolveResponse is the resolution outcome. Scheduled false with an empty
// At is the explicit "no schedule" result, not an error.
type ResolveResponse struct {
	Scheduled bool   `json:"scheduled"`
	At        string `json:"at,omitempty"`
	Tier      string `json:"tier,omitempty"`
}

func (s *APIV1Service) resolveSchedule(c echo.Context) error {
	request := &ResolveRequest{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}

	now := time.Now().UTC()
	if request.Now != "" {
		parsed, err := time.Parse(time.RFC3339, request.Now)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "now must be RFC 3339")
		}
		now = parsed.UTC()
	}

	start := time.Now()
	schedule := s.Resolver.Resolve(c.Request().Context(), request.Phrase, now)
	observability.ResolveDuration.Observe(time.Since(start).Seconds())

	if schedule == nil {
		observability.ResolveRequests.WithLabelValues("none").Inc()
		return c.JSON(http.StatusOK, &ResolveResponse{Scheduled: false})
	}

	observability.ResolveRequests.WithLabelValues(string(schedule.Tier)).Inc()
	return c.JSON(http.StatusOK, &ResolveResponse{
		Scheduled: true,
		At:        schedule.At.Format(time.RFC3339),
		Tier:      string(schedule.Tier),
	})
}
