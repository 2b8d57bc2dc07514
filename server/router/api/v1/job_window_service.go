package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/callwave/server/scheduling/window"
	"github.com/hrygo/callwave/store"
)

// JobWindowPayload is the wire shape of a job window.
type JobWindowPayload struct {
	Name      string  `json:"name"`
	Enabled   bool    `json:"enabled"`
	StartTime string  `json:"startTime"`
	EndTime   *string `json:"endTime,omitempty"`
	UpdatedTs int64   `json:"updatedTs,omitempty"`
}

func toPayload(jw *store.JobWindow) *JobWindowPayload {
	return &JobWindowPayload{
		Name:      jw.Name,
		Enabled:   jw.Enabled,
		StartTime: jw.StartTime,
		EndTime:   jw.EndTime,
		UpdatedTs: jw.UpdatedTs,
	}
}

func (s *APIV1Service) listJobWindows(c echo.Context) error {
	windows, err := s.Store.ListJobWindows(c.Request().Context(), nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list job windows").SetInternal(err)
	}

	payload := make([]*JobWindowPayload, 0, len(windows))
	for _, jw := range windows {
		payload = append(payload, toPayload(jw))
	}
	return c.JSON(http.StatusOK, payload)
}

func (s *APIV1Service) getJobWindow(c echo.Context) error {
	name := c.Param("name")
	if !window.JobName(name).Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown job name")
	}

	jw, err := s.Store.GetJobWindow(c.Request().Context(), name)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to get job window").SetInternal(err)
	}
	if jw == nil {
		return echo.NewHTTPError(http.StatusNotFound, "job window not configured")
	}
	return c.JSON(http.StatusOK, toPayload(jw))
}

func (s *APIV1Service) upsertJobWindow(c echo.Context) error {
	name := c.Param("name")
	if !window.JobName(name).Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown job name")
	}

	payload := &JobWindowPayload{}
	if err := c.Bind(payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}

	upsert := &store.JobWindow{
		Name:      name,
		Enabled:   payload.Enabled,
		StartTime: payload.StartTime,
		EndTime:   payload.EndTime,
	}

	// Store.UpsertJobWindow validates; a malformed time of day comes back
	// here as a 400 rather than surfacing on a dispatcher tick.
	result, err := s.Store.UpsertJobWindow(c.Request().Context(), upsert)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, toPayload(result))
}
