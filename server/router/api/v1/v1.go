// Package v1 exposes the admin API: job-window configuration, free-text
// schedule resolution, health and metrics.
package v1

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hrygo/callwave/internal/profile"
	"github.com/hrygo/callwave/server/scheduling/resolve"
	"github.com/hrygo/callwave/store"
)

const requestIDHeader = "X-Request-Id"

// APIV1Service bundles the admin API handlers.
type APIV1Service struct {
	Profile  *profile.Profile
	Store    *store.Store
	Resolver *resolve.Resolver

	logger *slog.Logger
}

// NewAPIV1Service creates the admin API service.
func NewAPIV1Service(profile *profile.Profile, st *store.Store, resolver *resolve.Resolver) *APIV1Service {
	return &APIV1Service{
		Profile:  profile,
		Store:    st,
		Resolver: resolver,
		logger:   slog.Default(),
	}
}

// Register attaches routes and middleware to the echo instance.
func (s *APIV1Service) Register(e *echo.Echo) {
	e.Use(s.requestLogger)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	g := e.Group("/api/v1")
	g.GET("/windows", s.listJobWindows)
	g.GET("/windows/:name", s.getJobWindow)
	g.PUT("/windows/:name", s.upsertJobWindow)
	g.POST("/schedule/resolve", s.resolveSchedule)
}

// requestLogger tags each request with a short ID and logs its outcome.
func (s *APIV1Service) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = shortuuid.New()
		}
		c.Response().Header().Set(requestIDHeader, requestID)

		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		s.logger.Info("api request",
			"request_id", requestID,
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration_ms", time.Since(start).Milliseconds())
		return err
	}
}
