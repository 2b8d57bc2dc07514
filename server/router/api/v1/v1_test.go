package v1

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/callwave/internal/profile"
	"github.com/hrygo/callwave/server/scheduling/resolve"
	"github.com/hrygo/callwave/store"
)

type fakeDriver struct {
	rows map[string]*store.JobWindow
}

func (d *fakeDriver) GetDB() *sql.DB                  { return nil }
func (d *fakeDriver) Close() error                    { return nil }
func (d *fakeDriver) Migrate(_ context.Context) error { return nil }

func (d *fakeDriver) UpsertJobWindow(_ context.Context, upsert *store.JobWindow) (*store.JobWindow, error) {
	d.rows[upsert.Name] = upsert
	return upsert, nil
}

func (d *fakeDriver) GetJobWindow(_ context.Context, name string) (*store.JobWindow, error) {
	return d.rows[name], nil
}

func (d *fakeDriver) ListJobWindows(_ context.Context, _ *store.FindJobWindow) ([]*store.JobWindow, error) {
	var result []*store.JobWindow
	for _, row := range d.rows {
		result = append(result, row)
	}
	return result, nil
}

func newTestService(t *testing.T) (*echo.Echo, *fakeDriver) {
	t.Helper()

	driver := &fakeDriver{rows: map[string]*store.JobWindow{}}
	st := store.New(driver, &profile.Profile{Mode: "dev"})

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	resolver, err := resolve.New(loc, 10)
	require.NoError(t, err)

	e := echo.New()
	svc := NewAPIV1Service(&profile.Profile{Mode: "dev"}, st, resolver)
	svc.Register(e)
	return e, driver
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	e, _ := newTestService(t)

	rec := doJSON(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestUpsertJobWindow(t *testing.T) {
	e, driver := newTestService(t)

	rec := doJSON(e, http.MethodPut, "/api/v1/windows/ScheduledCalls",
		`{"enabled": true, "startTime": "13:00", "endTime": "22:00"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload JobWindowPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "ScheduledCalls", payload.Name)
	assert.True(t, payload.Enabled)
	assert.Equal(t, "13:00", payload.StartTime)

	stored := driver.rows["ScheduledCalls"]
	require.NotNil(t, stored)
	assert.True(t, stored.Enabled)
}

func TestUpsertJobWindow_MalformedTime(t *testing.T) {
	e, _ := newTestService(t)

	rec := doJSON(e, http.MethodPut, "/api/v1/windows/ScheduledCalls",
		`{"enabled": true, "startTime": "9pm"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpsertJobWindow_UnknownName(t *testing.T) {
	e, _ := newTestService(t)

	rec := doJSON(e, http.MethodPut, "/api/v1/windows/NightlyReport",
		`{"enabled": true, "startTime": "13:00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpsertJobWindow_EndBeforeStart(t *testing.T) {
	e, _ := newTestService(t)

	rec := doJSON(e, http.MethodPut, "/api/v1/windows/ScheduledCalls",
		`{"enabled": true, "startTime": "22:00", "endTime": "13:00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetJobWindow_NotConfigured(t *testing.T) {
	e, _ := newTestService(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/windows/ReminderCall", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetJobWindow(t *testing.T) {
	e, driver := newTestService(t)
	driver.rows["ReminderCall"] = &store.JobWindow{
		Name:      "ReminderCall",
		Enabled:   true,
		StartTime: "13:00",
	}

	rec := doJSON(e, http.MethodGet, "/api/v1/windows/ReminderCall", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload JobWindowPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "ReminderCall", payload.Name)
	assert.Nil(t, payload.EndTime)
}

func TestListJobWindows(t *testing.T) {
	e, driver := newTestService(t)
	driver.rows["ScheduledCalls"] = &store.JobWindow{Name: "ScheduledCalls", StartTime: "13:00"}

	rec := doJSON(e, http.MethodGet, "/api/v1/windows", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload []*JobWindowPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Len(t, payload, 1)
}

func TestResolveSchedule_Pattern(t *testing.T) {
	e, _ := newTestService(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/schedule/resolve",
		`{"phrase": "after 5 days", "now": "2024-03-01T15:00:00Z"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ResolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Scheduled)
	assert.Equal(t, "2024-03-06T15:00:00Z", resp.At)
	assert.Equal(t, "pattern", resp.Tier)
}

func TestResolveSchedule_NoSchedule(t *testing.T) {
	e, _ := newTestService(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/schedule/resolve",
		`{"phrase": "whenever works", "now": "2024-03-01T15:00:00Z"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ResolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Scheduled)
	assert.Empty(t, resp.At)
}

func TestResolveSchedule_BadNow(t *testing.T) {
	e, _ := newTestService(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/schedule/resolve",
		`{"phrase": "next monday", "now": "yesterday"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
