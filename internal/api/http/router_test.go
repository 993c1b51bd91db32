package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-service/internal/api/http/handlers"
	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/events"
	"github.com/spec-kit/hr-service/internal/observability"
	"github.com/spec-kit/hr-service/internal/persistence"
	"github.com/spec-kit/hr-service/internal/repository/memory"
	"github.com/spec-kit/hr-service/internal/service"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := zap.NewNop()
	store := memory.NewStore()
	dispatcher := events.NewInMemoryDispatcher(logger)
	locker := service.NewKeyedLocker()

	directory := service.NewDirectoryService(service.DirectoryDependencies{
		UserRepo: store.Users, Dispatcher: dispatcher, Locker: locker, Logger: logger,
	})
	leaves := service.NewLeaveService(service.LeaveDependencies{
		LeaveRepo: store.Leaves, UserRepo: store.Users, Dispatcher: dispatcher, Locker: locker, Logger: logger,
	})
	timesheets := service.NewTimesheetService(service.TimesheetDependencies{
		TimesheetRepo: store.Timesheets, UserRepo: store.Users, Dispatcher: dispatcher, Locker: locker, Logger: logger,
	})
	reports := service.NewReportService(service.ReportDependencies{
		UserRepo: store.Users, LeaveRepo: store.Leaves, TimesheetRepo: store.Timesheets, Logger: logger,
	})
	_, err := directory.Seed(context.Background(), service.DefaultUsers())
	require.NoError(t, err)

	tokens := auth.NewTokenManager("test-secret", 60)
	metrics := observability.NewMetrics()

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("hr-service", "test", &persistence.Backend{Name: "memory"}, metrics),
		Users:          handlers.NewUsersHandler(service.NewAuthService(directory, tokens, logger), directory),
		Leave:          handlers.NewLeaveHandler(leaves, directory),
		Timesheets:     handlers.NewTimesheetsHandler(timesheets, directory),
		Manager:        handlers.NewManagerHandler(directory, leaves, timesheets, reports),
		HR:             handlers.NewHRHandler(reports),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, directory),
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	status, env := call(t, app, fiber.MethodPost, "/auth/login", "", map[string]string{"email": email})
	require.Equal(t, fiber.StatusOK, status)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t)

	status, _ := call(t, app, fiber.MethodGet, "/health/live", "", nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = call(t, app, fiber.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, env := call(t, app, fiber.MethodGet, "/metrics", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	snap := decode[observability.MetricsSnapshot](t, env)
	assert.NotEmpty(t, snap.Requests)
}

func TestAuthentication(t *testing.T) {
	app := newTestApp(t)

	status, env := call(t, app, fiber.MethodGet, "/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	status, env = call(t, app, fiber.MethodPost, "/auth/login", "", map[string]string{"email": "nobody@company.com"})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	status, env = call(t, app, fiber.MethodPost, "/auth/login", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Equal(t, "email", env.Error.Details["email"])

	token := login(t, app, "alice@company.com")
	status, env = call(t, app, fiber.MethodGet, "/me", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	me := decode[map[string]any](t, env)
	assert.Equal(t, "u1", me["id"])
	assert.Equal(t, "EMPLOYEE", me["role"])
}

func TestRoleGuards(t *testing.T) {
	app := newTestApp(t)
	alice := login(t, app, "alice@company.com")
	bob := login(t, app, "bob@company.com")

	status, env := call(t, app, fiber.MethodGet, "/manager/team", alice, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	status, _ = call(t, app, fiber.MethodGet, "/hr/summary", bob, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, env = call(t, app, fiber.MethodGet, "/manager/team", bob, nil)
	require.Equal(t, fiber.StatusOK, status)
	team := decode[map[string]any](t, env)
	assert.EqualValues(t, 2, team["size"])

	status, _ = call(t, app, fiber.MethodGet, "/leave/requests?employee_id=u4", alice, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestEmployeeQueryScope(t *testing.T) {
	app := newTestApp(t)
	bob := login(t, app, "bob@company.com")
	sarah := login(t, app, "sarah@company.com")
	charlie := login(t, app, "charlie@company.com")

	for _, path := range []string{"/leave/requests", "/leave/balances", "/timesheets"} {
		status, _ := call(t, app, fiber.MethodGet, path+"?employee_id=u1", bob, nil)
		assert.Equal(t, fiber.StatusOK, status, path)

		status, env := call(t, app, fiber.MethodGet, path+"?employee_id=u1", sarah, nil)
		assert.Equal(t, fiber.StatusForbidden, status, path)
		require.NotNil(t, env.Error)
		assert.Equal(t, "FORBIDDEN", env.Error.Code)

		status, _ = call(t, app, fiber.MethodGet, path+"?employee_id=u1", charlie, nil)
		assert.Equal(t, fiber.StatusOK, status, path)
	}

	status, env := call(t, app, fiber.MethodGet, "/timesheets?employee_id=nobody", bob, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestValidationDetailsUseJSONNames(t *testing.T) {
	app := newTestApp(t)
	alice := login(t, app, "alice@company.com")

	status, env := call(t, app, fiber.MethodPost, "/leave/requests", alice, map[string]any{
		"type":       "ANNUAL",
		"start_date": "02/06/2025",
	})
	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "datetime", env.Error.Details["start_date"])
	assert.Equal(t, "required", env.Error.Details["end_date"])
}

func TestLeaveLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)
	alice := login(t, app, "alice@company.com")
	bob := login(t, app, "bob@company.com")
	sarah := login(t, app, "sarah@company.com")

	status, env := call(t, app, fiber.MethodPost, "/leave/requests", alice, map[string]any{
		"type":       "ANNUAL",
		"start_date": "2025-06-02",
		"end_date":   "2025-06-03",
		"reason":     "family trip",
	})
	require.Equal(t, fiber.StatusCreated, status)
	created := decode[map[string]any](t, env)
	id := created["id"].(string)
	assert.EqualValues(t, 2, created["days"])
	assert.Equal(t, "SUBMITTED", created["status"])
	assert.Equal(t, "u2", created["manager_id"])

	status, env = call(t, app, fiber.MethodPost, "/leave/requests", alice, map[string]any{
		"type":       "ANNUAL",
		"start_date": "2025-06-03",
		"end_date":   "2025-06-04",
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "DATE_OVERLAP", env.Error.Code)

	status, env = call(t, app, fiber.MethodGet, "/manager/leave/pending", bob, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env), 1)

	status, _ = call(t, app, fiber.MethodPost, "/manager/leave/"+id+"/review", sarah, map[string]string{"status": "APPROVED"})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, env = call(t, app, fiber.MethodPost, "/manager/leave/"+id+"/review", bob, map[string]string{"status": "APPROVED"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "APPROVED", decode[map[string]any](t, env)["status"])

	status, env = call(t, app, fiber.MethodGet, "/leave/balances", alice, nil)
	require.Equal(t, fiber.StatusOK, status)
	balances := decode[[]map[string]any](t, env)
	require.Len(t, balances, 3)
	assert.Equal(t, "ANNUAL", balances[0]["type"])
	assert.EqualValues(t, 18, balances[0]["remaining"])

	status, env = call(t, app, fiber.MethodDelete, "/leave/requests/"+id, alice, nil)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INVALID_STATE", env.Error.Code)
}

func TestTimesheetLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)
	alice := login(t, app, "alice@company.com")
	david := login(t, app, "david@company.com")
	bob := login(t, app, "bob@company.com")
	charlie := login(t, app, "charlie@company.com")

	status, env := call(t, app, fiber.MethodPost, "/timesheets", alice, map[string]string{"month": "June"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	status, env = call(t, app, fiber.MethodPost, "/timesheets", alice, map[string]string{"month": "2025-06"})
	require.Equal(t, fiber.StatusCreated, status)
	id := decode[map[string]any](t, env)["id"].(string)

	status, _ = call(t, app, fiber.MethodPut, "/timesheets/"+id+"/entries", david, map[string]string{
		"date": "2025-06-02", "check_in": "09:00", "check_out": "17:00",
	})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, env = call(t, app, fiber.MethodPut, "/timesheets/"+id+"/entries", alice, map[string]string{
		"date": "2025-06-02", "check_in": "09:00", "check_out": "17:30", "description": "planning",
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 8.5, decode[map[string]any](t, env)["total_hours"])

	status, env = call(t, app, fiber.MethodPost, "/timesheets/"+id+"/submit", alice, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "SUBMITTED", decode[map[string]any](t, env)["status"])

	status, env = call(t, app, fiber.MethodGet, "/manager/timesheets/pending", bob, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env), 1)

	status, env = call(t, app, fiber.MethodPost, "/manager/timesheets/"+id+"/review", bob, map[string]string{"status": "REJECTED"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	status, env = call(t, app, fiber.MethodPost, "/manager/timesheets/"+id+"/review", bob, map[string]string{"status": "APPROVED"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "APPROVED", decode[map[string]any](t, env)["status"])

	status, _ = call(t, app, fiber.MethodGet, "/timesheets/"+id, david, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	status, _ = call(t, app, fiber.MethodGet, "/timesheets/"+id, charlie, nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, env = call(t, app, fiber.MethodGet, "/hr/summary", charlie, nil)
	require.Equal(t, fiber.StatusOK, status)
	summary := decode[map[string]any](t, env)
	assert.EqualValues(t, 1, summary["timesheets"])
	assert.EqualValues(t, 8.5, summary["total_hours"])
}

func TestJoinRequestOverHTTP(t *testing.T) {
	app := newTestApp(t)
	alice := login(t, app, "alice@company.com")
	sarah := login(t, app, "sarah@company.com")
	bob := login(t, app, "bob@company.com")

	status, env := call(t, app, fiber.MethodPost, "/me/manager", alice, map[string]string{"manager_id": "u5"})
	require.Equal(t, fiber.StatusAccepted, status)
	assert.Equal(t, "PENDING", decode[map[string]any](t, env)["manager_approval_status"])

	status, _ = call(t, app, fiber.MethodPost, "/manager/join-requests/u1", bob, map[string]bool{"approved": true})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, env = call(t, app, fiber.MethodGet, "/manager/join-requests", sarah, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env), 1)

	status, env = call(t, app, fiber.MethodPost, "/manager/join-requests/u1", sarah, map[string]bool{"approved": true})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "APPROVED", decode[map[string]any](t, env)["manager_approval_status"])
}
