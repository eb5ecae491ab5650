package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasktrail/tasktrail/authenticator"
	authmiddleware "github.com/tasktrail/tasktrail/middleware"
	"github.com/tasktrail/tasktrail/controllers"
	"github.com/tasktrail/tasktrail/database"
	"github.com/tasktrail/tasktrail/models"
	"github.com/tasktrail/tasktrail/repositories"
	"github.com/tasktrail/tasktrail/services"
)

const (
	testUsername = "admin"
	testPassword = "password123"
)

// Prometheus metrics register globally, so they are shared across tests.
var testMetrics = authmiddleware.NewMetrics()

// newTestServer builds the full router over a throwaway database.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repos := repositories.NewRepositories(db)
	srvs := services.NewServices(repos, logger)
	ctrl := controllers.NewControllers(srvs)
	verifier := authenticator.NewBasicVerifier(testUsername, testPassword)

	server := httptest.NewServer(setupRouter(ctrl, verifier, testMetrics, logger))
	t.Cleanup(server.Close)

	return server
}

// do issues an authenticated JSON request and decodes the response
// body into out when out is non-nil.
func do(t *testing.T, server *httptest.Server, method, path string, body interface{}, out interface{}) *http.Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, server.URL+path, reqBody)
	require.NoError(t, err)
	req.SetBasicAuth(testUsername, testPassword)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp
}

func TestUnauthenticatedRequestsAreRejected(t *testing.T) {
	server := newTestServer(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/tasks"},
		{http.MethodPost, "/tasks"},
		{http.MethodPut, "/tasks/1"},
		{http.MethodDelete, "/tasks/1"},
		{http.MethodGet, "/logs"},
	}

	for _, route := range routes {
		req, err := http.NewRequest(route.method, server.URL+route.path, nil)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
		assert.Equal(t, "Unauthorized access. Please provide valid credentials.", payload["error"])
	}

	// Wrong password is rejected the same way
	req, err := http.NewRequest(http.MethodGet, server.URL+"/tasks", nil)
	require.NoError(t, err)
	req.SetBasicAuth(testUsername, "wrong")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPreflightSkipsAuth(t *testing.T) {
	server := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/tasks", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "authorization")
}

func TestUnmatchedRoutesReturnJSON404(t *testing.T) {
	server := newTestServer(t)

	var payload map[string]string
	resp := do(t, server, http.MethodGet, "/nope", nil, &payload)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not found", payload["error"])

	// Known path, unsupported method
	resp = do(t, server, http.MethodPatch, "/tasks", nil, &payload)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not found", payload["error"])
}

func TestTaskLifecycle(t *testing.T) {
	server := newTestServer(t)

	// Create with markup in the title; it must come back sanitized
	var created models.Task
	resp := do(t, server, http.MethodPost, "/tasks", map[string]string{
		"title":       "<b>Ship release</b>",
		"description": "  Cut the 1.4 branch  ",
	}, &created)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Positive(t, created.ID)
	assert.Equal(t, "Ship release", created.Title)
	assert.Equal(t, "Cut the 1.4 branch", created.Description)
	assert.False(t, created.CreatedAt.IsZero())

	// Listing returns it
	var page models.TaskPage
	resp = do(t, server, http.MethodGet, "/tasks", nil, &page)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, page.Tasks, 1)
	assert.Equal(t, created.ID, page.Tasks[0].ID)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 1, page.TotalPages)

	// Update only the description
	var updated models.Task
	resp = do(t, server, http.MethodPut, fmt.Sprintf("/tasks/%d", created.ID), map[string]string{
		"description": "Cut the 1.5 branch",
	}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ship release", updated.Title)
	assert.Equal(t, "Cut the 1.5 branch", updated.Description)

	// Updating with identical values writes nothing new
	resp = do(t, server, http.MethodPut, fmt.Sprintf("/tasks/%d", created.ID), map[string]string{
		"title":       "Ship release",
		"description": "Cut the 1.5 branch",
	}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Delete
	var deleted map[string]bool
	resp = do(t, server, http.MethodDelete, fmt.Sprintf("/tasks/%d", created.ID), nil, &deleted)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, deleted["success"])

	resp = do(t, server, http.MethodGet, "/tasks", nil, &page)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, page.Tasks)
	assert.Equal(t, 0, page.Total)

	// The trail has exactly create, update, delete - newest first, and
	// the no-op update produced nothing
	var logs models.AuditLogPage
	resp = do(t, server, http.MethodGet, "/logs", nil, &logs)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, logs.Logs, 3)
	assert.Equal(t, 3, logs.Total)

	assert.Equal(t, models.ActionDeleteTask, logs.Logs[0].Action)
	assert.Nil(t, logs.Logs[0].UpdatedContent)
	require.NotNil(t, logs.Logs[0].TaskID)
	assert.Equal(t, created.ID, *logs.Logs[0].TaskID)

	assert.Equal(t, models.ActionUpdateTask, logs.Logs[1].Action)
	assert.Equal(t, models.FieldChanges{"description": "Cut the 1.5 branch"}, logs.Logs[1].UpdatedContent)

	assert.Equal(t, models.ActionCreateTask, logs.Logs[2].Action)
	assert.Equal(t, models.FieldChanges{
		"title":       "Ship release",
		"description": "Cut the 1.4 branch",
	}, logs.Logs[2].UpdatedContent)
}

func TestValidationFailures(t *testing.T) {
	server := newTestServer(t)

	var payload map[string]string
	resp := do(t, server, http.MethodPost, "/tasks", map[string]string{
		"title":       "",
		"description": "fine",
	}, &payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Title must be between 1 and 100 characters", payload["error"])

	// A title that is only markup sanitizes to empty and fails too
	resp = do(t, server, http.MethodPost, "/tasks", map[string]string{
		"title":       "<script></script>",
		"description": "fine",
	}, &payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Title must be between 1 and 100 characters", payload["error"])

	// Update of a missing task is a 404 before any validation write
	resp = do(t, server, http.MethodPut, "/tasks/9999", map[string]string{
		"title": "anything",
	}, &payload)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Task not found", payload["error"])

	// None of the failures above left an audit entry
	var logs models.AuditLogPage
	resp = do(t, server, http.MethodGet, "/logs", nil, &logs)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, logs.Total)
}

func TestDeleteOfUnknownIDSucceedsAndIsRecorded(t *testing.T) {
	server := newTestServer(t)

	var deleted map[string]bool
	resp := do(t, server, http.MethodDelete, "/tasks/12345", nil, &deleted)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, deleted["success"])

	var logs models.AuditLogPage
	resp = do(t, server, http.MethodGet, "/logs", nil, &logs)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, logs.Logs, 1)
	assert.Equal(t, models.ActionDeleteTask, logs.Logs[0].Action)
	require.NotNil(t, logs.Logs[0].TaskID)
	assert.Equal(t, int64(12345), *logs.Logs[0].TaskID)
}

func TestSearchAndPagination(t *testing.T) {
	server := newTestServer(t)

	for i := 1; i <= 12; i++ {
		title := fmt.Sprintf("Task number %d", i)
		description := "routine work"
		if i%4 == 0 {
			description = "special Foo work"
		}
		resp := do(t, server, http.MethodPost, "/tasks", map[string]string{
			"title":       title,
			"description": description,
		}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	// Page 1 of 12 with limit 5
	var page models.TaskPage
	resp := do(t, server, http.MethodGet, "/tasks?page=1&limit=5", nil, &page)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, page.Tasks, 5)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, "Task number 12", page.Tasks[0].Title)

	// Page 3 holds the remainder
	resp = do(t, server, http.MethodGet, "/tasks?page=3&limit=5", nil, &page)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, page.Tasks, 2)
	assert.Equal(t, 3, page.TotalPages)

	// Page past the end is empty, not an error
	resp = do(t, server, http.MethodGet, "/tasks?page=4&limit=5", nil, &page)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, page.Tasks, 0)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 3, page.TotalPages)

	// Case-insensitive search with a filtered total
	resp = do(t, server, http.MethodGet, "/tasks?search=foo", nil, &page)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, page.Tasks, 3)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.TotalPages)

	// Defaults apply when parameters are missing or junk
	resp = do(t, server, http.MethodGet, "/tasks?page=abc&limit=", nil, &page)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, page.Tasks, 5)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 5, page.Limit)
}

func TestAPIPrefixIsAccepted(t *testing.T) {
	server := newTestServer(t)

	var created models.Task
	resp := do(t, server, http.MethodPost, "/api/tasks", map[string]string{
		"title":       "Prefixed",
		"description": "created through the /api mount",
	}, &created)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Positive(t, created.ID)

	var page models.TaskPage
	resp = do(t, server, http.MethodGet, "/api/tasks", nil, &page)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, page.Tasks, 1)

	var logs models.AuditLogPage
	resp = do(t, server, http.MethodGet, "/api/logs", nil, &logs)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, logs.Total)
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
