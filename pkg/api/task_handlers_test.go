package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gudini108/tasktracker/pkg/tasks"
)

func TestTasks_RequireAuth(t *testing.T) {
	server := newTestServer(t)

	for _, tt := range []struct{ method, path string }{
		{"POST", "/api/v1/tasks"},
		{"GET", "/api/v1/tasks"},
		{"GET", "/api/v1/tasks/1"},
		{"PATCH", "/api/v1/tasks/1"},
		{"DELETE", "/api/v1/tasks/1"},
		{"GET", "/api/v1/users"},
	} {
		rec := doJSON(t, server, tt.method, tt.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tt.method, tt.path)
	}
}

func TestCreateTask(t *testing.T) {
	server := newTestServer(t)
	token := signupAndLogin(t, server, "bob", "secret1")

	rec := doJSON(t, server, "POST", "/api/v1/tasks", token, map[string]string{
		"title": "write report",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp messageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, `Task "write report" created!`, resp.Message)
}

func TestCreateTask_EmptyTitle(t *testing.T) {
	server := newTestServer(t)
	token := signupAndLogin(t, server, "bob", "secret1")

	rec := doJSON(t, server, "POST", "/api/v1/tasks", token, map[string]string{"title": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTask(t *testing.T) {
	server := newTestServer(t)
	token := signupAndLogin(t, server, "bob", "secret1")

	rec := doJSON(t, server, "POST", "/api/v1/tasks", token, map[string]string{"title": "write report"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, server, "GET", "/api/v1/tasks/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var task tasks.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.Equal(t, "write report", task.Title)
	assert.Equal(t, tasks.StatusNew, task.Status)
	assert.Equal(t, "bob", task.Owner.Username)
}

func TestGetTask_HidesForeignTasks(t *testing.T) {
	server := newTestServer(t)
	ownerToken := signupAndLogin(t, server, "alice", "secret1")
	otherToken := signupAndLogin(t, server, "bob", "secret2")

	rec := doJSON(t, server, "POST", "/api/v1/tasks", ownerToken, map[string]string{"title": "private"})
	require.Equal(t, http.StatusCreated, rec.Code)

	// A foreign task and a missing task are both 404.
	rec = doJSON(t, server, "GET", "/api/v1/tasks/1", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, server, "GET", "/api/v1/tasks/999", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTask(t *testing.T) {
	server := newTestServer(t)
	token := signupAndLogin(t, server, "bob", "secret1")

	rec := doJSON(t, server, "POST", "/api/v1/tasks", token, map[string]string{"title": "write report"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, server, "PATCH", "/api/v1/tasks/1", token, map[string]string{
		"status": string(tasks.StatusCompleted),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, server, "GET", "/api/v1/tasks/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var task tasks.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.Equal(t, tasks.StatusCompleted, task.Status)
	assert.Equal(t, "write report", task.Title, "unset fields stay untouched")

	rec = doJSON(t, server, "PATCH", "/api/v1/tasks/1", token, map[string]string{"status": "Bogus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateTask_Foreign(t *testing.T) {
	server := newTestServer(t)
	ownerToken := signupAndLogin(t, server, "alice", "secret1")
	otherToken := signupAndLogin(t, server, "bob", "secret2")

	rec := doJSON(t, server, "POST", "/api/v1/tasks", ownerToken, map[string]string{"title": "private"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, server, "PATCH", "/api/v1/tasks/1", otherToken, map[string]string{"title": "hijacked"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, server, "PATCH", "/api/v1/tasks/999", otherToken, map[string]string{"title": "hijacked"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTask(t *testing.T) {
	server := newTestServer(t)
	ownerToken := signupAndLogin(t, server, "alice", "secret1")
	otherToken := signupAndLogin(t, server, "bob", "secret2")

	rec := doJSON(t, server, "POST", "/api/v1/tasks", ownerToken, map[string]string{"title": "private"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, server, "DELETE", "/api/v1/tasks/1", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, server, "DELETE", "/api/v1/tasks/1", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, server, "GET", "/api/v1/tasks/1", ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListTasks(t *testing.T) {
	server := newTestServer(t)
	aliceToken := signupAndLogin(t, server, "alice", "secret1")
	bobToken := signupAndLogin(t, server, "bob", "secret2")

	for i := 0; i < 3; i++ {
		rec := doJSON(t, server, "POST", "/api/v1/tasks", aliceToken, map[string]string{
			"title": fmt.Sprintf("task %d", i),
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec := doJSON(t, server, "POST", "/api/v1/tasks", bobToken, map[string]string{
		"title":  "done task",
		"status": string(tasks.StatusCompleted),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var page tasks.Page

	rec = doJSON(t, server, "GET", "/api/v1/tasks?page=1&page_size=2", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(4), page.Total)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Size)

	rec = doJSON(t, server, "GET", "/api/v1/tasks?user_id=1", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(3), page.Total)

	rec = doJSON(t, server, "GET", "/api/v1/tasks?status=Completed", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Total)
}

func TestListTasks_BadParams(t *testing.T) {
	server := newTestServer(t)
	token := signupAndLogin(t, server, "bob", "secret1")

	for _, query := range []string{"?status=Bogus", "?page=abc", "?page_size=abc", "?user_id=abc"} {
		rec := doJSON(t, server, "GET", "/api/v1/tasks"+query, token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %s", query)
	}
}

func TestListUsers(t *testing.T) {
	server := newTestServer(t)
	token := signupAndLogin(t, server, "alice", "secret1")
	signupAndLogin(t, server, "bob", "secret2")

	rec := doJSON(t, server, "GET", "/api/v1/users", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []userOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}
