package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Gudini108/tasktracker/pkg/auth"
	"github.com/Gudini108/tasktracker/pkg/observability"
	"github.com/Gudini108/tasktracker/pkg/tasks"
)

// memStore is an in-memory backend implementing auth.AccountStore and
// tasks.Store for handler tests, with the same uniqueness semantics as the
// SQL backend.
type memStore struct {
	nextAccountID int64
	nextTaskID    int64
	accounts      map[string]*auth.Account
	tasks         map[int64]*tasks.Task
}

func newMemStore() *memStore {
	return &memStore{
		nextAccountID: 1,
		nextTaskID:    1,
		accounts:      make(map[string]*auth.Account),
		tasks:         make(map[int64]*tasks.Task),
	}
}

func (m *memStore) GetAccountByUsername(_ context.Context, username string) (*auth.Account, error) {
	account, ok := m.accounts[username]
	if !ok {
		return nil, nil
	}
	copied := *account
	return &copied, nil
}

func (m *memStore) ListAccounts(context.Context) ([]auth.Account, error) {
	accounts := make([]auth.Account, 0, len(m.accounts))
	for id := int64(1); id < m.nextAccountID; id++ {
		for _, a := range m.accounts {
			if a.ID == id {
				accounts = append(accounts, *a)
			}
		}
	}
	return accounts, nil
}

func (m *memStore) CreateAccount(_ context.Context, account *auth.Account) (*auth.Account, error) {
	if _, exists := m.accounts[account.Username]; exists {
		return nil, auth.ErrDuplicateUser
	}
	created := *account
	created.ID = m.nextAccountID
	m.nextAccountID++
	m.accounts[created.Username] = &created
	copied := created
	return &copied, nil
}

func (m *memStore) GetTask(_ context.Context, id int64) (*tasks.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, nil
	}
	copied := *task
	return &copied, nil
}

func (m *memStore) CreateTask(_ context.Context, task *tasks.Task) (*tasks.Task, error) {
	created := *task
	created.ID = m.nextTaskID
	m.nextTaskID++
	m.tasks[created.ID] = &created
	copied := created
	return &copied, nil
}

func (m *memStore) UpdateTask(_ context.Context, task *tasks.Task) error {
	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

func (m *memStore) DeleteTask(_ context.Context, id int64) error {
	delete(m.tasks, id)
	return nil
}

func (m *memStore) ListTasks(_ context.Context, filter tasks.Filter, page tasks.PageParams) (*tasks.Page, error) {
	matched := make([]tasks.Task, 0)
	for id := int64(1); id < m.nextTaskID; id++ {
		task, ok := m.tasks[id]
		if !ok {
			continue
		}
		if filter.OwnerID != nil && task.Owner.ID != *filter.OwnerID {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		matched = append(matched, *task)
	}

	total := int64(len(matched))
	start := (page.Number - 1) * page.Size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Size
	if end > len(matched) {
		end = len(matched)
	}
	return &tasks.Page{Items: matched[start:end], Total: total, Page: page.Number, Size: page.Size}, nil
}

// newTestServer builds a full server over an in-memory store.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := newMemStore()
	authSvc := auth.NewService(store, auth.NewPasswordHasher(4), auth.NewTokenService([]byte("test-signing-key"), time.Minute))
	taskSvc := tasks.NewService(store)
	logger := observability.NewLogger(observability.ErrorLevel, io.Discard)
	return NewServer(authSvc, taskSvc, logger, nil)
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, server *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

// signupAndLogin registers an account and returns its bearer token.
func signupAndLogin(t *testing.T, server *Server, username, password string) string {
	t.Helper()

	rec := doJSON(t, server, "POST", "/api/v1/signup", "", map[string]string{
		"username":   username,
		"first_name": username,
		"password":   password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, server, "POST", "/api/v1/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}
