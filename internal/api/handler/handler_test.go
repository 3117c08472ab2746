package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tempohq/tempo/internal/api"
	"github.com/tempohq/tempo/internal/api/handler"
	"github.com/tempohq/tempo/internal/config"
	"github.com/tempohq/tempo/internal/demo"
	"github.com/tempohq/tempo/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	err := demo.Seed(context.Background(), demo.Repositories{
		Users:       store.Users(),
		Orgs:        store.Organizations(),
		Tasks:       store.Tasks(),
		Audit:       store.Audit(),
		Connections: store.Connections(),
	}, time.Now())
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{RequestTimeout: time.Minute},
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-with-32-chars!!",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			SessionTTL:      24 * time.Hour,
		},
	}

	router, err := api.NewRouter(api.Dependencies{
		Config:      cfg,
		Users:       store.Users(),
		Orgs:        store.Organizations(),
		Tasks:       store.Tasks(),
		Audit:       store.Audit(),
		Connections: store.Connections(),
		Sessions:    store.Sessions(),
	})
	require.NoError(t, err)

	return router
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	}
	return rec, envelope
}

func loginAs(t *testing.T, router http.Handler, email string) string {
	t.Helper()

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email})
	require.Equal(t, http.StatusOK, rec.Code)

	data := envelope["data"].(map[string]any)
	tokens := data["tokens"].(map[string]any)
	return tokens["access_token"].(string)
}

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	handler.HealthCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, true, response["success"])

	data, ok := response["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", data["status"])
}

func TestLoginFlow(t *testing.T) {
	router := newTestServer(t)

	// unknown user
	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "nobody@tempo.app"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// bad input
	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// login, then inspect the principal
	token := loginAs(t, router, "alice@tempo.app")

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := envelope["data"].(map[string]any)
	assert.Equal(t, "org_1", data["active_org_id"])
	user := data["user"].(map[string]any)
	assert.Equal(t, "user_1", user["id"])
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestServer(t)

	rec, _ := doJSON(t, router, http.MethodGet, "/api/v1/tasks/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/tasks/", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutEndsSession(t *testing.T) {
	router := newTestServer(t)
	token := loginAs(t, router, "alice@tempo.app")

	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// the token is still signed correctly but its session is gone
	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTaskDecideFlow(t *testing.T) {
	router := newTestServer(t)
	token := loginAs(t, router, "bob@tempo.app")

	// pending tasks in org_1
	rec, envelope := doJSON(t, router, http.MethodGet, "/api/v1/tasks/?status=pending", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tasks := envelope["data"].([]any)
	require.Len(t, tasks, 2)

	// reject one with a comment
	rec, envelope = doJSON(t, router, http.MethodPost, "/api/v1/tasks/task_1/decide", token, map[string]string{
		"decision": "rejected",
		"comment":  "Budget exceeded",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	task := envelope["data"].(map[string]any)
	assert.Equal(t, "rejected", task["status"])
	history := task["history"].([]any)
	require.Len(t, history, 2)
	last := history[1].(map[string]any)
	assert.Equal(t, "rejected", last["action"])
	assert.Equal(t, "Budget exceeded", last["comment"])
	actor := last["user"].(map[string]any)
	assert.Equal(t, "user_2", actor["id"])

	// deciding again conflicts
	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/tasks/task_1/decide", token, map[string]string{
		"decision": "approved",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// a task from another org looks absent
	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/tasks/task_5/decide", token, map[string]string{
		"decision": "approved",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// invalid decision value
	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/tasks/task_4/decide", token, map[string]string{
		"decision": "maybe",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// the audit trail picked the rejection up
	rec, envelope = doJSON(t, router, http.MethodGet, "/api/v1/audit", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := envelope["data"].([]any)
	first := entries[0].(map[string]any)
	assert.Equal(t, "task.rejected", first["action"])
}

func TestOrgActivate(t *testing.T) {
	router := newTestServer(t)

	// bob is a member of all three orgs
	token := loginAs(t, router, "bob@tempo.app")

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/orgs/org_2/activate", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "org_2", data["active_org_id"])

	// task listing follows the switch
	rec, envelope = doJSON(t, router, http.MethodGet, "/api/v1/tasks/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tasks := envelope["data"].([]any)
	require.Len(t, tasks, 1)
	assert.Equal(t, "task_3", tasks[0].(map[string]any)["id"])

	// charlie may not enter org_2
	charlieToken := loginAs(t, router, "charlie@tempo.app")
	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/orgs/org_2/activate", charlieToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestConnectionLifecycle(t *testing.T) {
	router := newTestServer(t)
	token := loginAs(t, router, "alice@tempo.app")

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/v1/connections/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, envelope["data"].([]any), 2)

	rec, envelope = doJSON(t, router, http.MethodPost, "/api/v1/connections/", token, map[string]string{
		"display_name": "Acme Dev",
		"target":       "localhost:7233",
		"client_type":  "self_hosted",
		"api_key":      "tmprl-key-123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := envelope["data"].(map[string]any)
	connID := created["id"].(string)

	// the encrypted key is never serialized
	_, exposed := created["api_key_encrypted"]
	assert.False(t, exposed)

	rec, _ = doJSON(t, router, http.MethodDelete, "/api/v1/connections/"+connID, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = doJSON(t, router, http.MethodDelete, "/api/v1/connections/"+connID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// invalid client type
	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/connections/", token, map[string]string{
		"display_name": "Bad",
		"target":       "localhost:7233",
		"client_type":  "mainframe",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
