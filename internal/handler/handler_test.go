package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sylo/internal/domain"
	"sylo/internal/domain/models/projects"
	"sylo/internal/domain/models/prompts"
	"sylo/internal/httputil"
	"sylo/internal/repository/memory"
	authSvc "sylo/internal/service/auth"
	projectsService "sylo/internal/service/projects"
	promptsService "sylo/internal/service/prompts"
)

type testServer struct {
	handler http.Handler
	store   *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	tx := store.TransactionManager()

	projectSvc := projectsService.NewProjectService(store.Projects(), store.Tasks(), store.Dependencies(), tx, logger)
	taskSvc := projectsService.NewTaskService(store.Projects(), store.Tasks(), store.Dependencies(), tx, logger)
	depSvc := projectsService.NewDependencyService(taskSvc, store.Tasks(), store.Dependencies(), logger)
	authorizer := authSvc.NewOwnerBasedAuthorizer(store.Projects(), store.Tasks())
	promptSvc := promptsService.NewPromptService(store.Prompts(), logger)

	mux := http.NewServeMux()
	RegisterRoutes(mux, Handlers{
		Projects:     NewProjectHandler(projectSvc, authorizer, logger),
		Tasks:        NewTaskHandler(taskSvc, logger),
		Dependencies: NewDependencyHandler(depSvc, logger),
		Insights:     NewInsightHandler(projectsService.NewInsightService(taskSvc, logger), logger),
		Prompts:      NewPromptHandler(promptSvc, logger),
	})

	// X-Test-User stands in for the auth middleware
	withUser := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := r.Header.Get("X-Test-User"); u != "" {
			r = httputil.WithUserID(r, u)
		}
		mux.ServeHTTP(w, r)
	})
	return &testServer{handler: withUser, store: store}
}

func (s *testServer) do(t *testing.T, user, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestProjectRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, "alice", "POST", "/api/projects", map[string]string{"title": "Launch"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	p := decode[projects.Project](t, rec)
	assert.Equal(t, projects.ProjectStatusActive, p.Status)
	assert.Equal(t, "alice", p.UserID)

	rec = s.do(t, "alice", "GET", "/api/projects/"+p.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, "bob", "GET", "/api/projects/"+p.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, "bob", "GET", "/api/projects/"+p.ID+"/access", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, "alice", "GET", "/api/projects/"+p.ID+"/access", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, "alice", "PATCH", "/api/projects/"+p.ID, map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, projects.ProjectStatusCompleted, decode[projects.Project](t, rec).Status)

	rec = s.do(t, "alice", "GET", "/api/projects", nil)
	assert.Len(t, decode[[]projects.Project](t, rec), 1)

	rec = s.do(t, "alice", "DELETE", "/api/projects/"+p.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[map[string]interface{}](t, rec)
	assert.Equal(t, `Project with ID "`+p.ID+`" successfully deleted.`, res["message"])
}

func TestValidationErrors(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, "alice", "POST", "/api/projects", map[string]string{"title": "P"})
	require.Equal(t, http.StatusCreated, rec.Code)
	p := decode[projects.Project](t, rec)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{name: "blank title", method: "POST", path: "/api/projects", body: map[string]string{"title": "   "}},
		{name: "bad status", method: "POST", path: "/api/projects", body: map[string]string{"title": "x", "status": "paused"}},
		{name: "unknown field", method: "POST", path: "/api/projects", body: map[string]string{"title": "x", "owner": "bob"}},
		{name: "malformed json", method: "POST", path: "/api/projects", body: "{"},
		{name: "bad project id", method: "GET", path: "/api/projects/123", body: nil},
		{name: "bad priority", method: "POST", path: "/api/projects/" + p.ID + "/tasks", body: map[string]string{"title": "t", "priority": "whenever"}},
		{name: "risk score out of range", method: "POST", path: "/api/projects/" + p.ID + "/tasks", body: map[string]interface{}{"title": "t", "ai_risk_score": 101}},
		{name: "bad deadline", method: "POST", path: "/api/projects/" + p.ID + "/tasks", body: map[string]string{"title": "t", "deadline": "soon"}},
		{name: "bad dependency id", method: "POST", path: "/api/projects/" + p.ID + "/tasks/" + p.ID + "/dependencies", body: map[string]string{"depends_on_task_id": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, "alice", tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestMissingUser(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, "", "GET", "/api/projects", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTaskAndDependencyRoutes(t *testing.T) {
	s := newTestServer(t)

	p := decode[projects.Project](t, s.do(t, "alice", "POST", "/api/projects", map[string]string{"title": "P"}))
	base := "/api/projects/" + p.ID + "/tasks"

	rec := s.do(t, "alice", "POST", base, map[string]string{"title": "T1", "status": "blocked"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	t1 := decode[projects.Task](t, rec)
	assert.Equal(t, projects.TaskStatusBlocked, t1.Status)
	assert.Equal(t, projects.TaskPriorityMedium, t1.Priority)

	t2 := decode[projects.Task](t, s.do(t, "alice", "POST", base, map[string]string{"title": "T2", "deadline": "2026-01-31"}))
	require.NotNil(t, t2.Deadline)

	// blocked is only accepted on create
	rec = s.do(t, "alice", "PATCH", base+"/"+t1.ID, map[string]string{"status": "blocked"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, "alice", "PATCH", base+"/"+t2.ID, map[string]interface{}{"deadline": nil, "title": "T2b"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[projects.Task](t, rec)
	assert.Nil(t, updated.Deadline)
	assert.Equal(t, "T2b", updated.Title)

	depPath := base + "/" + t2.ID + "/dependencies"
	rec = s.do(t, "alice", "POST", depPath, map[string]string{"depends_on_task_id": t1.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	first := decode[projects.TaskDependency](t, rec)

	rec = s.do(t, "alice", "POST", depPath, map[string]string{"depends_on_task_id": t1.ID})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, first.ID, decode[projects.TaskDependency](t, rec).ID)

	rec = s.do(t, "alice", "GET", depPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	prereqs := decode[[]projects.Task](t, rec)
	require.Len(t, prereqs, 1)
	assert.Equal(t, t1.ID, prereqs[0].ID)

	rec = s.do(t, "bob", "GET", depPath, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, "alice", "DELETE", depPath+"/"+t1.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["message"], "successfully deleted")

	rec = s.do(t, "alice", "GET", depPath, nil)
	assert.Equal(t, "[]", string(bytes.TrimSpace(rec.Body.Bytes())))

	rec = s.do(t, "alice", "DELETE", base+"/"+t1.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, "alice", "GET", base+"/"+t1.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPromptRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, "alice", "POST", "/api/prompts", map[string]interface{}{"title": "Standup", "content": "Summarize", "tags": []string{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "tags cannot be empty")

	rec = s.do(t, "alice", "POST", "/api/prompts", map[string]interface{}{"title": "Standup", "content": "Summarize", "tags": []string{"daily"}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	p := decode[prompts.Prompt](t, rec)
	assert.Equal(t, "alice", p.UserID)

	rec = s.do(t, "bob", "GET", "/api/prompts/"+p.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, "alice", "PATCH", "/api/prompts/"+p.ID, map[string]interface{}{"tags": []string{"daily", "team"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"daily", "team"}, decode[prompts.Prompt](t, rec).Tags)

	rec = s.do(t, "alice", "GET", "/api/prompts", nil)
	assert.Len(t, decode[[]prompts.Prompt](t, rec), 1)
	rec = s.do(t, "bob", "GET", "/api/prompts", nil)
	assert.Empty(t, decode[[]prompts.Prompt](t, rec))

	rec = s.do(t, "alice", "DELETE", "/api/prompts/"+p.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[map[string]interface{}](t, rec)
	assert.Equal(t, `Prompt with ID "`+p.ID+`" successfully deleted.`, res["message"])
	assert.NotNil(t, res["deletedPrompt"])

	rec = s.do(t, "alice", "DELETE", "/api/prompts/"+p.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInsightRoutes(t *testing.T) {
	s := newTestServer(t)
	p := decode[projects.Project](t, s.do(t, "alice", "POST", "/api/projects", map[string]string{"title": "P"}))
	base := "/api/projects/" + p.ID

	rec := s.do(t, "alice", "POST", base+"/tasks", map[string]string{"title": "late", "status": "in_progress", "deadline": "2020-01-01"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	late := decode[projects.Task](t, rec)
	rec = s.do(t, "alice", "POST", base+"/tasks", map[string]string{"title": "open"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, "alice", "GET", base+"/risk-assessment", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	risk := decode[map[string]interface{}](t, rec)
	assert.Equal(t, "high", risk["overallRiskLevel"])
	assert.EqualValues(t, 50, risk["riskScore"])
	assert.EqualValues(t, 1, risk["delayedTaskCount"])
	assert.EqualValues(t, 2, risk["totalTaskCount"])

	rec = s.do(t, "alice", "GET", base+"/status-suggestions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	suggestions := decode[[]map[string]interface{}](t, rec)
	require.Len(t, suggestions, 1)
	assert.Equal(t, late.ID, suggestions[0]["taskId"])
	assert.Equal(t, "blocked", suggestions[0]["suggestedStatus"])

	rec = s.do(t, "bob", "GET", base+"/risk-assessment", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    int
		wantLog bool
	}{
		{name: "validation", err: domain.ErrValidation, want: 400},
		{name: "unauthorized", err: domain.ErrUnauthorized, want: 401},
		{name: "forbidden", err: domain.ErrForbidden, want: 403},
		{name: "not found", err: &domain.NotFoundError{Message: "gone"}, want: 404},
		{name: "conflict", err: &domain.ConflictError{Message: "dup", ResourceID: "x"}, want: 409},
		{name: "update failed", err: domain.ErrUpdateFailed, want: 500, wantLog: true},
		{name: "delete inconsistency", err: domain.ErrDeleteInconsistency, want: 500, wantLog: true},
		{name: "store", err: domain.NewStoreError("insert task", errors.New("conn reset")), want: 500, wantLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&logs, nil))

			rec := httptest.NewRecorder()
			handleError(rec, httptest.NewRequest(http.MethodDelete, "/api/projects/p1", nil), logger, tt.err)

			assert.Equal(t, tt.want, rec.Code)
			if tt.wantLog {
				assert.NotContains(t, rec.Body.String(), "conn reset")
				assert.Contains(t, logs.String(), `"msg":"request failed"`)
				assert.Contains(t, logs.String(), `"path":"/api/projects/p1"`)
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}
