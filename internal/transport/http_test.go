package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sfreitag/workmate/internal/chat"
	"github.com/sfreitag/workmate/internal/storage"
	"github.com/sfreitag/workmate/internal/tracker"
)

type stubGateway struct {
	reply   string
	err     error
	history []chat.Turn
	cleared bool
}

func (g *stubGateway) Send(_ context.Context, message string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.history = append(g.history,
		chat.Turn{Role: chat.RoleUser, Content: message},
		chat.Turn{Role: chat.RoleAssistant, Content: g.reply},
	)
	return g.reply, nil
}

func (g *stubGateway) History() []chat.Turn { return g.history }

func (g *stubGateway) ClearHistory(context.Context) {
	g.cleared = true
	g.history = nil
}

func newTestRouter(t *testing.T, gateway Gateway) http.Handler {
	t.Helper()
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := tracker.NewStore(context.Background(), db, nil)
	return NewRouter(store, gateway, chat.NewCredentials(db), nil)
}

func do(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealth(t *testing.T) {
	handler := newTestRouter(t, &stubGateway{})
	rec := do(handler, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListSeedProjects(t *testing.T) {
	handler := newTestRouter(t, &stubGateway{})

	rec := do(handler, http.MethodGet, "/api/projects", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var projects []tracker.Project
	decodeInto(t, rec, &projects)
	require.Len(t, projects, 2)
	require.Equal(t, "p1", projects[0].ID)
}

func TestProjectFilterByStatus(t *testing.T) {
	handler := newTestRouter(t, &stubGateway{})

	rec := do(handler, http.MethodGet, "/api/projects?status=planned", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var projects []tracker.Project
	decodeInto(t, rec, &projects)
	require.Len(t, projects, 1)
	require.Equal(t, "p2", projects[0].ID)
}

func TestCreateAndGetTask(t *testing.T) {
	handler := newTestRouter(t, &stubGateway{})

	rec := do(handler, http.MethodPost, "/api/tasks", `{
		"project_id": "p1",
		"requirement_id": "r1",
		"name": "Write release notes",
		"priority": "low",
		"status": "not-started"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created tracker.Task
	decodeInto(t, rec, &created)
	require.Equal(t, "t6", created.ID)

	rec = do(handler, http.MethodGet, "/api/tasks/t6", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched tracker.Task
	decodeInto(t, rec, &fetched)
	require.Equal(t, "Write release notes", fetched.Name)
}

func TestGetMissingReturns404(t *testing.T) {
	handler := newTestRouter(t, &stubGateway{})
	rec := do(handler, http.MethodGet, "/api/tasks/t999", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTaskStatus(t *testing.T) {
	handler := newTestRouter(t, &stubGateway{})

	rec := do(handler, http.MethodPatch, "/api/tasks/t1", `{"status":"completed","progress":100}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated tracker.Task
	decodeInto(t, rec, &updated)
	require.Equal(t, tracker.TaskCompleted, updated.Status)
	require.Equal(t, 100, updated.Progress)
	// Untouched fields survive the merge.
	require.Equal(t, "p1", updated.ProjectID)
}

func TestDeleteProjectCascades(t *testing.T) {
	handler := newTestRouter(t, &stubGateway{})

	rec := do(handler, http.MethodDelete, "/api/projects/p1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(handler, http.MethodGet, "/api/tasks?project_id=p1", "")
	var tasks []tracker.Task
	decodeInto(t, rec, &tasks)
	require.Empty(t, tasks)
}

func TestProjectProgress(t *testing.T) {
	handler := newTestRouter(t, &stubGateway{})

	rec := do(handler, http.MethodGet, "/api/projects/p1/progress", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var report tracker.ProgressReport
	decodeInto(t, rec, &report)
	require.Equal(t, 5, report.Tasks.Total)
	require.Equal(t, 1, report.Tasks.Completed)
	require.InDelta(t, 10.0, report.Progress, 0.001)
}

func TestTeamWorkload(t *testing.T) {
	handler := newTestRouter(t, &stubGateway{})

	rec := do(handler, http.MethodGet, "/api/workload", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var workloads []tracker.MemberWorkload
	decodeInto(t, rec, &workloads)
	require.Len(t, workloads, 4)
}

func TestUpcomingRejectsBadDays(t *testing.T) {
	handler := newTestRouter(t, &stubGateway{})

	rec := do(handler, http.MethodGet, "/api/tasks/upcoming?days=zero", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(handler, http.MethodGet, "/api/tasks/upcoming?days=-1", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatRoundTrip(t *testing.T) {
	gateway := &stubGateway{reply: "On it."}
	handler := newTestRouter(t, gateway)

	rec := do(handler, http.MethodPost, "/api/chat", `{"message":"What is due this week?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chatResponse
	decodeInto(t, rec, &resp)
	require.Equal(t, "On it.", resp.Reply)

	rec = do(handler, http.MethodGet, "/api/chat/history", "")
	var turns []chat.Turn
	decodeInto(t, rec, &turns)
	require.Len(t, turns, 2)

	rec = do(handler, http.MethodDelete, "/api/chat/history", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.True(t, gateway.cleared)
}

func TestChatRequiresMessage(t *testing.T) {
	handler := newTestRouter(t, &stubGateway{})
	rec := do(handler, http.MethodPost, "/api/chat", `{"message":"  "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"missing key", chat.ErrAPIKeyMissing, http.StatusBadRequest},
		{"upstream", &chat.UpstreamError{StatusCode: 429, Body: "rate limited"}, http.StatusBadGateway},
		{"transport", &chat.TransportError{}, http.StatusServiceUnavailable},
		{"malformed", chat.ErrMalformedResponse, http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTestRouter(t, &stubGateway{err: tc.err})
			rec := do(handler, http.MethodPost, "/api/chat", `{"message":"hi"}`)
			require.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestSetAPIKey(t *testing.T) {
	handler := newTestRouter(t, &stubGateway{})

	rec := do(handler, http.MethodPut, "/api/settings/api-key", `{"api_key":"sk-abc123"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(handler, http.MethodPut, "/api/settings/api-key", `{"api_key":"bogus"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
