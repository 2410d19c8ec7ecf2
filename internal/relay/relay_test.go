package relay

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newRelay(t *testing.T, upstream string) http.Handler {
	t.Helper()
	return New(Config{
		Upstream:       upstream,
		AllowedOrigins: []string{"http://localhost:8000", "https://workmate.example.com"},
	}).Router()
}

func postProxy(handler http.Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/proxy", strings.NewReader(body))
	for name, value := range headers {
		req.Header.Set(name, value)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestForwardsToUpstream(t *testing.T) {
	var gotAuth, gotBody string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer upstream.Close()

	handler := newRelay(t, upstream.URL)
	rec := postProxy(handler, `{
		"url": "`+upstream.URL+`",
		"method": "POST",
		"headers": {"Authorization": "Bearer sk-test", "Content-Type": "application/json"},
		"body": {"model": "deepseek-chat"}
	}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "choices")
	require.Equal(t, "Bearer sk-test", gotAuth)
	require.JSONEq(t, `{"model":"deepseek-chat"}`, gotBody)
}

func TestMirrorsUpstreamStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer upstream.Close()

	handler := newRelay(t, upstream.URL)
	rec := postProxy(handler, `{"url":"`+upstream.URL+`","method":"POST","body":{}}`, nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "bad key")
}

func TestRejectsUnconfiguredTarget(t *testing.T) {
	called := false
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer upstream.Close()

	handler := newRelay(t, upstream.URL)
	rec := postProxy(handler, `{"url":"https://evil.example.com/steal","method":"POST","body":{}}`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, called, "must never forward to an unlisted target")
}

func TestRejectsBadJSON(t *testing.T) {
	handler := newRelay(t, "https://api.example.com")
	rec := postProxy(handler, `not json`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	handler := newRelay(t, "https://api.example.com")

	req := httptest.NewRequest(http.MethodGet, "/proxy", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUnknownPath(t *testing.T) {
	handler := newRelay(t, "https://api.example.com")

	req := httptest.NewRequest(http.MethodPost, "/other", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPreflight(t *testing.T) {
	handler := newRelay(t, "https://api.example.com")

	req := httptest.NewRequest(http.MethodOptions, "/proxy", nil)
	req.Header.Set("Origin", "https://workmate.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://workmate.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
}

func TestUnlistedOriginFallsBackToFirst(t *testing.T) {
	handler := newRelay(t, "https://api.example.com")

	req := httptest.NewRequest(http.MethodOptions, "/proxy", nil)
	req.Header.Set("Origin", "https://somewhere-else.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, "http://localhost:8000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUpstreamUnreachable(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := upstream.URL
	upstream.Close()

	handler := newRelay(t, url)
	rec := postProxy(handler, `{"url":"`+url+`","method":"POST","body":{}}`, nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)
}
