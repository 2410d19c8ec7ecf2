package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sfreitag/workmate/internal/storage"
)

type stubComposer struct{}

func (stubComposer) Compose(context.Context) string { return "\n\n## Workspace data\n(empty)" }

func newTestKV(t *testing.T) storage.KV {
	t.Helper()
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestGateway(t *testing.T, kv storage.KV, relayURL, vendorURL string) *Gateway {
	t.Helper()
	creds := NewCredentials(kv)
	require.NoError(t, creds.Set(context.Background(), "sk-test"))
	return NewGateway(GatewayConfig{
		Composer:    stubComposer{},
		History:     LoadHistory(context.Background(), kv, nil),
		Credentials: creds,
		Client:      NewClient(relayURL, vendorURL, nil),
		Model:       "deepseek-chat",
		Temperature: 0.7,
		MaxTokens:   1000,
	})
}

// closedServerURL returns a URL that refuses connections.
func closedServerURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()
	return url
}

func completionBody(content string) string {
	return `{"choices":[{"message":{"content":"` + content + `"}}]}`
}

func TestSendSuccessViaRelay(t *testing.T) {
	const vendorURL = "https://api.example.com/v1/chat/completions"

	var envelope relayEnvelope
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&envelope))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody("hello there")))
	}))
	defer relay.Close()

	g := newTestGateway(t, newTestKV(t), relay.URL, vendorURL)

	reply, err := g.Send(context.Background(), "what is due this week?")
	require.NoError(t, err)
	require.Equal(t, "hello there", reply)

	// The envelope targets the vendor endpoint and carries the credential.
	require.Equal(t, vendorURL, envelope.URL)
	require.Equal(t, http.MethodPost, envelope.Method)
	require.Equal(t, "Bearer sk-test", envelope.Headers["Authorization"])

	// System message first, combining prompt and workspace context.
	require.Equal(t, "deepseek-chat", envelope.Body.Model)
	require.Equal(t, RoleSystem, envelope.Body.Messages[0].Role)
	require.Contains(t, envelope.Body.Messages[0].Content, "## Workspace data")
	require.Equal(t, "what is due this week?", envelope.Body.Messages[1].Content)

	// One round trip adds exactly two turns, assistant last.
	turns := g.History()
	require.Len(t, turns, 2)
	require.Equal(t, RoleUser, turns[0].Role)
	require.Equal(t, RoleAssistant, turns[1].Role)
}

func TestSendFallsBackToDirect(t *testing.T) {
	vendor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Write([]byte(completionBody("direct")))
	}))
	defer vendor.Close()

	g := newTestGateway(t, newTestKV(t), closedServerURL(t), vendor.URL)

	reply, err := g.Send(context.Background(), "hi")
	require.NoError(t, err)
	require.Equal(t, "direct", reply)
	require.Len(t, g.History(), 2)
}

func TestSendAllTransportsFailRollsBack(t *testing.T) {
	g := newTestGateway(t, newTestKV(t), closedServerURL(t), closedServerURL(t))

	_, err := g.Send(context.Background(), "hi")
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)

	// The user turn appended before the call is rolled back.
	require.Empty(t, g.History())
}

func TestSendUpstreamErrorKeepsUserTurn(t *testing.T) {
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limited"))
	}))
	defer relay.Close()

	g := newTestGateway(t, newTestKV(t), relay.URL, "http://unused.invalid")

	_, err := g.Send(context.Background(), "hi")
	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	require.Equal(t, http.StatusTooManyRequests, upstreamErr.StatusCode)
	require.Contains(t, upstreamErr.Body, "rate limited")

	// No rollback on a bad status, matching the original behavior.
	turns := g.History()
	require.Len(t, turns, 1)
	require.Equal(t, RoleUser, turns[0].Role)
}

func TestSendMalformedResponse(t *testing.T) {
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer relay.Close()

	g := newTestGateway(t, newTestKV(t), relay.URL, "http://unused.invalid")

	_, err := g.Send(context.Background(), "hi")
	require.ErrorIs(t, err, ErrMalformedResponse)
	require.Len(t, g.History(), 1)
}

func TestSendWithoutAPIKey(t *testing.T) {
	kv := newTestKV(t)
	g := NewGateway(GatewayConfig{
		Composer:    stubComposer{},
		History:     LoadHistory(context.Background(), kv, nil),
		Credentials: NewCredentials(kv),
		Client:      NewClient("", "http://unused.invalid", nil),
	})

	_, err := g.Send(context.Background(), "hi")
	require.ErrorIs(t, err, ErrAPIKeyMissing)
	require.Empty(t, g.History())
}

func TestHistoryRoundTrip(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	h := LoadHistory(ctx, kv, nil)
	h.Append(RoleUser, "question")
	h.Append(RoleAssistant, "answer")
	h.Save(ctx)

	reloaded := LoadHistory(ctx, kv, nil)
	require.Equal(t, 2, reloaded.Len())
	turns := reloaded.Turns()
	require.Equal(t, h.Turns()[0].ID, turns[0].ID)
	require.Equal(t, RoleUser, turns[0].Role)
	require.Equal(t, "question", turns[0].Content)
	require.Equal(t, RoleAssistant, turns[1].Role)
}

func TestHistoryClear(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	h := LoadHistory(ctx, kv, nil)
	h.Append(RoleUser, "question")
	h.Save(ctx)
	h.Clear(ctx)

	require.Zero(t, h.Len())
	require.Zero(t, LoadHistory(ctx, kv, nil).Len())
}

func TestCredentialsValidation(t *testing.T) {
	creds := NewCredentials(newTestKV(t))
	ctx := context.Background()

	require.ErrorIs(t, creds.Set(ctx, ""), ErrInvalidAPIKey)
	require.ErrorIs(t, creds.Set(ctx, "not-a-key"), ErrInvalidAPIKey)

	require.NoError(t, creds.Set(ctx, "  sk-abc123  "))
	key, err := creds.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "sk-abc123", key)
}

func TestPromptLoader(t *testing.T) {
	missing := newPromptLoader("/does/not/exist.txt", nil)
	require.Equal(t, fallbackSystemPrompt, missing.load())

	path := t.TempDir() + "/prompt.txt"
	require.NoError(t, writeFile(path, "You are a test assistant."))
	loader := newPromptLoader(path, nil)
	require.Equal(t, "You are a test assistant.", loader.load())

	// The file is read once; later edits are not picked up.
	require.NoError(t, writeFile(path, "changed"))
	require.Equal(t, "You are a test assistant.", loader.load())
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
