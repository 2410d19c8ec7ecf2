// Package relay implements the pass-through HTTP forwarder that lets a
// browser page reach the cross-origin vendor API. It accepts a JSON
// envelope naming the target, forwards it when the target matches the
// configured upstream, and mirrors the upstream status and body.
package relay

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Config wires a relay handler.
type Config struct {
	// Upstream is the only target the relay will forward to.
	Upstream string
	// AllowedOrigins is the CORS allow-list. The first entry is used
	// when a caller's origin is not on the list.
	AllowedOrigins []string
	Logger         *slog.Logger
}

type envelope struct {
	URL     string            `json:"url"`
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers"`
	Body    json.RawMessage   `json:"body"`
}

// Handler forwards envelopes to the configured upstream.
type Handler struct {
	upstream string
	origins  []string
	client   *http.Client
	logger   *slog.Logger
}

// New creates a relay handler.
func New(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		upstream: cfg.Upstream,
		origins:  cfg.AllowedOrigins,
		client:   &http.Client{},
		logger:   logger,
	}
}

// Router mounts the relay at POST /proxy.
func (h *Handler) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Options("/proxy", h.handlePreflight)
	r.Post("/proxy", h.handleProxy)
	return r
}

func (h *Handler) handlePreflight(w http.ResponseWriter, r *http.Request) {
	h.writeCORS(w, r)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleProxy(w http.ResponseWriter, r *http.Request) {
	h.writeCORS(w, r)

	var env envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		h.logger.Warn("bad envelope", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Static allow-list of one: anything else is rejected, never forwarded.
	if env.URL != h.upstream {
		h.logger.Warn("rejected target", "url", env.URL)
		writeJSONError(w, http.StatusBadRequest, "invalid target url")
		return
	}

	method := env.Method
	if method == "" {
		method = http.MethodPost
	}

	req, err := http.NewRequestWithContext(r.Context(), method, env.URL, strings.NewReader(string(env.Body)))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid forward request")
		return
	}
	for name, value := range env.Headers {
		req.Header.Set(name, value)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		h.logger.Warn("forward failed", "error", err)
		writeJSONError(w, http.StatusBadGateway, "upstream unreachable")
		return
	}
	defer resp.Body.Close()

	// Mirror the upstream status and body.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		h.logger.Warn("copy response failed", "error", err)
	}
}

func (h *Handler) writeCORS(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	allowed := ""
	for _, o := range h.origins {
		if o == origin {
			allowed = origin
			break
		}
	}
	if allowed == "" && len(h.origins) > 0 {
		allowed = h.origins[0]
	}
	if allowed != "" {
		w.Header().Set("Access-Control-Allow-Origin", allowed)
	}
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "86400")
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
