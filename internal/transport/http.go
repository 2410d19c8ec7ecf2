// Package transport exposes the store and the conversation gateway over
// HTTP.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sfreitag/workmate/internal/chat"
	"github.com/sfreitag/workmate/internal/tracker"
)

// Gateway is the conversation surface the API needs.
type Gateway interface {
	Send(ctx context.Context, message string) (string, error)
	History() []chat.Turn
	ClearHistory(ctx context.Context)
}

// Server wires the HTTP handlers.
type Server struct {
	store   *tracker.Store
	gateway Gateway
	creds   *chat.Credentials
	logger  *slog.Logger
}

// NewRouter builds the API router.
func NewRouter(store *tracker.Store, gateway Gateway, creds *chat.Credentials, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{store: store, gateway: gateway, creds: creds, logger: logger}

	r := chi.NewRouter()
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/members", func(r chi.Router) {
			r.Get("/", s.listMembers)
			r.Post("/", s.addMember)
			r.Get("/{id}", s.getMember)
			r.Patch("/{id}", s.updateMember)
			r.Delete("/{id}", s.deleteMember)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.listProjects)
			r.Post("/", s.addProject)
			r.Get("/{id}", s.getProject)
			r.Patch("/{id}", s.updateProject)
			r.Delete("/{id}", s.deleteProject)
			r.Get("/{id}/progress", s.projectProgress)
		})

		r.Route("/requirements", func(r chi.Router) {
			r.Get("/", s.listRequirements)
			r.Post("/", s.addRequirement)
			r.Get("/{id}", s.getRequirement)
			r.Patch("/{id}", s.updateRequirement)
			r.Delete("/{id}", s.deleteRequirement)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.listTasks)
			r.Post("/", s.addTask)
			r.Get("/upcoming", s.upcomingTasks)
			r.Get("/{id}", s.getTask)
			r.Patch("/{id}", s.updateTask)
			r.Delete("/{id}", s.deleteTask)
		})

		r.Get("/workload", s.teamWorkload)

		r.Route("/chat", func(r chi.Router) {
			r.Post("/", s.sendChat)
			r.Get("/history", s.chatHistory)
			r.Delete("/history", s.clearChat)
		})

		r.Put("/settings/api-key", s.setAPIKey)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// --- Members ---

func (s *Server) listMembers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListMembers(r.Context()))
}

func (s *Server) getMember(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.GetMember(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) addMember(w http.ResponseWriter, r *http.Request) {
	var m tracker.TeamMember
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("invalid request body"))
		return
	}
	writeJSON(w, http.StatusCreated, s.store.AddMember(r.Context(), m))
}

func (s *Server) updateMember(w http.ResponseWriter, r *http.Request) {
	var upd tracker.TeamMemberUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("invalid request body"))
		return
	}
	m, err := s.store.UpdateMember(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) deleteMember(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteMember(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Projects ---

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := tracker.ProjectFilter{
		Owner:      q.Get("owner"),
		TeamMember: q.Get("team"),
	}
	for _, status := range splitCSV(q.Get("status")) {
		filter.Statuses = append(filter.Statuses, tracker.ProjectStatus(status))
	}
	writeJSON(w, http.StatusOK, s.store.ListProjects(r.Context(), filter))
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.GetProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) addProject(w http.ResponseWriter, r *http.Request) {
	var p tracker.Project
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("invalid request body"))
		return
	}
	writeJSON(w, http.StatusCreated, s.store.AddProject(r.Context(), p))
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	var upd tracker.ProjectUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("invalid request body"))
		return
	}
	p, err := s.store.UpdateProject(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) projectProgress(w http.ResponseWriter, r *http.Request) {
	report, err := s.store.ProjectProgress(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// --- Requirements ---

func (s *Server) listRequirements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := tracker.RequirementFilter{
		ProjectID: q.Get("project_id"),
		Priority:  tracker.Priority(q.Get("priority")),
		Owner:     q.Get("owner"),
		Assignee:  q.Get("assignee"),
	}
	for _, status := range splitCSV(q.Get("status")) {
		filter.Statuses = append(filter.Statuses, tracker.ProjectStatus(status))
	}
	writeJSON(w, http.StatusOK, s.store.ListRequirements(r.Context(), filter))
}

func (s *Server) getRequirement(w http.ResponseWriter, r *http.Request) {
	req, err := s.store.GetRequirement(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) addRequirement(w http.ResponseWriter, r *http.Request) {
	var req tracker.Requirement
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("invalid request body"))
		return
	}
	writeJSON(w, http.StatusCreated, s.store.AddRequirement(r.Context(), req))
}

func (s *Server) updateRequirement(w http.ResponseWriter, r *http.Request) {
	var upd tracker.RequirementUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("invalid request body"))
		return
	}
	req, err := s.store.UpdateRequirement(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) deleteRequirement(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteRequirement(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Tasks ---

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := tracker.TaskFilter{
		ProjectID:     q.Get("project_id"),
		RequirementID: q.Get("requirement_id"),
		Priority:      tracker.Priority(q.Get("priority")),
		Owner:         q.Get("owner"),
		Assignee:      q.Get("assignee"),
	}
	for _, status := range splitCSV(q.Get("status")) {
		filter.Statuses = append(filter.Statuses, tracker.TaskStatus(status))
	}

	if q.Get("todo") == "true" {
		writeJSON(w, http.StatusOK, s.store.TodoTasks(r.Context(), filter))
		return
	}
	writeJSON(w, http.StatusOK, s.store.ListTasks(r.Context(), filter))
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.store.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) addTask(w http.ResponseWriter, r *http.Request) {
	var task tracker.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("invalid request body"))
		return
	}
	writeJSON(w, http.StatusCreated, s.store.AddTask(r.Context(), task))
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var upd tracker.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("invalid request body"))
		return
	}
	task, err := s.store.UpdateTask(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) upcomingTasks(w http.ResponseWriter, r *http.Request) {
	days := tracker.DefaultUpcomingWindow
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, errBody("days must be a positive integer"))
			return
		}
		days = parsed
	}
	writeJSON(w, http.StatusOK, s.store.UpcomingTasks(r.Context(), days))
}

func (s *Server) teamWorkload(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.TeamWorkload(r.Context()))
}

// --- Chat ---

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) sendChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errBody("message is required"))
		return
	}

	reply, err := s.gateway.Send(r.Context(), req.Message)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

func (s *Server) chatHistory(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.gateway.History())
}

func (s *Server) clearChat(w http.ResponseWriter, r *http.Request) {
	s.gateway.ClearHistory(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// --- Settings ---

type apiKeyRequest struct {
	APIKey string `json:"api_key"`
}

func (s *Server) setAPIKey(w http.ResponseWriter, r *http.Request) {
	var req apiKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("invalid request body"))
		return
	}
	if err := s.creds.Set(r.Context(), req.APIKey); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Helpers ---

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var upstreamErr *chat.UpstreamError
	var transportErr *chat.TransportError

	switch {
	case errors.Is(err, tracker.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errBody(err.Error()))
	case errors.Is(err, chat.ErrInvalidAPIKey), errors.Is(err, chat.ErrAPIKeyMissing):
		writeJSON(w, http.StatusBadRequest, errBody(err.Error()))
	case errors.As(err, &upstreamErr):
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":           "upstream error",
			"upstream_status": upstreamErr.StatusCode,
			"upstream_body":   upstreamErr.Body,
		})
	case errors.As(err, &transportErr):
		writeJSON(w, http.StatusServiceUnavailable, errBody(err.Error()))
	case errors.Is(err, chat.ErrMalformedResponse):
		writeJSON(w, http.StatusBadGateway, errBody(err.Error()))
	default:
		s.logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errBody("internal error"))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errBody(message string) map[string]string {
	return map[string]string{"error": message}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
