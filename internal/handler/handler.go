package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/synergysphere/synergyboard/internal/handler/dto"
	"github.com/synergysphere/synergyboard/internal/middleware"
	"github.com/synergysphere/synergyboard/internal/service"
	"github.com/synergysphere/synergyboard/internal/static"
	"github.com/synergysphere/synergyboard/internal/store"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	store          *store.Store
	taskService    *service.TaskService
	authMiddleware *middleware.AuthMiddleware
	now            func() time.Time
}

// New creates a new Handler instance with all dependencies.
func New(st *store.Store, taskService *service.TaskService) *Handler {
	return &Handler{
		store:          st,
		taskService:    taskService,
		authMiddleware: middleware.NewAuthMiddleware(st),
		now:            time.Now,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check and landing page
	mux.HandleFunc("GET /healthz", h.handleHealthz)
	mux.HandleFunc("GET /{$}", h.handleIndex)

	auth := h.authMiddleware.Authenticate

	// Projects and members
	mux.Handle("GET /api/v1/projects", auth(http.HandlerFunc(h.handleListProjects)))
	mux.Handle("GET /api/v1/projects/{id}/stats", auth(http.HandlerFunc(h.handleProjectStats)))
	mux.Handle("GET /api/v1/members", auth(http.HandlerFunc(h.handleListMembers)))
	mux.Handle("GET /api/v1/me", auth(http.HandlerFunc(h.handleMe)))

	// Tasks
	mux.Handle("GET /api/v1/tasks", auth(http.HandlerFunc(h.handleListTasks)))
	mux.Handle("GET /api/v1/tasks/board", auth(http.HandlerFunc(h.handleBoard)))
	mux.Handle("POST /api/v1/tasks", auth(http.HandlerFunc(h.handleCreateTask)))
	mux.Handle("GET /api/v1/tasks/{id}", auth(http.HandlerFunc(h.handleGetTask)))
	mux.Handle("PATCH /api/v1/tasks/{id}", auth(http.HandlerFunc(h.handleUpdateTask)))
	mux.Handle("DELETE /api/v1/tasks/{id}", auth(http.HandlerFunc(h.handleDeleteTask)))
	mux.Handle("PATCH /api/v1/tasks/{id}/status", auth(http.HandlerFunc(h.handleMoveTask)))
	mux.Handle("POST /api/v1/tasks/{id}/toggle", auth(http.HandlerFunc(h.handleToggleTask)))
	mux.Handle("PATCH /api/v1/tasks/{id}/assignee", auth(http.HandlerFunc(h.handleAssignTask)))
	mux.Handle("GET /api/v1/tasks/{id}/activity", auth(http.HandlerFunc(h.handleTaskActivity)))
}

// handleHealthz returns 200 OK.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// handleIndex serves the embedded landing page.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(static.IndexHTML))
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// extractTaskID extracts and validates the task ID path parameter.
// Returns (taskID, true) if valid, ("", false) if invalid (error
// already sent to the client).
func extractTaskID(w http.ResponseWriter, r *http.Request) (string, bool) {
	taskID := r.PathValue("id")
	if taskID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "task id is required")
		return "", false
	}

	if _, err := uuid.Parse(taskID); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "task id must be a valid UUID")
		return "", false
	}

	return taskID, true
}
