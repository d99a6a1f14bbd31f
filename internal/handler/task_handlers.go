package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/synergysphere/synergyboard/internal/activity"
	"github.com/synergysphere/synergyboard/internal/board"
	"github.com/synergysphere/synergyboard/internal/domain"
	"github.com/synergysphere/synergyboard/internal/handler/dto"
	"github.com/synergysphere/synergyboard/internal/middleware"
	"github.com/synergysphere/synergyboard/internal/service"
)

// actorFromContext builds the activity actor from the authenticated member.
func actorFromContext(w http.ResponseWriter, r *http.Request) (activity.Actor, bool) {
	member, err := middleware.GetMemberFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return activity.Actor{}, false
	}
	return activity.Actor{ID: member.ID, Name: member.Name}, true
}

// listQueryFromRequest parses the shared filter/sort query parameters.
func listQueryFromRequest(r *http.Request) service.ListQuery {
	query := r.URL.Query()

	spec := board.NewFilterSpec()
	spec.Search = query.Get("search")
	if v := query.Get("assignee"); v != "" {
		spec.Assignee = v
	}
	if v := query.Get("priority"); v != "" {
		spec.Priority = v
	}
	if v := query.Get("due"); v != "" {
		spec.Due = v
	}

	return service.ListQuery{
		ProjectID: query.Get("project"),
		Filter:    spec,
		Sort:      board.SortKey(query.Get("sort")),
	}
}

// handleListTasks returns the filtered, sorted task list.
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tasks, err := h.taskService.List(ctx, listQueryFromRequest(r))
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	now := h.now()
	resp := dto.TasksListResponse{
		Tasks: make([]dto.TaskResponse, len(tasks)),
		Total: len(tasks),
	}
	for i, task := range tasks {
		resp.Tasks[i] = dto.ToTaskResponse(task, h.store.MemberName, now)
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleBoard returns the filtered, sorted tasks partitioned into
// status columns.
func (h *Handler) handleBoard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	columns, err := h.taskService.Board(ctx, listQueryFromRequest(r))
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	now := h.now()
	resp := dto.BoardResponse{Columns: make([]dto.ColumnResponse, len(columns))}
	for i, col := range columns {
		resp.Columns[i] = dto.ToColumnResponse(col, h.store.MemberName, now)
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleCreateTask creates a new task in the todo column.
func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorFromContext(w, r)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.Title == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title is required")
		return
	}

	params := service.CreateTaskParams{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.TaskPriority(req.Priority),
		AssigneeID:  req.AssigneeID,
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "due_date must be YYYY-MM-DD")
			return
		}
		params.DueDate = &due
	}

	task, err := h.taskService.Create(ctx, params, actor)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTaskResponse(task, h.store.MemberName, h.now()))
}

// handleGetTask retrieves a single task.
func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Get(ctx, taskID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task, h.store.MemberName, h.now()))
}

// handleUpdateTask applies field updates to a task.
func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorFromContext(w, r)
	if !ok {
		return
	}

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	params := service.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		params.Priority = &priority
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			params.ClearDueDate = true
		} else {
			due, err := time.Parse("2006-01-02", *req.DueDate)
			if err != nil {
				respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "due_date must be YYYY-MM-DD")
				return
			}
			params.DueDate = &due
		}
	}

	task, err := h.taskService.Update(ctx, taskID, params, actor)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task, h.store.MemberName, h.now()))
}

// handleDeleteTask removes a task. Its activity trail is retained.
func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorFromContext(w, r)
	if !ok {
		return
	}

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(ctx, taskID, actor); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleMoveTask transitions a task to a new status column.
func (h *Handler) handleMoveTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorFromContext(w, r)
	if !ok {
		return
	}

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	var req dto.MoveTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, err := h.taskService.Move(ctx, taskID, domain.TaskStatus(req.Status), actor)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task, h.store.MemberName, h.now()))
}

// handleToggleTask flips a task between done and todo.
func (h *Handler) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorFromContext(w, r)
	if !ok {
		return
	}

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.ToggleComplete(ctx, taskID, actor)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task, h.store.MemberName, h.now()))
}

// handleAssignTask changes a task's assignee; a null assignee_id
// unassigns.
func (h *Handler) handleAssignTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorFromContext(w, r)
	if !ok {
		return
	}

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	var req dto.AssignTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, err := h.taskService.Assign(ctx, taskID, req.AssigneeID, actor)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task, h.store.MemberName, h.now()))
}

// handleTaskActivity returns the audit trail of a task, oldest first.
func (h *Handler) handleTaskActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	entries, err := h.taskService.Activity(ctx, taskID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	now := h.now()
	resp := dto.ActivityListResponse{Entries: make([]dto.ActivityEntryResponse, len(entries))}
	for i, entry := range entries {
		resp.Entries[i] = dto.ToActivityEntryResponse(entry, now)
	}
	respondJSON(w, http.StatusOK, resp)
}
