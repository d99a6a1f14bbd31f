package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/synergysphere/synergyboard/internal/handler/dto"
	"github.com/synergysphere/synergyboard/internal/middleware"
)

// handleListProjects returns all projects.
func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projects, err := h.store.ListProjects(ctx)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	resp := make([]dto.ProjectResponse, len(projects))
	for i, p := range projects {
		resp[i] = dto.ToProjectResponse(p)
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleProjectStats returns the derived overview counters of a project.
func (h *Handler) handleProjectStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projectID := r.PathValue("id")
	if projectID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "project id is required")
		return
	}
	if _, err := uuid.Parse(projectID); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "project id must be a valid UUID")
		return
	}

	stats, err := h.taskService.ProjectStats(ctx, projectID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToProjectStatsResponse(stats))
}

// handleListMembers returns the member roster.
func (h *Handler) handleListMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	members, err := h.store.ListMembers(ctx)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	resp := make([]dto.MemberResponse, len(members))
	for i, m := range members {
		resp[i] = dto.ToMemberResponse(m)
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleMe returns the authenticated member's profile.
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	member, err := middleware.GetMemberFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}
	respondJSON(w, http.StatusOK, dto.ToMemberResponse(member))
}
