package dto

import (
	"time"

	"github.com/synergysphere/synergyboard/internal/activity"
	"github.com/synergysphere/synergyboard/internal/board"
	"github.com/synergysphere/synergyboard/internal/domain"
)

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID           string     `json:"id"`
	ProjectID    string     `json:"project_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	AssigneeID   *string    `json:"assignee_id"`
	AssigneeName string     `json:"assignee_name,omitempty"`
	DueDate      *string    `json:"due_date,omitempty"` // YYYY-MM-DD
	IsOverdue    bool       `json:"is_overdue"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TasksListResponse represents the response for GET /tasks.
type TasksListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// ColumnResponse represents one board column.
type ColumnResponse struct {
	Status string         `json:"status"`
	Title  string         `json:"title"`
	Color  string         `json:"color"`
	Tasks  []TaskResponse `json:"tasks"`
}

// BoardResponse represents the response for GET /tasks/board.
type BoardResponse struct {
	Columns []ColumnResponse `json:"columns"`
}

// ActivityEntryResponse represents one audit entry with its relative
// display timestamp.
type ActivityEntryResponse struct {
	ID          string            `json:"id"`
	TaskID      string            `json:"task_id"`
	Type        string            `json:"type"`
	Description string            `json:"description"`
	ActorID     *string           `json:"actor_id"`
	ActorName   string            `json:"actor_name,omitempty"`
	Meta        map[string]string `json:"meta,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	When        string            `json:"when"`
}

// ActivityListResponse represents the response for GET /tasks/:id/activity.
type ActivityListResponse struct {
	Entries []ActivityEntryResponse `json:"entries"`
}

// MemberResponse represents a member in API responses. Tokens are
// never serialized.
type MemberResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Role      string `json:"role"`
}

// ProjectResponse represents a project in API responses.
type ProjectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectStatsResponse represents the overview counters of a project.
type ProjectStatsResponse struct {
	TotalTasks            int            `json:"total_tasks"`
	ByStatus              map[string]int `json:"by_status"`
	CompletedTasks        int            `json:"completed_tasks"`
	OverdueCount          int            `json:"overdue_count"`
	CompletionRatePercent float64        `json:"completion_rate_percent"`
}

// ToTaskResponse converts a domain.Task, resolving the assignee name
// and the overdue flag against now.
func ToTaskResponse(task *domain.Task, resolve board.NameResolver, now time.Time) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		AssigneeID:  task.AssigneeID,
		IsOverdue:   task.IsOverdue(now),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.IsAssigned() && resolve != nil {
		resp.AssigneeName = resolve(*task.AssigneeID)
	}
	if task.DueDate != nil {
		due := task.DueDate.Format("2006-01-02")
		resp.DueDate = &due
	}
	return resp
}

// ToColumnResponse converts a board.Column.
func ToColumnResponse(col board.Column, resolve board.NameResolver, now time.Time) ColumnResponse {
	tasks := make([]TaskResponse, len(col.Tasks))
	for i, task := range col.Tasks {
		tasks[i] = ToTaskResponse(task, resolve, now)
	}
	return ColumnResponse{
		Status: string(col.Status),
		Title:  col.Title,
		Color:  col.Color,
		Tasks:  tasks,
	}
}

// ToActivityEntryResponse converts a domain.ActivityEntry, rendering
// its relative display timestamp against now.
func ToActivityEntryResponse(entry domain.ActivityEntry, now time.Time) ActivityEntryResponse {
	return ActivityEntryResponse{
		ID:          entry.ID,
		TaskID:      entry.TaskID,
		Type:        string(entry.Type),
		Description: entry.Description,
		ActorID:     entry.ActorID,
		ActorName:   entry.ActorName,
		Meta:        entry.Meta,
		CreatedAt:   entry.CreatedAt,
		When:        activity.FormatRelative(entry.CreatedAt, now),
	}
}

// ToMemberResponse converts a domain.Member.
func ToMemberResponse(m *domain.Member) MemberResponse {
	return MemberResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		AvatarURL: m.AvatarURL,
		Role:      string(m.Role),
	}
}

// ToProjectResponse converts a domain.Project.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}

// ToProjectStatsResponse converts domain.ProjectStats.
func ToProjectStatsResponse(stats *domain.ProjectStats) ProjectStatsResponse {
	byStatus := make(map[string]int, len(stats.ByStatus))
	for status, count := range stats.ByStatus {
		byStatus[string(status)] = count
	}
	return ProjectStatsResponse{
		TotalTasks:            stats.TotalTasks,
		ByStatus:              byStatus,
		CompletedTasks:        stats.CompletedTasks,
		OverdueCount:          stats.OverdueCount,
		CompletionRatePercent: stats.CompletionRatePercent,
	}
}
