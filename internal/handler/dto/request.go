package dto

// CreateTaskRequest represents the request body for POST /tasks.
type CreateTaskRequest struct {
	ProjectID   string  `json:"project_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	AssigneeID  *string `json:"assignee_id,omitempty"`
	DueDate     *string `json:"due_date,omitempty"` // YYYY-MM-DD
}

// UpdateTaskRequest represents the request body for PATCH /tasks/:id.
// Absent fields are left unchanged; an explicit empty due_date clears it.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"due_date,omitempty"` // YYYY-MM-DD, "" clears
}

// MoveTaskRequest represents the request body for PATCH /tasks/:id/status.
type MoveTaskRequest struct {
	Status string `json:"status"`
}

// AssignTaskRequest represents the request body for PATCH /tasks/:id/assignee.
// A nil assignee_id unassigns the task.
type AssignTaskRequest struct {
	AssigneeID *string `json:"assignee_id"`
}
