package domain

import "time"

// TaskStatus represents the status of a task on the board.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Statuses lists all statuses in fixed board column order.
func Statuses() []TaskStatus {
	return []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}
}

// IsValid checks if the status is one of the allowed values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// TaskPriority represents the priority level of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// IsValid checks if the priority is one of the allowed values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}

// Rank returns the severity rank of the priority, higher is more severe.
// Unknown priorities rank below low.
func (p TaskPriority) Rank() int {
	switch p {
	case TaskPriorityHigh:
		return 3
	case TaskPriorityMedium:
		return 2
	case TaskPriorityLow:
		return 1
	default:
		return 0
	}
}

// Task represents a unit of work belonging to a project.
type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	AssigneeID  *string
	DueDate     *time.Time // calendar date, time component ignored
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasDueDate returns true if the task has a due date set.
func (t *Task) HasDueDate() bool {
	return t.DueDate != nil
}

// IsAssigned returns true if the task has an assignee.
func (t *Task) IsAssigned() bool {
	return t.AssigneeID != nil && *t.AssigneeID != ""
}

// IsAssignedTo checks if the task is assigned to the given member.
func (t *Task) IsAssignedTo(memberID string) bool {
	return t.AssigneeID != nil && *t.AssigneeID == memberID
}

// IsOverdue reports whether the task's due date falls before the start
// of the day containing now.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(StartOfDay(now))
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
