package domain

import "time"

// Project represents a container for tasks and members.
type Project struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// ProjectStats holds derived counters for a project overview. The
// counters are always computed from the task collection, never stored.
type ProjectStats struct {
	TotalTasks            int
	ByStatus              map[TaskStatus]int
	CompletedTasks        int
	OverdueCount          int
	CompletionRatePercent float64
}
