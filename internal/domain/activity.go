package domain

import "time"

// ActivityType represents the kind of tracked task mutation.
type ActivityType string

const (
	ActivityTypeCreated         ActivityType = "created"
	ActivityTypeUpdated         ActivityType = "updated"
	ActivityTypeStatusChanged   ActivityType = "status_changed"
	ActivityTypePriorityChanged ActivityType = "priority_changed"
	ActivityTypeAssigned        ActivityType = "assigned"
	ActivityTypeUnassigned      ActivityType = "unassigned"
	ActivityTypeCompleted       ActivityType = "completed"
	ActivityTypeReopened        ActivityType = "reopened"
	ActivityTypeDeleted         ActivityType = "deleted"
)

// ActivityEntry represents one immutable audit record of a tracked task
// mutation. Entries are append-only and never edited or removed.
type ActivityEntry struct {
	ID          string
	TaskID      string
	Type        ActivityType
	Description string
	ActorID     *string // nil for system entries
	ActorName   string
	Meta        map[string]string // before/after values, free-form
	CreatedAt   time.Time
}

// IsSystemEntry returns true if the entry was produced without an actor.
func (e *ActivityEntry) IsSystemEntry() bool {
	return e.ActorID == nil
}
