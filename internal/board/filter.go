// Package board implements the pure board logic: filter predicates,
// sort comparators, and projection of a task list into status columns.
// All functions operate on snapshots passed in and are safe to call
// per-task, any number of times, in any order.
package board

import (
	"strings"
	"time"

	"github.com/synergysphere/synergyboard/internal/domain"
)

// Selector values shared by the assignee, priority, and due dimensions.
const (
	SelectAll        = "all"
	SelectUnassigned = "unassigned"
)

// Due-date bucket selectors.
const (
	DueOverdue   = "overdue"
	DueToday     = "today"
	DueThisWeek  = "this_week"
	DueNoDueDate = "no_due_date"
)

// FilterSpec holds the active search/assignee/priority/due-date criteria
// applied to a task list. The zero value matches nothing useful; use
// NewFilterSpec for a filter that matches everything.
type FilterSpec struct {
	Search   string
	Assignee string // SelectAll, SelectUnassigned, or a member ID
	Priority string // SelectAll or a priority value
	Due      string // SelectAll or a due-date bucket
}

// NewFilterSpec returns a filter spec that matches every task.
func NewFilterSpec() FilterSpec {
	return FilterSpec{
		Assignee: SelectAll,
		Priority: SelectAll,
		Due:      SelectAll,
	}
}

// NameResolver resolves an assignee ID to a display name. A nil or
// empty result means the name is unknown and search will not match it.
type NameResolver func(memberID string) string

// Matches evaluates one task against the filter spec. A task matches
// iff it matches all four dimensions. Due-date buckets are evaluated
// against the supplied now.
func Matches(task *domain.Task, spec FilterSpec, resolve NameResolver, now time.Time) bool {
	return matchesSearch(task, spec.Search, resolve) &&
		matchesAssignee(task, spec.Assignee) &&
		matchesPriority(task, spec.Priority) &&
		matchesDue(task, spec.Due, now)
}

// Filter returns the tasks matching the spec, preserving input order.
func Filter(tasks []*domain.Task, spec FilterSpec, resolve NameResolver, now time.Time) []*domain.Task {
	matched := make([]*domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if Matches(task, spec, resolve, now) {
			matched = append(matched, task)
		}
	}
	return matched
}

func matchesSearch(task *domain.Task, search string, resolve NameResolver) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(task.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(task.Description), needle) {
		return true
	}
	if task.IsAssigned() && resolve != nil {
		if name := resolve(*task.AssigneeID); name != "" {
			return strings.Contains(strings.ToLower(name), needle)
		}
	}
	return false
}

func matchesAssignee(task *domain.Task, selector string) bool {
	switch selector {
	case SelectAll, "":
		return true
	case SelectUnassigned:
		return !task.IsAssigned()
	default:
		return task.IsAssignedTo(selector)
	}
}

func matchesPriority(task *domain.Task, selector string) bool {
	if selector == SelectAll || selector == "" {
		return true
	}
	return task.Priority == domain.TaskPriority(selector)
}

func matchesDue(task *domain.Task, selector string, now time.Time) bool {
	switch selector {
	case SelectAll, "":
		return true
	case DueNoDueDate:
		return !task.HasDueDate()
	}

	if !task.HasDueDate() {
		return false
	}

	today := domain.StartOfDay(now)
	due := *task.DueDate

	switch selector {
	case DueOverdue:
		return due.Before(today)
	case DueToday:
		return !due.Before(today) && due.Before(today.AddDate(0, 0, 1))
	case DueThisWeek:
		// Inclusive of the seventh day from today.
		return !due.Before(today) && !due.After(today.AddDate(0, 0, 7))
	default:
		// Unrecognized bucket: treat like "all" rather than erroring.
		return true
	}
}
