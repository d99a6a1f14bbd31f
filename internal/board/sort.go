package board

import (
	"sort"

	"github.com/synergysphere/synergyboard/internal/domain"
)

// SortKey represents the dimension used to order a task list.
type SortKey string

const (
	SortByDueDate     SortKey = "due_date"
	SortByPriority    SortKey = "priority"
	SortByAssignee    SortKey = "assignee"
	SortByCreatedDate SortKey = "created_date"
	SortByTitle       SortKey = "title"
)

// IsValid checks if the sort key is one of the enumerated values.
func (k SortKey) IsValid() bool {
	switch k {
	case SortByDueDate, SortByPriority, SortByAssignee, SortByCreatedDate, SortByTitle:
		return true
	default:
		return false
	}
}

// LessFunc reports whether a orders strictly before b. Ties preserve
// prior relative order when applied with a stable sort.
type LessFunc func(a, b *domain.Task) bool

// LessFor returns the ordering function for the given sort key. An
// unrecognized key yields a comparator that reports no order, which
// leaves the input order unchanged under a stable sort.
func LessFor(key SortKey, resolve NameResolver) LessFunc {
	switch key {
	case SortByDueDate:
		return lessByDueDate
	case SortByPriority:
		return lessByPriority
	case SortByAssignee:
		return lessByAssignee(resolve)
	case SortByCreatedDate:
		return func(a, b *domain.Task) bool {
			return a.CreatedAt.After(b.CreatedAt)
		}
	case SortByTitle:
		return func(a, b *domain.Task) bool {
			return a.Title < b.Title
		}
	default:
		return func(a, b *domain.Task) bool { return false }
	}
}

// Sort returns a new slice ordered by the given key using a stable sort.
// The input slice is not modified.
func Sort(tasks []*domain.Task, key SortKey, resolve NameResolver) []*domain.Task {
	sorted := make([]*domain.Task, len(tasks))
	copy(sorted, tasks)
	less := LessFor(key, resolve)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// lessByDueDate orders ascending by due date; tasks with no due date
// sort after all tasks that have one.
func lessByDueDate(a, b *domain.Task) bool {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return false
	case a.DueDate == nil:
		return false
	case b.DueDate == nil:
		return true
	default:
		return a.DueDate.Before(*b.DueDate)
	}
}

// lessByPriority orders descending by severity, ties broken by
// ascending due date with the same nil-last rule.
func lessByPriority(a, b *domain.Task) bool {
	ra, rb := a.Priority.Rank(), b.Priority.Rank()
	if ra != rb {
		return ra > rb
	}
	return lessByDueDate(a, b)
}

// lessByAssignee orders ascending by display name, with unassigned
// tasks participating under the literal name "Unassigned".
func lessByAssignee(resolve NameResolver) LessFunc {
	return func(a, b *domain.Task) bool {
		return assigneeName(a, resolve) < assigneeName(b, resolve)
	}
}

func assigneeName(t *domain.Task, resolve NameResolver) string {
	if !t.IsAssigned() {
		return domain.UnassignedName
	}
	if resolve == nil {
		return domain.UnassignedName
	}
	if name := resolve(*t.AssigneeID); name != "" {
		return name
	}
	return domain.UnassignedName
}
