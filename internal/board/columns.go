package board

import (
	"github.com/synergysphere/synergyboard/internal/domain"
)

// Column represents one status bucket's worth of tasks, ready for
// display. Columns are derived, never mutated directly.
type Column struct {
	Status domain.TaskStatus
	Title  string
	Color  string
	Tasks  []*domain.Task
}

// columnMeta holds the fixed display attributes per status.
var columnMeta = map[domain.TaskStatus]struct {
	title string
	color string
}{
	domain.TaskStatusTodo:       {"To Do", "#94a3b8"},
	domain.TaskStatusInProgress: {"In Progress", "#3b82f6"},
	domain.TaskStatusDone:       {"Done", "#22c55e"},
}

// Project partitions a filtered and sorted task list into one column
// per status, preserving the relative order produced by the sort.
// Every task lands in exactly one column; tasks with an unknown status
// are dropped (the store never produces them).
func Project(tasks []*domain.Task) []Column {
	statuses := domain.Statuses()
	columns := make([]Column, len(statuses))
	for i, status := range statuses {
		meta := columnMeta[status]
		columns[i] = Column{
			Status: status,
			Title:  meta.title,
			Color:  meta.color,
			Tasks:  []*domain.Task{},
		}
	}

	index := make(map[domain.TaskStatus]int, len(statuses))
	for i, status := range statuses {
		index[status] = i
	}

	for _, task := range tasks {
		i, ok := index[task.Status]
		if !ok {
			continue
		}
		columns[i].Tasks = append(columns[i].Tasks, task)
	}

	return columns
}

// Flatten concatenates the columns in fixed status order. Projecting a
// list and flattening the result yields the input list with no tasks
// lost or duplicated.
func Flatten(columns []Column) []*domain.Task {
	var tasks []*domain.Task
	for _, col := range columns {
		tasks = append(tasks, col.Tasks...)
	}
	return tasks
}

// Transition describes the outcome of a requested status change.
type Transition struct {
	From    domain.TaskStatus
	To      domain.TaskStatus
	Changed bool
}

// Move resolves a drag-and-drop or menu-driven status change. Any
// status may move to any other status; moving a task onto its current
// status is a no-op with Changed=false.
func Move(current, target domain.TaskStatus) Transition {
	return Transition{
		From:    current,
		To:      target,
		Changed: target.IsValid() && current != target,
	}
}

// ToggleCompletion flips a task between done and todo. A task that is
// not done (todo or in_progress) becomes done; a done task reopens to
// todo. The toggle never routes through in_progress.
func ToggleCompletion(current domain.TaskStatus) Transition {
	if current == domain.TaskStatusDone {
		return Transition{From: current, To: domain.TaskStatusTodo, Changed: true}
	}
	return Transition{From: current, To: domain.TaskStatusDone, Changed: true}
}
