// Package service coordinates board mutations: every tracked mutation
// validates its inputs, commits through the store, and appends activity
// entries with an explicit actor.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/synergysphere/synergyboard/internal/activity"
	"github.com/synergysphere/synergyboard/internal/board"
	"github.com/synergysphere/synergyboard/internal/domain"
	"github.com/synergysphere/synergyboard/internal/store"
)

// TaskService coordinates task operations over the store.
type TaskService struct {
	store    *store.Store
	recorder *activity.Recorder
	now      func() time.Time
}

// Option configures a TaskService.
type Option func(*TaskService)

// WithClock overrides the service clock, used for timestamps and
// due-date bucket evaluation.
func WithClock(now func() time.Time) Option {
	return func(s *TaskService) { s.now = now }
}

// NewTaskService creates a TaskService.
func NewTaskService(st *store.Store, rec *activity.Recorder, opts ...Option) *TaskService {
	s := &TaskService{
		store:    st,
		recorder: rec,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListQuery describes a filtered, sorted task listing.
type ListQuery struct {
	ProjectID string
	Filter    board.FilterSpec
	Sort      board.SortKey
}

// List returns the tasks of a project after filtering and sorting.
func (s *TaskService) List(ctx context.Context, q ListQuery) ([]*domain.Task, error) {
	tasks, err := s.store.ListTasks(ctx, q.ProjectID)
	if err != nil {
		return nil, err
	}
	tasks = board.Filter(tasks, q.Filter, s.store.MemberName, s.now())
	return board.Sort(tasks, q.Sort, s.store.MemberName), nil
}

// Board returns the filtered, sorted tasks of a project partitioned
// into status columns.
func (s *TaskService) Board(ctx context.Context, q ListQuery) ([]board.Column, error) {
	tasks, err := s.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return board.Project(tasks), nil
}

// Get returns a single task.
func (s *TaskService) Get(ctx context.Context, taskID string) (*domain.Task, error) {
	return s.store.GetTask(ctx, taskID)
}

// Activity returns the audit trail of a task, oldest first. The trail
// survives the deletion of the task.
func (s *TaskService) Activity(ctx context.Context, taskID string) ([]domain.ActivityEntry, error) {
	return s.store.ActivityFor(ctx, taskID)
}

// CreateTaskParams holds the inputs for task creation.
type CreateTaskParams struct {
	ProjectID   string
	Title       string
	Description string
	Priority    domain.TaskPriority
	AssigneeID  *string
	DueDate     *time.Time
}

// Create creates a new task in the todo column and records a created
// entry.
func (s *TaskService) Create(ctx context.Context, p CreateTaskParams, actor activity.Actor) (*domain.Task, error) {
	if p.Title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if p.Priority == "" {
		p.Priority = domain.TaskPriorityMedium
	}
	if !p.Priority.IsValid() {
		return nil, domain.ErrInvalidPriority
	}

	now := s.now()
	task := &domain.Task{
		ID:          uuid.NewString(),
		ProjectID:   p.ProjectID,
		Title:       p.Title,
		Description: p.Description,
		Status:      domain.TaskStatusTodo,
		Priority:    p.Priority,
		AssigneeID:  p.AssigneeID,
		DueDate:     p.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	entry := s.recorder.Created(task.ID, task.Title, actor)
	if err := s.store.InsertTask(ctx, task, entry); err != nil {
		return nil, err
	}

	slog.Info("task created",
		"task_id", task.ID,
		"project_id", task.ProjectID,
		"actor_id", actor.ID,
	)
	return task, nil
}

// UpdateTaskParams holds the optional field updates for a task. Nil
// fields are left unchanged; ClearDueDate removes the due date.
type UpdateTaskParams struct {
	Title        *string
	Description  *string
	Priority     *domain.TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
}

// Update applies field updates to a task. A priority change records a
// priority_changed entry; any other change records an updated entry.
// An update that changes nothing is a no-op: no UpdatedAt bump, no
// activity.
func (s *TaskService) Update(ctx context.Context, taskID string, p UpdateTaskParams, actor activity.Actor) (*domain.Task, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	var entries []domain.ActivityEntry
	changed := false

	if p.Title != nil && *p.Title != task.Title {
		if *p.Title == "" {
			return nil, domain.ErrEmptyTitle
		}
		task.Title = *p.Title
		changed = true
	}
	if p.Description != nil && *p.Description != task.Description {
		task.Description = *p.Description
		changed = true
	}
	if p.ClearDueDate {
		if task.DueDate != nil {
			task.DueDate = nil
			changed = true
		}
	} else if p.DueDate != nil {
		if task.DueDate == nil || !task.DueDate.Equal(*p.DueDate) {
			due := *p.DueDate
			task.DueDate = &due
			changed = true
		}
	}

	if p.Priority != nil && *p.Priority != task.Priority {
		if !p.Priority.IsValid() {
			return nil, domain.ErrInvalidPriority
		}
		entries = append(entries, s.recorder.PriorityChanged(task.ID, task.Title, task.Priority, *p.Priority, actor))
		task.Priority = *p.Priority
	}

	if changed {
		entries = append(entries, s.recorder.Updated(task.ID, task.Title, actor))
	}
	if len(entries) == 0 {
		return task, nil
	}

	task.UpdatedAt = s.now()
	if err := s.store.UpdateTask(ctx, task, entries...); err != nil {
		return nil, err
	}

	slog.Info("task updated", "task_id", task.ID, "actor_id", actor.ID)
	return task, nil
}

// Move transitions a task to a new status, driven by drag-and-drop or
// menu selection. Any status can move to any other; dropping a task
// onto its current column changes nothing and records nothing.
func (s *TaskService) Move(ctx context.Context, taskID string, target domain.TaskStatus, actor activity.Actor) (*domain.Task, error) {
	if !target.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	tr := board.Move(task.Status, target)
	if !tr.Changed {
		return task, nil
	}

	task.Status = tr.To
	task.UpdatedAt = s.now()

	entry := s.recorder.StatusChanged(task.ID, task.Title, tr.From, tr.To, actor)
	if err := s.store.UpdateTask(ctx, task, entry); err != nil {
		return nil, err
	}

	slog.Info("task moved",
		"task_id", task.ID,
		"from", tr.From,
		"to", tr.To,
		"actor_id", actor.ID,
	)
	return task, nil
}

// ToggleComplete flips a task between done and todo, recording a
// completed or reopened entry.
func (s *TaskService) ToggleComplete(ctx context.Context, taskID string, actor activity.Actor) (*domain.Task, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	tr := board.ToggleCompletion(task.Status)
	task.Status = tr.To
	task.UpdatedAt = s.now()

	entry := s.recorder.CompletionToggled(task.ID, task.Title, tr.To, actor)
	if err := s.store.UpdateTask(ctx, task, entry); err != nil {
		return nil, err
	}

	slog.Info("task completion toggled",
		"task_id", task.ID,
		"to", tr.To,
		"actor_id", actor.ID,
	)
	return task, nil
}

// Assign changes a task's assignee. nil unassigns. Assigning the
// current assignee again is a no-op.
func (s *TaskService) Assign(ctx context.Context, taskID string, assigneeID *string, actor activity.Actor) (*domain.Task, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	before := ""
	if task.IsAssigned() {
		before = *task.AssigneeID
	}
	after := ""
	if assigneeID != nil && *assigneeID != "" {
		if _, err := s.store.GetMember(ctx, *assigneeID); err != nil {
			return nil, err
		}
		after = *assigneeID
	}

	if before == after {
		return task, nil
	}

	if after == "" {
		task.AssigneeID = nil
	} else {
		task.AssigneeID = &after
	}
	task.UpdatedAt = s.now()

	entry := s.recorder.Assignment(task.ID, task.Title,
		before, after,
		s.store.MemberName(before), s.store.MemberName(after),
		actor)
	if err := s.store.UpdateTask(ctx, task, entry); err != nil {
		return nil, err
	}

	slog.Info("task assignment changed",
		"task_id", task.ID,
		"assignee_id", after,
		"actor_id", actor.ID,
	)
	return task, nil
}

// Delete removes a task. Its activity trail is retained with a final
// deleted entry as the tombstone.
func (s *TaskService) Delete(ctx context.Context, taskID string, actor activity.Actor) error {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return err
	}

	entry := s.recorder.Deleted(task.ID, task.Title, actor)
	if err := s.store.DeleteTask(ctx, taskID, entry); err != nil {
		return err
	}

	slog.Info("task deleted", "task_id", task.ID, "actor_id", actor.ID)
	return nil
}

// ProjectStats computes the overview counters for a project. All
// counters are derived by counting the live task collection; the
// in-progress figure is a real count.
func (s *TaskService) ProjectStats(ctx context.Context, projectID string) (*domain.ProjectStats, error) {
	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		return nil, err
	}

	tasks, err := s.store.ListTasks(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	stats := &domain.ProjectStats{
		TotalTasks: len(tasks),
		ByStatus:   make(map[domain.TaskStatus]int, 3),
	}
	for _, status := range domain.Statuses() {
		stats.ByStatus[status] = 0
	}
	for _, task := range tasks {
		stats.ByStatus[task.Status]++
		if task.Status != domain.TaskStatusDone && task.IsOverdue(now) {
			stats.OverdueCount++
		}
	}
	stats.CompletedTasks = stats.ByStatus[domain.TaskStatusDone]
	if stats.TotalTasks > 0 {
		stats.CompletionRatePercent = float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100
	}
	return stats, nil
}
