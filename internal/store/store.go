// Package store holds the in-memory board state: tasks, members,
// projects, and per-task activity lists. The store is the single owner
// of mutable state; readers get snapshot copies and the pure board
// functions never touch it directly.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/synergysphere/synergyboard/internal/domain"
)

// Store is an injectable in-memory state container. All access is
// guarded by a mutex so the HTTP layer can call it from concurrent
// requests.
type Store struct {
	mu     sync.RWMutex
	faults FaultInjector

	tasks     map[string]*domain.Task
	taskOrder []string // insertion order, stable listing base
	members   map[string]*domain.Member
	projects  map[string]*domain.Project
	activity  map[string][]domain.ActivityEntry
}

// New creates an empty Store using the given fault injector. A nil
// injector disables fault simulation.
func New(faults FaultInjector) *Store {
	if faults == nil {
		faults = NopInjector{}
	}
	return &Store{
		faults:   faults,
		tasks:    make(map[string]*domain.Task),
		members:  make(map[string]*domain.Member),
		projects: make(map[string]*domain.Project),
		activity: make(map[string][]domain.ActivityEntry),
	}
}

func cloneTask(t *domain.Task) *domain.Task {
	c := *t
	if t.AssigneeID != nil {
		id := *t.AssigneeID
		c.AssigneeID = &id
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return &c
}

func cloneEntry(e domain.ActivityEntry) domain.ActivityEntry {
	if e.ActorID != nil {
		id := *e.ActorID
		e.ActorID = &id
	}
	if e.Meta != nil {
		m := make(map[string]string, len(e.Meta))
		for k, v := range e.Meta {
			m[k] = v
		}
		e.Meta = m
	}
	return e
}

func cloneEntries(entries []domain.ActivityEntry) []domain.ActivityEntry {
	out := make([]domain.ActivityEntry, len(entries))
	for i, e := range entries {
		out[i] = cloneEntry(e)
	}
	return out
}

// ListTasks returns snapshot copies of all tasks for a project, in
// insertion order. An empty projectID returns every task.
func (s *Store) ListTasks(ctx context.Context, projectID string) ([]*domain.Task, error) {
	if err := s.faults.Before(ctx, "list_tasks"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*domain.Task, 0, len(s.taskOrder))
	for _, id := range s.taskOrder {
		task, ok := s.tasks[id]
		if !ok {
			continue
		}
		if projectID != "" && task.ProjectID != projectID {
			continue
		}
		tasks = append(tasks, cloneTask(task))
	}
	return tasks, nil
}

// GetTask returns a snapshot copy of a task by ID.
func (s *Store) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	if err := s.faults.Before(ctx, "get_task"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

// InsertTask adds a new task and appends its creation activity entry
// in one step.
func (s *Store) InsertTask(ctx context.Context, task *domain.Task, entry domain.ActivityEntry) error {
	if err := s.faults.Before(ctx, "insert_task"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[task.ID] = cloneTask(task)
	s.taskOrder = append(s.taskOrder, task.ID)
	s.activity[task.ID] = append(s.activity[task.ID], cloneEntry(entry))
	return nil
}

// UpdateTask replaces a task by ID and appends the accompanying
// activity entries. Returns ErrTaskNotFound if the task disappeared
// between snapshot and commit.
func (s *Store) UpdateTask(ctx context.Context, task *domain.Task, entries ...domain.ActivityEntry) error {
	if err := s.faults.Before(ctx, "update_task"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	s.tasks[task.ID] = cloneTask(task)
	s.activity[task.ID] = append(s.activity[task.ID], cloneEntries(entries)...)
	return nil
}

// DeleteTask removes a task. The task's activity list is retained, with
// the supplied entry appended as its tombstone.
func (s *Store) DeleteTask(ctx context.Context, taskID string, entry domain.ActivityEntry) error {
	if err := s.faults.Before(ctx, "delete_task"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[taskID]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(s.tasks, taskID)
	s.activity[taskID] = append(s.activity[taskID], cloneEntry(entry))
	return nil
}

// ActivityFor returns snapshot copies of the activity entries of a
// task, oldest first. Entries survive the deletion of their owning
// task.
func (s *Store) ActivityFor(ctx context.Context, taskID string) ([]domain.ActivityEntry, error) {
	if err := s.faults.Before(ctx, "list_activity"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneEntries(s.activity[taskID]), nil
}

// ListMembers returns snapshot copies of all members.
func (s *Store) ListMembers(ctx context.Context) ([]*domain.Member, error) {
	if err := s.faults.Before(ctx, "list_members"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	members := make([]*domain.Member, 0, len(s.members))
	for _, m := range s.members {
		c := *m
		members = append(members, &c)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
	return members, nil
}

// GetMember returns a member by ID.
func (s *Store) GetMember(ctx context.Context, memberID string) (*domain.Member, error) {
	if err := s.faults.Before(ctx, "get_member"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[memberID]
	if !ok {
		return nil, domain.ErrMemberNotFound
	}
	c := *m
	return &c, nil
}

// GetMemberByToken returns the member owning the given API token, or
// ErrInvalidToken when no member does.
func (s *Store) GetMemberByToken(ctx context.Context, token string) (*domain.Member, error) {
	if err := s.faults.Before(ctx, "get_member"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.members {
		if m.Token == token {
			c := *m
			return &c, nil
		}
	}
	return nil, domain.ErrInvalidToken
}

// MemberName resolves a member ID to a display name, or "" when the
// member is unknown. Used as the board.NameResolver.
func (s *Store) MemberName(memberID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m, ok := s.members[memberID]; ok {
		return m.Name
	}
	return ""
}

// ListProjects returns snapshot copies of all projects.
func (s *Store) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	if err := s.faults.Before(ctx, "list_projects"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]*domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		c := *p
		projects = append(projects, &c)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects, nil
}

// GetProject returns a project by ID.
func (s *Store) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	if err := s.faults.Before(ctx, "get_project"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[projectID]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	c := *p
	return &c, nil
}

// putTask, putMember, and putProject bypass fault injection; they are
// used by seeding only.
func (s *Store) putTask(task *domain.Task, entry domain.ActivityEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = cloneTask(task)
	s.taskOrder = append(s.taskOrder, task.ID)
	s.activity[task.ID] = append(s.activity[task.ID], cloneEntry(entry))
}

func (s *Store) putMember(m *domain.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *m
	s.members[m.ID] = &c
}

func (s *Store) putProject(p *domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *p
	s.projects[p.ID] = &c
}
