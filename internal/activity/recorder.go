// Package activity builds immutable audit entries for tracked task
// mutations. Each constructor is pure given its inputs plus the
// injected clock and entropy source, and returns a new entry with a
// freshly generated ID and timestamp.
package activity

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/synergysphere/synergyboard/internal/domain"
)

// Actor identifies who performed a mutation. Every recorder call takes
// an explicit actor; there is no implicit current user.
type Actor struct {
	ID   string
	Name string
}

// Recorder constructs activity entries. The zero value is not usable;
// use NewRecorder.
type Recorder struct {
	now     func() time.Time
	entropy io.Reader
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock overrides the clock used for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// WithEntropy overrides the entropy source used for entry IDs.
func WithEntropy(entropy io.Reader) Option {
	return func(r *Recorder) { r.entropy = entropy }
}

// NewRecorder creates a Recorder. By default it uses the wall clock and
// a monotonic entropy source so entry IDs sort by creation time. The
// monotonic reader is not safe for concurrent use on its own, and one
// Recorder serves every request, so it is wrapped in a locked reader.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		now: time.Now,
		entropy: &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Recorder) newEntry(taskID string, typ domain.ActivityType, description string, actor Actor, meta map[string]string) domain.ActivityEntry {
	now := r.now()
	entry := domain.ActivityEntry{
		ID:          ulid.MustNew(ulid.Timestamp(now), r.entropy).String(),
		TaskID:      taskID,
		Type:        typ,
		Description: description,
		ActorName:   actor.Name,
		Meta:        meta,
		CreatedAt:   now,
	}
	if actor.ID != "" {
		id := actor.ID
		entry.ActorID = &id
	}
	return entry
}

// Created records the creation of a task.
func (r *Recorder) Created(taskID, title string, actor Actor) domain.ActivityEntry {
	return r.newEntry(taskID, domain.ActivityTypeCreated,
		fmt.Sprintf("created task %q", title), actor, nil)
}

// Updated records a generic field update.
func (r *Recorder) Updated(taskID, title string, actor Actor) domain.ActivityEntry {
	return r.newEntry(taskID, domain.ActivityTypeUpdated,
		fmt.Sprintf("updated task %q", title), actor, nil)
}

// StatusChanged records an explicit status transition.
func (r *Recorder) StatusChanged(taskID, title string, from, to domain.TaskStatus, actor Actor) domain.ActivityEntry {
	return r.newEntry(taskID, domain.ActivityTypeStatusChanged,
		fmt.Sprintf("moved %q from %s to %s", title, from, to), actor,
		map[string]string{"from": string(from), "to": string(to)})
}

// PriorityChanged records a priority change.
func (r *Recorder) PriorityChanged(taskID, title string, from, to domain.TaskPriority, actor Actor) domain.ActivityEntry {
	return r.newEntry(taskID, domain.ActivityTypePriorityChanged,
		fmt.Sprintf("changed priority of %q from %s to %s", title, from, to), actor,
		map[string]string{"from": string(from), "to": string(to)})
}

// Assignment records an assignee change. The entry type and wording
// depend on the before/after state: no-assignee to assignee is
// "assigned", assignee to no-assignee is "unassigned", one assignee to
// another is a reassignment, and no change falls back to a generic
// update entry.
func (r *Recorder) Assignment(taskID, title string, before, after string, beforeName, afterName string, actor Actor) domain.ActivityEntry {
	meta := map[string]string{"from": before, "to": after}
	switch {
	case before == "" && after != "":
		return r.newEntry(taskID, domain.ActivityTypeAssigned,
			fmt.Sprintf("assigned %q to %s", title, afterName), actor, meta)
	case before != "" && after == "":
		return r.newEntry(taskID, domain.ActivityTypeUnassigned,
			fmt.Sprintf("unassigned %s from %q", beforeName, title), actor, meta)
	case before != "" && after != "" && before != after:
		return r.newEntry(taskID, domain.ActivityTypeAssigned,
			fmt.Sprintf("reassigned %q from %s to %s", title, beforeName, afterName), actor, meta)
	default:
		return r.Updated(taskID, title, actor)
	}
}

// CompletionToggled records a completion toggle: completed when the
// task transitioned into done, reopened when it transitioned out.
func (r *Recorder) CompletionToggled(taskID, title string, to domain.TaskStatus, actor Actor) domain.ActivityEntry {
	if to == domain.TaskStatusDone {
		return r.newEntry(taskID, domain.ActivityTypeCompleted,
			fmt.Sprintf("completed %q", title), actor, nil)
	}
	return r.newEntry(taskID, domain.ActivityTypeReopened,
		fmt.Sprintf("reopened %q", title), actor, nil)
}

// Deleted records the deletion of a task. The entry is retained as the
// tombstone of the task's audit trail.
func (r *Recorder) Deleted(taskID, title string, actor Actor) domain.ActivityEntry {
	return r.newEntry(taskID, domain.ActivityTypeDeleted,
		fmt.Sprintf("deleted task %q", title), actor, nil)
}
