package board_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synergysphere/synergyboard/internal/board"
	"github.com/synergysphere/synergyboard/internal/domain"
)

func titles(tasks []*domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestSort_ByPriority(t *testing.T) {
	// Scenario: priorities [low, high, medium], no due dates.
	tasks := []*domain.Task{
		makeTask("low", func(t *domain.Task) { t.Priority = domain.TaskPriorityLow }),
		makeTask("high", func(t *domain.Task) { t.Priority = domain.TaskPriorityHigh }),
		makeTask("medium", func(t *domain.Task) { t.Priority = domain.TaskPriorityMedium }),
	}

	got := board.Sort(tasks, board.SortByPriority, resolveNames)
	assert.Equal(t, []string{"high", "medium", "low"}, titles(got))
}

func TestSort_ByPriorityTieBreaksOnDueDate(t *testing.T) {
	tasks := []*domain.Task{
		makeTask("high undated", func(t *domain.Task) { t.Priority = domain.TaskPriorityHigh }),
		makeTask("high later", func(t *domain.Task) {
			t.Priority = domain.TaskPriorityHigh
			t.DueDate = day(5)
		}),
		makeTask("high sooner", func(t *domain.Task) {
			t.Priority = domain.TaskPriorityHigh
			t.DueDate = day(1)
		}),
	}

	got := board.Sort(tasks, board.SortByPriority, resolveNames)
	assert.Equal(t, []string{"high sooner", "high later", "high undated"}, titles(got))
}

func TestSort_ByDueDateNilSortsLast(t *testing.T) {
	tasks := []*domain.Task{
		makeTask("undated"),
		makeTask("tomorrow", func(t *domain.Task) { t.DueDate = day(1) }),
		makeTask("yesterday", func(t *domain.Task) { t.DueDate = day(-1) }),
	}

	got := board.Sort(tasks, board.SortByDueDate, resolveNames)
	assert.Equal(t, []string{"yesterday", "tomorrow", "undated"}, titles(got))
}

func TestSort_ByAssigneeUsesUnassignedLiteral(t *testing.T) {
	tasks := []*domain.Task{
		makeTask("ravi's", func(t *domain.Task) { t.AssigneeID = strptr("m-ravi") }),
		makeTask("nobody's"),
		makeTask("jane's", func(t *domain.Task) { t.AssigneeID = strptr("m-jane") }),
	}

	// "Jane Cooper" < "Ravi Patel" < "Unassigned"
	got := board.Sort(tasks, board.SortByAssignee, resolveNames)
	assert.Equal(t, []string{"jane's", "ravi's", "nobody's"}, titles(got))
}

func TestSort_ByCreatedDateMostRecentFirst(t *testing.T) {
	tasks := []*domain.Task{
		makeTask("old", func(t *domain.Task) { t.CreatedAt = testNow.Add(-48 * time.Hour) }),
		makeTask("new", func(t *domain.Task) { t.CreatedAt = testNow }),
		makeTask("middle", func(t *domain.Task) { t.CreatedAt = testNow.Add(-24 * time.Hour) }),
	}

	got := board.Sort(tasks, board.SortByCreatedDate, resolveNames)
	assert.Equal(t, []string{"new", "middle", "old"}, titles(got))
}

func TestSort_ByTitleIsInputOrderIndependent(t *testing.T) {
	a := makeTask("API work")
	b := makeTask("Design UI")
	c := makeTask("Write docs")

	forward := board.Sort([]*domain.Task{a, b, c}, board.SortByTitle, resolveNames)
	reversed := board.Sort([]*domain.Task{c, b, a}, board.SortByTitle, resolveNames)
	assert.Equal(t, titles(forward), titles(reversed))
	assert.Equal(t, []string{"API work", "Design UI", "Write docs"}, titles(forward))
}

func TestSort_UnknownKeyPreservesInputOrder(t *testing.T) {
	tasks := []*domain.Task{makeTask("c"), makeTask("a"), makeTask("b")}

	got := board.Sort(tasks, board.SortKey("bogus"), resolveNames)
	assert.Equal(t, []string{"c", "a", "b"}, titles(got))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	tasks := []*domain.Task{makeTask("b"), makeTask("a")}

	got := board.Sort(tasks, board.SortByTitle, resolveNames)
	require.Equal(t, []string{"a", "b"}, titles(got))
	assert.Equal(t, []string{"b", "a"}, titles(tasks))
}

func TestSort_StableOnEqualKeys(t *testing.T) {
	first := makeTask("first", func(t *domain.Task) { t.Priority = domain.TaskPriorityMedium })
	second := makeTask("second", func(t *domain.Task) { t.Priority = domain.TaskPriorityMedium })
	third := makeTask("third", func(t *domain.Task) { t.Priority = domain.TaskPriorityMedium })

	got := board.Sort([]*domain.Task{first, second, third}, board.SortByPriority, resolveNames)
	assert.Equal(t, []string{"first", "second", "third"}, titles(got))
}

func TestSortKey_IsValid(t *testing.T) {
	for _, key := range []board.SortKey{
		board.SortByDueDate, board.SortByPriority, board.SortByAssignee,
		board.SortByCreatedDate, board.SortByTitle,
	} {
		assert.True(t, key.IsValid(), string(key))
	}
	assert.False(t, board.SortKey("bogus").IsValid())
	assert.False(t, board.SortKey("").IsValid())
}
