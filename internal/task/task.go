package task

import (
	"slices"
	"strings"
	"time"
)

// Task represents a single entry in the task list.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// NormalizeTitle trims surrounding whitespace from a title. The second
// return value is false when nothing is left.
func NormalizeTitle(title string) (string, bool) {
	trimmed := strings.TrimSpace(title)
	return trimmed, trimmed != ""
}

// Counts summarizes a task sequence.
type Counts struct {
	Total     int
	Active    int
	Completed int
}

// CountTasks tallies active and completed tasks.
func CountTasks(tasks []Task) Counts {
	c := Counts{Total: len(tasks)}
	for i := range tasks {
		if tasks[i].Completed {
			c.Completed++
		} else {
			c.Active++
		}
	}
	return c
}

// Snapshot is an immutable view of the task sequence at one point in time.
// A new Snapshot is created for every change; an unchanged store keeps
// returning the same pointer.
type Snapshot struct {
	version uint64
	tasks   []Task
}

var emptySnapshot = &Snapshot{}

// Version increases by one with every published change.
func (s *Snapshot) Version() uint64 {
	if s == nil {
		return 0
	}
	return s.version
}

// Tasks returns a copy of the tasks in insertion order.
func (s *Snapshot) Tasks() []Task {
	if s == nil || len(s.tasks) == 0 {
		return []Task{}
	}
	return slices.Clone(s.tasks)
}

// Len returns the number of tasks.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tasks)
}

// Find returns the task with the given id.
func (s *Snapshot) Find(id string) (Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// Counts returns the totals for the snapshot.
func (s *Snapshot) Counts() Counts {
	if s == nil {
		return Counts{}
	}
	return CountTasks(s.tasks)
}

// HasCompleted reports whether any task is completed.
func (s *Snapshot) HasCompleted() bool {
	if s == nil {
		return false
	}
	return slices.ContainsFunc(s.tasks, func(t Task) bool { return t.Completed })
}

// Select returns the tasks visible under the given filter.
func (s *Snapshot) Select(f Filter) []Task {
	if s == nil {
		return []Task{}
	}
	return Select(s.tasks, f)
}

func (s *Snapshot) index(id string) int {
	if s == nil || id == "" {
		return -1
	}
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

func (s *Snapshot) next(tasks []Task) *Snapshot {
	return &Snapshot{version: s.Version() + 1, tasks: tasks}
}
