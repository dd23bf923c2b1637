package task

import "strings"

// Filter selects a subset of tasks for display.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists the valid filters in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// ParseFilter maps user input to a Filter. Unrecognized values become FilterAll.
func ParseFilter(s string) Filter {
	if f := Filter(strings.ToLower(strings.TrimSpace(s))); f.Valid() {
		return f
	}
	return FilterAll
}

// Valid reports whether f is one of the known filters.
func (f Filter) Valid() bool {
	return f == FilterAll || f == FilterActive || f == FilterCompleted
}

// Next cycles all -> active -> completed -> all.
func (f Filter) Next() Filter {
	switch f {
	case FilterActive:
		return FilterCompleted
	case FilterCompleted:
		return FilterAll
	default:
		return FilterActive
	}
}

// Label returns the title-cased filter name.
func (f Filter) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// EmptyMessage is shown when the filter selects nothing.
func (f Filter) EmptyMessage() string {
	switch f {
	case FilterActive:
		return "No active tasks."
	case FilterCompleted:
		return "No completed tasks."
	default:
		return "No tasks yet. Add a task to get started!"
	}
}

// Select returns the tasks matching f in their original order. The input is
// never modified; FilterAll returns a copy of the whole sequence. Any mode
// other than the exact active or completed values selects everything.
func Select(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	switch f {
	case FilterActive:
		for _, t := range tasks {
			if !t.Completed {
				out = append(out, t)
			}
		}
	case FilterCompleted:
		for _, t := range tasks {
			if t.Completed {
				out = append(out, t)
			}
		}
	default:
		out = append(out, tasks...)
	}
	return out
}
