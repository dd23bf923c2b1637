package task

import (
	"fmt"
	"testing"
)

func sampleTasks() []Task {
	return []Task{
		{ID: "1", Title: "one", Completed: false},
		{ID: "2", Title: "two", Completed: true},
		{ID: "3", Title: "three", Completed: false},
		{ID: "4", Title: "four", Completed: true},
	}
}

func ids(tasks []Task) string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return fmt.Sprint(out)
}

func TestSelect(t *testing.T) {
	tests := []struct {
		filter Filter
		want   string
	}{
		{FilterAll, "[1 2 3 4]"},
		{FilterActive, "[1 3]"},
		{FilterCompleted, "[2 4]"},
		{Filter("bogus"), "[1 2 3 4]"},
		{Filter(""), "[1 2 3 4]"},
		{Filter("Active"), "[1 2 3 4]"},
		{Filter(" active"), "[1 2 3 4]"},
		{Filter("COMPLETED"), "[1 2 3 4]"},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			if got := ids(Select(sampleTasks(), tt.filter)); got != tt.want {
				t.Errorf("Select(%q): got %s, want %s", tt.filter, got, tt.want)
			}
		})
	}
}

func TestSelectDoesNotAliasInput(t *testing.T) {
	tasks := sampleTasks()
	all := Select(tasks, FilterAll)
	all[0].Title = "changed"
	if tasks[0].Title != "one" {
		t.Error("Select(all) returned the input slice")
	}
}

func TestSelectPartitions(t *testing.T) {
	inputs := [][]Task{
		nil,
		sampleTasks(),
		{{ID: "a", Completed: true}},
		{{ID: "a"}, {ID: "b"}},
	}

	for i, tasks := range inputs {
		active := Select(tasks, FilterActive)
		completed := Select(tasks, FilterCompleted)

		if len(active)+len(completed) != len(tasks) {
			t.Errorf("case %d: %d active + %d completed != %d total", i, len(active), len(completed), len(tasks))
		}
		inActive := make(map[string]bool)
		for _, task := range active {
			inActive[task.ID] = true
		}
		for _, task := range completed {
			if inActive[task.ID] {
				t.Errorf("case %d: task %s in both subsets", i, task.ID)
			}
		}
	}
}

func TestScenarioToggleThenFilter(t *testing.T) {
	s := NewStore(nil, WithIDGenerator(sequentialIDs()))
	s.Add("A")
	s.Add("B")
	a := s.Snapshot().Tasks()[0].ID
	snap := s.Toggle(a)

	completed := snap.Select(FilterCompleted)
	if len(completed) != 1 || completed[0].Title != "A" {
		t.Errorf("completed: got %+v, want only A", completed)
	}
	active := snap.Select(FilterActive)
	if len(active) != 1 || active[0].Title != "B" {
		t.Errorf("active: got %+v, want only B", active)
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in   string
		want Filter
	}{
		{"all", FilterAll},
		{"active", FilterActive},
		{"completed", FilterCompleted},
		{" Active ", FilterActive},
		{"COMPLETED", FilterCompleted},
		{"done", FilterAll},
		{"", FilterAll},
	}

	for _, tt := range tests {
		if got := ParseFilter(tt.in); got != tt.want {
			t.Errorf("ParseFilter(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilterValid(t *testing.T) {
	for _, f := range Filters {
		if !f.Valid() {
			t.Errorf("%q: got invalid, want valid", f)
		}
	}
	for _, f := range []Filter{"", "Active", " active", "COMPLETED", "done"} {
		if f.Valid() {
			t.Errorf("%q: got valid, want invalid", f)
		}
	}
}

func TestUnrecognizedFilterActsAsAll(t *testing.T) {
	for _, f := range []Filter{"Active", " completed", "bogus"} {
		if got := f.Label(); got != "All" {
			t.Errorf("%q.Label(): got %q, want All", f, got)
		}
		if got := f.EmptyMessage(); got != FilterAll.EmptyMessage() {
			t.Errorf("%q.EmptyMessage(): got %q", f, got)
		}
		if got := f.Next(); got != FilterActive {
			t.Errorf("%q.Next(): got %q, want active", f, got)
		}
	}
}

func TestFilterNext(t *testing.T) {
	f := FilterAll
	var seen []Filter
	for i := 0; i < 4; i++ {
		f = f.Next()
		seen = append(seen, f)
	}
	if fmt.Sprint(seen) != "[active completed all active]" {
		t.Errorf("Next cycle: got %v", seen)
	}
}

func TestCounts(t *testing.T) {
	c := CountTasks(sampleTasks())
	if c.Total != 4 || c.Active != 2 || c.Completed != 2 {
		t.Errorf("CountTasks: got %+v", c)
	}

	var nilSnap *Snapshot
	if nilSnap.Counts() != (Counts{}) {
		t.Error("nil snapshot should count zero")
	}
	if nilSnap.HasCompleted() {
		t.Error("nil snapshot has no completed tasks")
	}
}
