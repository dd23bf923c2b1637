package task

import (
	"fmt"
	"math/rand"
	"testing"
	"time"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 45, 123456789, time.UTC)
}

func newTestStore(initial []Task) *Store {
	return NewStore(initial, WithIDGenerator(sequentialIDs()), WithClock(fixedClock))
}

func TestAdd(t *testing.T) {
	t.Run("adds task to empty store", func(t *testing.T) {
		s := newTestStore(nil)
		snap := s.Add("Buy milk")

		if snap.Len() != 1 {
			t.Fatalf("Len: got %d, want 1", snap.Len())
		}
		got := snap.Tasks()[0]
		if got.Title != "Buy milk" {
			t.Errorf("Title: got %q, want %q", got.Title, "Buy milk")
		}
		if got.Completed {
			t.Error("expected new task to be active")
		}
		if got.ID == "" {
			t.Error("expected ID to be set")
		}
		want := fixedClock().Truncate(time.Millisecond)
		if !got.CreatedAt.Equal(want) {
			t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, want)
		}
	})

	t.Run("trims title", func(t *testing.T) {
		s := newTestStore(nil)
		snap := s.Add("  Walk dog \n")
		if got := snap.Tasks()[0].Title; got != "Walk dog" {
			t.Errorf("Title: got %q, want %q", got, "Walk dog")
		}
	})

	t.Run("blank titles are ignored", func(t *testing.T) {
		s := newTestStore(nil)
		before := s.Snapshot()
		for _, title := range []string{"", "   ", "\t\n"} {
			if snap := s.Add(title); snap != before {
				t.Errorf("Add(%q): expected unchanged snapshot", title)
			}
		}
		if s.Snapshot().Len() != 0 {
			t.Errorf("Len: got %d, want 0", s.Snapshot().Len())
		}
	})

	t.Run("appends in insertion order", func(t *testing.T) {
		s := newTestStore(nil)
		s.Add("A")
		s.Add("B")
		snap := s.Add("C")

		var titles []string
		for _, task := range snap.Tasks() {
			titles = append(titles, task.Title)
		}
		if fmt.Sprint(titles) != "[A B C]" {
			t.Errorf("order: got %v, want [A B C]", titles)
		}
	})

	t.Run("redraws colliding ids", func(t *testing.T) {
		s := NewStore([]Task{{ID: "dup", Title: "existing"}},
			WithIDGenerator(func() string { return "dup" }))
		snap := s.Add("new")
		tasks := snap.Tasks()
		if tasks[1].ID == "dup" {
			t.Fatalf("expected a fresh id, got %q", tasks[1].ID)
		}
		if tasks[1].ID != "dup-2" {
			t.Errorf("ID: got %q, want dup-2", tasks[1].ID)
		}
	})
}

func TestToggle(t *testing.T) {
	s := newTestStore(nil)
	id := s.Add("X").Tasks()[0].ID

	snap := s.Toggle(id)
	if task, _ := snap.Find(id); !task.Completed {
		t.Fatal("expected task to be completed after toggle")
	}
	snap = s.Toggle(id)
	if task, _ := snap.Find(id); task.Completed {
		t.Error("expected double toggle to restore active state")
	}

	t.Run("unknown id is a no-op", func(t *testing.T) {
		before := s.Snapshot()
		if s.Toggle("missing") != before {
			t.Error("expected unchanged snapshot")
		}
	})
}

func TestDelete(t *testing.T) {
	s := newTestStore(nil)
	s.Add("A")
	b := s.Add("B").Tasks()[1].ID
	s.Add("C")

	snap := s.Delete(b)
	if snap.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", snap.Len())
	}
	if _, ok := snap.Find(b); ok {
		t.Error("expected deleted task to be gone")
	}
	tasks := snap.Tasks()
	if tasks[0].Title != "A" || tasks[1].Title != "C" {
		t.Errorf("order: got %q,%q want A,C", tasks[0].Title, tasks[1].Title)
	}

	before := s.Snapshot()
	if s.Delete(b) != before {
		t.Error("expected deleting twice to be a no-op")
	}
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		want    string
		changed bool
	}{
		{"trims replacement", "  Y  ", "Y", true},
		{"empty is ignored", "", "X", false},
		{"whitespace is ignored", "   ", "X", false},
		{"same title is a no-op", "X", "X", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(nil)
			before := s.Add("X")
			id := before.Tasks()[0].ID

			snap := s.Update(id, tt.title)
			task, _ := snap.Find(id)
			if task.Title != tt.want {
				t.Errorf("Title: got %q, want %q", task.Title, tt.want)
			}
			if changed := snap != before; changed != tt.changed {
				t.Errorf("changed: got %v, want %v", changed, tt.changed)
			}
		})
	}

	t.Run("unknown id is a no-op", func(t *testing.T) {
		s := newTestStore(nil)
		before := s.Add("X")
		if s.Update("missing", "Y") != before {
			t.Error("expected unchanged snapshot")
		}
	})
}

func TestClearCompleted(t *testing.T) {
	s := newTestStore(nil)
	s.Add("X")
	y := s.Add("Y").Tasks()[1].ID
	s.Add("Z")
	s.Toggle(y)

	snap := s.ClearCompleted()
	tasks := snap.Tasks()
	if len(tasks) != 2 || tasks[0].Title != "X" || tasks[1].Title != "Z" {
		t.Fatalf("got %+v, want X and Z", tasks)
	}

	if s.ClearCompleted() != snap {
		t.Error("expected clear with nothing completed to be a no-op")
	}
}

func TestSnapshotsAreImmutable(t *testing.T) {
	s := newTestStore(nil)
	first := s.Add("A")
	id := first.Tasks()[0].ID

	s.Toggle(id)
	s.Update(id, "B")

	task, _ := first.Find(id)
	if task.Completed || task.Title != "A" {
		t.Errorf("old snapshot changed: %+v", task)
	}

	copied := s.Snapshot().Tasks()
	copied[0].Title = "mutated"
	if got, _ := s.Snapshot().Find(id); got.Title != "B" {
		t.Errorf("Tasks() leaked internal slice: title %q", got.Title)
	}
}

func TestSubscribe(t *testing.T) {
	s := newTestStore(nil)
	var versions []uint64
	cancel := s.Subscribe(func(snap *Snapshot) {
		versions = append(versions, snap.Version())
	})

	id := s.Add("A").Tasks()[0].ID
	s.Add("")
	s.Toggle("missing")
	s.Toggle(id)

	if fmt.Sprint(versions) != "[1 2]" {
		t.Errorf("versions: got %v, want [1 2]", versions)
	}

	cancel()
	s.Delete(id)
	if len(versions) != 2 {
		t.Errorf("expected no notification after cancel, got %v", versions)
	}
}

func TestSubscribeOrder(t *testing.T) {
	s := newTestStore(nil)
	var calls []string
	s.Subscribe(func(*Snapshot) { calls = append(calls, "first") })
	var cancelSecond func()
	cancelSecond = s.Subscribe(func(*Snapshot) {
		calls = append(calls, "second")
		cancelSecond()
	})
	s.Subscribe(func(*Snapshot) { calls = append(calls, "third") })

	s.Add("A")
	s.Add("B")

	want := "[first second third first third]"
	if fmt.Sprint(calls) != want {
		t.Errorf("calls: got %v, want %s", calls, want)
	}
}

func TestNewStoreDropsInvalidRecords(t *testing.T) {
	created := fixedClock()
	s := NewStore([]Task{
		{ID: "a", Title: "  keep  ", CreatedAt: created},
		{ID: "", Title: "no id"},
		{ID: "b", Title: "   "},
		{ID: "a", Title: "duplicate"},
		{ID: "c", Title: "done", Completed: true},
	})

	tasks := s.Snapshot().Tasks()
	if len(tasks) != 2 {
		t.Fatalf("Len: got %d, want 2 (%+v)", len(tasks), tasks)
	}
	if tasks[0].ID != "a" || tasks[0].Title != "keep" {
		t.Errorf("first: got %+v", tasks[0])
	}
	if tasks[1].ID != "c" || !tasks[1].Completed {
		t.Errorf("second: got %+v", tasks[1])
	}
}

func TestIDsStayUnique(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := NewStore(nil)

	for step := 0; step < 500; step++ {
		tasks := s.Snapshot().Tasks()
		pick := func() string {
			if len(tasks) == 0 {
				return "missing"
			}
			return tasks[rng.Intn(len(tasks))].ID
		}
		switch rng.Intn(6) {
		case 0, 1:
			s.Add(fmt.Sprintf("task %d", step))
		case 2:
			s.Toggle(pick())
		case 3:
			s.Delete(pick())
		case 4:
			s.Update(pick(), fmt.Sprintf("renamed %d", step))
		case 5:
			s.ClearCompleted()
		}

		seen := make(map[string]bool)
		for _, task := range s.Snapshot().Tasks() {
			if seen[task.ID] {
				t.Fatalf("step %d: duplicate id %q", step, task.ID)
			}
			seen[task.ID] = true
		}
	}
}
