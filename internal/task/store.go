package task

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// maxIDAttempts bounds how often Add redraws an id that is already taken.
const maxIDAttempts = 8

// Listener receives every snapshot the store publishes.
type Listener func(*Snapshot)

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithClock replaces time.Now for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store owns the canonical task sequence. It is not safe for concurrent use;
// callers serialize access the way a UI event loop does.
type Store struct {
	current   *Snapshot
	listeners []*subscription
	newID     func() string
	now       func() time.Time
}

type subscription struct {
	fn Listener
}

// NewStore creates a store seeded with initial. Records without an id, with
// a blank title, or repeating an earlier id are dropped.
func NewStore(initial []Task, opts ...Option) *Store {
	s := &Store{
		current: emptySnapshot,
		newID:   uuid.NewString,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	seen := make(map[string]bool, len(initial))
	tasks := make([]Task, 0, len(initial))
	for _, t := range initial {
		title, ok := NormalizeTitle(t.Title)
		if t.ID == "" || !ok || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		t.Title = title
		tasks = append(tasks, t)
	}
	if len(tasks) > 0 {
		s.current = &Snapshot{tasks: tasks}
	}
	return s
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() *Snapshot {
	return s.current
}

// Subscribe registers fn for every future change. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	sub := &subscription{fn: fn}
	s.listeners = append(s.listeners, sub)
	return func() {
		s.listeners = slices.DeleteFunc(s.listeners, func(l *subscription) bool { return l == sub })
	}
}

// Add appends a new task. Blank titles are ignored.
func (s *Store) Add(title string) *Snapshot {
	title, ok := NormalizeTitle(title)
	if !ok {
		return s.current
	}

	t := Task{
		ID:        s.uniqueID(),
		Title:     title,
		Completed: false,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}

	tasks := make([]Task, 0, s.current.Len()+1)
	tasks = append(tasks, s.current.tasks...)
	tasks = append(tasks, t)
	return s.publish(tasks)
}

// Toggle flips the completed flag of the task with the given id.
func (s *Store) Toggle(id string) *Snapshot {
	i := s.current.index(id)
	if i < 0 {
		return s.current
	}
	tasks := slices.Clone(s.current.tasks)
	tasks[i].Completed = !tasks[i].Completed
	return s.publish(tasks)
}

// Delete removes the task with the given id.
func (s *Store) Delete(id string) *Snapshot {
	i := s.current.index(id)
	if i < 0 {
		return s.current
	}
	tasks := make([]Task, 0, s.current.Len()-1)
	tasks = append(tasks, s.current.tasks[:i]...)
	tasks = append(tasks, s.current.tasks[i+1:]...)
	return s.publish(tasks)
}

// Update replaces the title of the task with the given id. Blank titles are
// ignored.
func (s *Store) Update(id, title string) *Snapshot {
	title, ok := NormalizeTitle(title)
	if !ok {
		return s.current
	}
	i := s.current.index(id)
	if i < 0 || s.current.tasks[i].Title == title {
		return s.current
	}
	tasks := slices.Clone(s.current.tasks)
	tasks[i].Title = title
	return s.publish(tasks)
}

// ClearCompleted removes every completed task, keeping the rest in order.
func (s *Store) ClearCompleted() *Snapshot {
	if !s.current.HasCompleted() {
		return s.current
	}
	return s.publish(Select(s.current.tasks, FilterActive))
}

func (s *Store) publish(tasks []Task) *Snapshot {
	s.current = s.current.next(tasks)
	// Listeners may unsubscribe while being notified.
	for _, l := range slices.Clone(s.listeners) {
		l.fn(s.current)
	}
	return s.current
}

func (s *Store) uniqueID() string {
	var id string
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id = s.newID()
		if id != "" && s.current.index(id) < 0 {
			return id
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	base := id
	for n := 2; s.current.index(id) >= 0; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}
