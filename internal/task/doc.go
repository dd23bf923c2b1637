// Package task holds the task list state container and its derived views.
//
// A Store owns the ordered task sequence. Every mutation goes through one of
// five operations:
//
//	Add(title)         append a new task (blank titles are ignored)
//	Toggle(id)         flip the completed flag
//	Delete(id)         remove a task
//	Update(id, title)  replace a title (blank titles are ignored)
//	ClearCompleted()   remove every completed task
//
// Operations never fail. Unknown ids and blank titles are no-ops that return
// the current snapshot untouched.
//
// # Snapshots
//
// Each real change produces a new immutable *Snapshot with a higher Version.
// Observers registered with Store.Subscribe receive the new snapshot
// synchronously, in registration order. Persistence is one such observer.
//
// # Filters
//
// Select derives the visible subset for a Filter:
//
//   - "all": every task
//   - "active": tasks with completed = false
//   - "completed": tasks with completed = true
//
// Any other value is treated as "all". Insertion order is preserved in every
// case.
package task
