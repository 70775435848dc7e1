// Package tasklist has the ordered task container of a session. All the
// indexes of its API are the 1-based ones shown to the user.
package tasklist

import (
	"github.com/slok/jack/internal/model"
)

// Match is a task found by a search, Index is its position in the search
// result (1..k), not in the list.
type Match struct {
	Index int
	Task  model.Task
}

// List is an ordered task list, insertion order is the display order.
// It owns its tasks, tasks get in and out as copies.
type List struct {
	tasks []*model.Task
}

// New returns a new list that adopts the received tasks in order.
func New(tasks ...model.Task) *List {
	l := &List{tasks: make([]*model.Task, 0, len(tasks))}
	for _, t := range tasks {
		l.Add(t)
	}
	return l
}

// Add appends a task and returns the new list size.
func (l *List) Add(t model.Task) int {
	task := t.Copy()
	l.tasks = append(l.tasks, &task)
	return len(l.tasks)
}

// Size returns the number of tasks.
func (l *List) Size() int { return len(l.tasks) }

// Valid returns true when i is a valid 1-based index.
func (l *List) Valid(i int) bool { return i >= 1 && i <= len(l.tasks) }

// Get returns the task at the 1-based index i, the returned task is owned by
// the list and can be mutated in place. An index out of range returns a
// *model.InvalidIndexError without Action, the list doesn't know the command.
func (l *List) Get(i int) (*model.Task, error) {
	if !l.Valid(i) {
		return nil, &model.InvalidIndexError{}
	}
	return l.tasks[i-1], nil
}

// Remove removes and returns the task at the 1-based index i. Index errors
// are the same as Get.
func (l *List) Remove(i int) (model.Task, error) {
	if !l.Valid(i) {
		return model.Task{}, &model.InvalidIndexError{}
	}

	removed := l.tasks[i-1]
	l.tasks = append(l.tasks[:i-1], l.tasks[i:]...)
	return *removed, nil
}

// Find returns the tasks whose description contains keyword ignoring case,
// in list order and renumbered from 1. No matches is an empty result.
func (l *List) Find(keyword string) []Match {
	matches := []Match{}
	for _, t := range l.tasks {
		if t.Matches(keyword) {
			matches = append(matches, Match{Index: len(matches) + 1, Task: t.Copy()})
		}
	}
	return matches
}

// Snapshot returns a read only ordered view of the tasks.
func (l *List) Snapshot() []model.Task {
	tasks := make([]model.Task, 0, len(l.tasks))
	for _, t := range l.tasks {
		tasks = append(tasks, t.Copy())
	}
	return tasks
}
