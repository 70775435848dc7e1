package lib

import (
	"time"

	"github.com/slok/jack/internal/model"
)

// Backend selects where the task list is persisted.
type Backend string

const (
	// BackendFile keeps the tasks in a plain text file, one record per line.
	BackendFile Backend = "file"
	// BackendSQLite keeps the tasks in a SQLite database.
	BackendSQLite Backend = "sqlite"
)

// TaskKind identifies the kind of a task.
type TaskKind string

const (
	// TaskKindTodo is a task with only a description.
	TaskKindTodo TaskKind = "T"
	// TaskKindDeadline is a task due by a calendar date.
	TaskKindDeadline TaskKind = "D"
	// TaskKindEvent is a task spanning a free text start and end.
	TaskKindEvent TaskKind = "E"
)

// Task is a read-only copy of a task in the session list.
type Task struct {
	// Kind is the task kind.
	Kind TaskKind
	// Description is the trimmed task description.
	Description string
	// Done is true when the task is marked as done.
	Done bool
	// By is the deadline day (UTC midnight). Only set for deadlines.
	By *time.Time
	// From is the event start. Only set for events.
	From string
	// To is the event end. Only set for events.
	To string
	// Rendered is the task as shown to the user, e.g. "[D][ ] return book (by: Oct 15 2019)".
	Rendered string
}

// Response is the outcome of a submitted command line.
type Response struct {
	// Lines are the lines to show to the user. Empty for a blank input line.
	Lines []string
	// Exit is true when the user asked to end the session.
	Exit bool
}

// Errors returned by [Client.Submit]. User input errors can be matched with
// [errors.Is] against these sentinels or with [errors.As] against the typed
// errors, their message is ready to be shown.
var (
	// ErrEmptyDescription is returned when a description or search keyword is blank.
	ErrEmptyDescription = model.ErrEmptyDescription
	// ErrMissingArgument is returned when a required part like "/by" is missing.
	ErrMissingArgument = model.ErrMissingArgument
	// ErrInvalidIndex is returned when the task number is not a number or out of range.
	ErrInvalidIndex = model.ErrInvalidIndex
	// ErrUnknownCommand is returned when the command word is not recognised.
	ErrUnknownCommand = model.ErrUnknownCommand
	// ErrDateFormat is returned when a date can't be understood.
	ErrDateFormat = model.ErrDateFormat
	// ErrReservedCharacter is returned when a text contains the record separator "|".
	ErrReservedCharacter = model.ErrReservedCharacter
	// ErrInternal marks unexpected failures not caused by the input.
	ErrInternal = model.ErrInternal
	// ErrNotValid is returned for invalid client configuration.
	ErrNotValid = model.ErrNotValid
)

type (
	EmptyDescriptionError  = model.EmptyDescriptionError
	MissingArgumentError   = model.MissingArgumentError
	InvalidIndexError      = model.InvalidIndexError
	UnknownCommandError    = model.UnknownCommandError
	DateFormatError        = model.DateFormatError
	ReservedCharacterError = model.ReservedCharacterError
)

// IsUserError returns true when err was caused by the submitted input.
func IsUserError(err error) bool { return model.IsUserError(err) }

func fromInternalTask(t model.Task) Task {
	task := Task{
		Kind:        TaskKind(t.Kind),
		Description: t.Description,
		Done:        t.Done,
		Rendered:    t.Render(),
	}

	if t.Deadline != nil {
		by := t.Deadline.By
		task.By = &by
	}
	if t.Event != nil {
		task.From = t.Event.From
		task.To = t.Event.To
	}

	return task
}

func fromInternalTaskList(ts []model.Task) []Task {
	tasks := make([]Task, 0, len(ts))
	for _, t := range ts {
		tasks = append(tasks, fromInternalTask(t))
	}
	return tasks
}
