package model

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// TaskKind is the closed set of task variants.
type TaskKind string

const (
	TaskKindTodo     TaskKind = "T"
	TaskKindDeadline TaskKind = "D"
	TaskKindEvent    TaskKind = "E"
)

const (
	// RecordSeparator is the field separator of the persisted task records,
	// task text fields can't contain it.
	RecordSeparator = "|"
	// DisplayDateLayout is the layout used to render deadline dates (e.g. "Oct 1 2025").
	DisplayDateLayout = "Jan 2 2006"
	// ISODateLayout is the layout used to store dates.
	ISODateLayout = "2006-01-02"

	// MinDateYear and MaxDateYear bound the years a date can have, the stored
	// layout only holds 4 digit years.
	MinDateYear = 1
	MaxDateYear = 9999
)

// DeadlineInfo is the payload of a deadline task.
type DeadlineInfo struct {
	By time.Time
}

// EventInfo is the payload of an event task.
type EventInfo struct {
	From string
	To   string
}

// Task is a tagged variant, Kind selects which payload is set: none for todos,
// Deadline for deadlines and Event for events.
type Task struct {
	Kind        TaskKind
	Description string
	Done        bool
	Deadline    *DeadlineInfo
	Event       *EventInfo
}

// NewTodo returns a new plain todo task.
func NewTodo(description string) (Task, error) {
	desc, err := cleanDescription(description, "todo")
	if err != nil {
		return Task{}, err
	}

	return Task{Kind: TaskKindTodo, Description: desc}, nil
}

// NewDeadline returns a new deadline task due on the by calendar date.
func NewDeadline(description string, by time.Time) (Task, error) {
	desc, err := cleanDescription(description, "deadline")
	if err != nil {
		return Task{}, err
	}
	if !ValidDate(by) {
		return Task{}, &DateFormatError{Text: by.Format(ISODateLayout)}
	}

	return Task{
		Kind:        TaskKindDeadline,
		Description: desc,
		Deadline:    &DeadlineInfo{By: CalendarDate(by)},
	}, nil
}

// NewEvent returns a new event task. From and to are free text, only required
// to be non blank.
func NewEvent(description, from, to string) (Task, error) {
	desc, err := cleanDescription(description, "event")
	if err != nil {
		return Task{}, err
	}

	from = strings.TrimSpace(from)
	if from == "" {
		return Task{}, &MissingArgumentError{Need: "/from <start>"}
	}
	if err := checkText(from, "event start"); err != nil {
		return Task{}, err
	}

	to = strings.TrimSpace(to)
	if to == "" {
		return Task{}, &MissingArgumentError{Need: "/to <end>"}
	}
	if err := checkText(to, "event end"); err != nil {
		return Task{}, err
	}

	return Task{
		Kind:        TaskKindEvent,
		Description: desc,
		Event:       &EventInfo{From: from, To: to},
	}, nil
}

func cleanDescription(description, what string) (string, error) {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return "", &EmptyDescriptionError{What: what}
	}
	if err := checkText(desc, what+" description"); err != nil {
		return "", err
	}

	return desc, nil
}

// checkText rejects the characters that would break a stored record: the
// record separator and control characters (line breaks included).
func checkText(s, field string) error {
	if strings.Contains(s, RecordSeparator) {
		return &ReservedCharacterError{Field: field}
	}
	if strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return &ReservedCharacterError{Field: field, Control: true}
	}
	return nil
}

// ValidDate returns true when d has a year that can be stored.
func ValidDate(d time.Time) bool {
	return !d.IsZero() && d.Year() >= MinDateYear && d.Year() <= MaxDateYear
}

// Validate checks the task is consistent: known kind, description set and only
// the payload of its kind present.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("description is required: %w", ErrNotValid)
	}
	if err := checkText(t.Description, "description"); err != nil {
		return fmt.Errorf("%s: %w", err, ErrNotValid)
	}

	switch t.Kind {
	case TaskKindTodo:
		if t.Deadline != nil || t.Event != nil {
			return fmt.Errorf("todo can't have a payload: %w", ErrNotValid)
		}
	case TaskKindDeadline:
		if t.Deadline == nil || t.Event != nil {
			return fmt.Errorf("deadline requires only a deadline payload: %w", ErrNotValid)
		}
		if !ValidDate(t.Deadline.By) {
			return fmt.Errorf("deadline date is required within years %d-%d: %w", MinDateYear, MaxDateYear, ErrNotValid)
		}
	case TaskKindEvent:
		if t.Event == nil || t.Deadline != nil {
			return fmt.Errorf("event requires only an event payload: %w", ErrNotValid)
		}
		if strings.TrimSpace(t.Event.From) == "" || strings.TrimSpace(t.Event.To) == "" {
			return fmt.Errorf("event start and end are required: %w", ErrNotValid)
		}
		if err := checkText(t.Event.From, "event start"); err != nil {
			return fmt.Errorf("%s: %w", err, ErrNotValid)
		}
		if err := checkText(t.Event.To, "event end"); err != nil {
			return fmt.Errorf("%s: %w", err, ErrNotValid)
		}
	default:
		return fmt.Errorf("unknown task kind %q: %w", t.Kind, ErrNotValid)
	}

	return nil
}

// MarkDone marks the task as done.
func (t *Task) MarkDone() { t.Done = true }

// MarkNotDone marks the task as not done.
func (t *Task) MarkNotDone() { t.Done = false }

// Matches returns true when the description contains keyword, ignoring case.
func (t Task) Matches(keyword string) bool {
	if t.Description == "" {
		return false
	}
	return strings.Contains(strings.ToLower(t.Description), strings.ToLower(keyword))
}

// StatusIcon returns "X" for done tasks and a space otherwise.
func (t Task) StatusIcon() string {
	if t.Done {
		return "X"
	}
	return " "
}

// Render returns the canonical display form of the task, e.g:
//
//	[D][X] return book (by: Oct 1 2025)
func (t Task) Render() string {
	s := fmt.Sprintf("[%s][%s] %s", t.Kind, t.StatusIcon(), t.Description)

	switch t.Kind {
	case TaskKindDeadline:
		if t.Deadline != nil {
			s += fmt.Sprintf(" (by: %s)", t.Deadline.By.Format(DisplayDateLayout))
		}
	case TaskKindEvent:
		if t.Event != nil {
			s += fmt.Sprintf(" (from: %s to: %s)", t.Event.From, t.Event.To)
		}
	}

	return s
}

// String satisfies fmt.Stringer.
func (t Task) String() string { return t.Render() }

// Copy returns a deep copy of the task.
func (t Task) Copy() Task {
	c := t
	if t.Deadline != nil {
		d := *t.Deadline
		c.Deadline = &d
	}
	if t.Event != nil {
		e := *t.Event
		c.Event = &e
	}
	return c
}

// CalendarDate strips the clock part of t, keeping its calendar day as UTC midnight.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
