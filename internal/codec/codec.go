// Package codec converts tasks to and from their persisted record lines:
//
//	T | 1 | read book
//	D | 0 | return book | 2019-10-15
//	E | 0 | project meeting | Mon 2pm | 4pm
package codec

import (
	"fmt"
	"strings"
	"time"

	"github.com/slok/jack/internal/model"
)

const (
	fieldSeparator = " " + model.RecordSeparator + " "

	flagDone    = "1"
	flagNotDone = "0"
)

// Encode returns one record line per task, in order. Dates are always written
// in ISO format.
func Encode(tasks []model.Task) []string {
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		lines = append(lines, EncodeTask(t))
	}
	return lines
}

// EncodeTask returns the record line of a single task.
func EncodeTask(t model.Task) string {
	done := flagNotDone
	if t.Done {
		done = flagDone
	}

	fields := []string{string(t.Kind), done, t.Description}
	switch t.Kind {
	case model.TaskKindDeadline:
		if t.Deadline != nil {
			fields = append(fields, t.Deadline.By.Format(model.ISODateLayout))
		}
	case model.TaskKindEvent:
		if t.Event != nil {
			fields = append(fields, t.Event.From, t.Event.To)
		}
	}

	return strings.Join(fields, fieldSeparator)
}

// Decode returns the tasks of the record lines. Blank lines are ignored and
// malformed records are skipped, their 1-based line numbers are returned in
// skipped so callers can report them.
func Decode(lines []string) (tasks []model.Task, skipped []int) {
	tasks = []model.Task{}
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		t, err := DecodeTask(line)
		if err != nil {
			skipped = append(skipped, i+1)
			continue
		}
		tasks = append(tasks, t)
	}

	return tasks, skipped
}

// DecodeTask returns the task of a single record line.
func DecodeTask(line string) (model.Task, error) {
	fields := strings.Split(strings.TrimSpace(line), model.RecordSeparator)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < 3 {
		return model.Task{}, fmt.Errorf("expected at least 3 fields, got %d: %w", len(fields), model.ErrNotValid)
	}

	var done bool
	switch fields[1] {
	case flagDone:
		done = true
	case flagNotDone:
	default:
		return model.Task{}, fmt.Errorf("unknown done flag %q: %w", fields[1], model.ErrNotValid)
	}

	t, err := decodeKind(model.TaskKind(fields[0]), fields[2:])
	if err != nil {
		return model.Task{}, err
	}
	t.Done = done

	return t, nil
}

func decodeKind(kind model.TaskKind, fields []string) (model.Task, error) {
	switch kind {
	case model.TaskKindTodo:
		if len(fields) != 1 {
			return model.Task{}, fmt.Errorf("todo expects 3 fields: %w", model.ErrNotValid)
		}
		return model.NewTodo(fields[0])

	case model.TaskKindDeadline:
		if len(fields) != 2 {
			return model.Task{}, fmt.Errorf("deadline expects 4 fields: %w", model.ErrNotValid)
		}
		by, err := time.Parse(model.ISODateLayout, fields[1])
		if err != nil {
			return model.Task{}, fmt.Errorf("invalid deadline date %q: %w", fields[1], model.ErrNotValid)
		}
		return model.NewDeadline(fields[0], by)

	case model.TaskKindEvent:
		if len(fields) != 3 {
			return model.Task{}, fmt.Errorf("event expects 5 fields: %w", model.ErrNotValid)
		}
		return model.NewEvent(fields[0], fields[1], fields[2])
	}

	return model.Task{}, fmt.Errorf("unknown task kind %q: %w", kind, model.ErrNotValid)
}
