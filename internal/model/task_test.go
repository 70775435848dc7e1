package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/jack/internal/model"
)

func TestNewTask(t *testing.T) {
	by := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		newTask   func() (model.Task, error)
		expRender string
		expErr    error
	}{
		"A todo should render its kind, status and trimmed description.": {
			newTask:   func() (model.Task, error) { return model.NewTodo("  read book  ") },
			expRender: "[T][ ] read book",
		},
		"A blank todo should fail.": {
			newTask: func() (model.Task, error) { return model.NewTodo("   ") },
			expErr:  model.ErrEmptyDescription,
		},
		"A deadline should render its date.": {
			newTask:   func() (model.Task, error) { return model.NewDeadline("buy milk", by) },
			expRender: "[D][ ] buy milk (by: Oct 1 2025)",
		},
		"A deadline should drop the clock part of the date.": {
			newTask: func() (model.Task, error) {
				return model.NewDeadline("buy milk", time.Date(2025, 10, 1, 23, 59, 0, 0, time.UTC))
			},
			expRender: "[D][ ] buy milk (by: Oct 1 2025)",
		},
		"A blank deadline should fail.": {
			newTask: func() (model.Task, error) { return model.NewDeadline("", by) },
			expErr:  model.ErrEmptyDescription,
		},
		"An event should render its range.": {
			newTask:   func() (model.Task, error) { return model.NewEvent("meeting", "Mon 2pm", "4pm") },
			expRender: "[E][ ] meeting (from: Mon 2pm to: 4pm)",
		},
		"An event without start should fail.": {
			newTask: func() (model.Task, error) { return model.NewEvent("meeting", " ", "4pm") },
			expErr:  model.ErrMissingArgument,
		},
		"An event without end should fail.": {
			newTask: func() (model.Task, error) { return model.NewEvent("meeting", "2pm", "") },
			expErr:  model.ErrMissingArgument,
		},
		"A description with the record separator should fail.": {
			newTask: func() (model.Task, error) { return model.NewTodo("a | b") },
			expErr:  model.ErrReservedCharacter,
		},
		"An event end with the record separator should fail.": {
			newTask: func() (model.Task, error) { return model.NewEvent("meeting", "2pm", "4|5pm") },
			expErr:  model.ErrReservedCharacter,
		},
		"A description with a line break should fail.": {
			newTask: func() (model.Task, error) { return model.NewTodo("first\nsecond") },
			expErr:  model.ErrReservedCharacter,
		},
		"A description with a carriage return should fail.": {
			newTask: func() (model.Task, error) { return model.NewDeadline("first\rsecond", by) },
			expErr:  model.ErrReservedCharacter,
		},
		"An event start with a control character should fail.": {
			newTask: func() (model.Task, error) { return model.NewEvent("meeting", "2\tpm", "4pm") },
			expErr:  model.ErrReservedCharacter,
		},
		"An event end with a line break should fail.": {
			newTask: func() (model.Task, error) { return model.NewEvent("meeting", "2pm", "4pm\nD | 0 | x") },
			expErr:  model.ErrReservedCharacter,
		},
		"A deadline after the last storable year should fail.": {
			newTask: func() (model.Task, error) {
				return model.NewDeadline("far", time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC))
			},
			expErr: model.ErrDateFormat,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			task, err := test.newTask()

			if test.expErr != nil {
				require.Error(err)
				assert.True(errors.Is(err, test.expErr))
				assert.True(model.IsUserError(err))
				return
			}

			require.NoError(err)
			assert.NoError(task.Validate())
			assert.False(task.Done)
			assert.Equal(test.expRender, task.Render())
		})
	}
}

func TestTaskMarkRoundTrip(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	task, err := model.NewDeadline("return book", time.Date(2019, 10, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(err)
	original := task.Render()

	task.MarkDone()
	assert.Equal("[D][X] return book (by: Oct 15 2019)", task.Render())
	task.MarkDone()
	assert.True(task.Done)

	task.MarkNotDone()
	assert.Equal(original, task.Render())
}

func TestTaskMatches(t *testing.T) {
	tests := map[string]struct {
		task     model.Task
		keyword  string
		expMatch bool
	}{
		"Matching should ignore case.": {
			task:     model.Task{Kind: model.TaskKindTodo, Description: "Read CS2103 textbook"},
			keyword:  "cs2103",
			expMatch: true,
		},
		"Matching should be a substring test.": {
			task:     model.Task{Kind: model.TaskKindTodo, Description: "buy milk"},
			keyword:  "uy mi",
			expMatch: true,
		},
		"Not contained keyword should not match.": {
			task:     model.Task{Kind: model.TaskKindTodo, Description: "buy milk"},
			keyword:  "bread",
			expMatch: false,
		},
		"An empty description should never match.": {
			task:     model.Task{Kind: model.TaskKindTodo},
			keyword:  "",
			expMatch: false,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expMatch, test.task.Matches(test.keyword))
		})
	}
}

func TestTaskValidate(t *testing.T) {
	tests := map[string]struct {
		task   model.Task
		expErr bool
	}{
		"A todo with a payload should fail.": {
			task:   model.Task{Kind: model.TaskKindTodo, Description: "x", Event: &model.EventInfo{From: "a", To: "b"}},
			expErr: true,
		},
		"A deadline without date should fail.": {
			task:   model.Task{Kind: model.TaskKindDeadline, Description: "x", Deadline: &model.DeadlineInfo{}},
			expErr: true,
		},
		"An unknown kind should fail.": {
			task:   model.Task{Kind: "Z", Description: "x"},
			expErr: true,
		},
		"A description with a line break should fail.": {
			task:   model.Task{Kind: model.TaskKindTodo, Description: "a\nb"},
			expErr: true,
		},
		"An event end with a line break should fail.": {
			task:   model.Task{Kind: model.TaskKindEvent, Description: "x", Event: &model.EventInfo{From: "a", To: "b\nc"}},
			expErr: true,
		},
		"A deadline with a 5 digit year should fail.": {
			task: model.Task{
				Kind:        model.TaskKindDeadline,
				Description: "x",
				Deadline:    &model.DeadlineInfo{By: time.Date(10239, 1, 1, 0, 0, 0, 0, time.UTC)},
			},
			expErr: true,
		},
		"An event with both ends should be valid.": {
			task:   model.Task{Kind: model.TaskKindEvent, Description: "x", Event: &model.EventInfo{From: "a", To: "b"}},
			expErr: false,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.task.Validate()
			if test.expErr {
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskCopy(t *testing.T) {
	task, err := model.NewEvent("meeting", "2pm", "4pm")
	require.NoError(t, err)

	c := task.Copy()
	c.Event.From = "3pm"

	assert.Equal(t, "2pm", task.Event.From)
}

func TestReservedCharacterErrorMessage(t *testing.T) {
	_, err := model.NewTodo("a\nb")

	var rerr *model.ReservedCharacterError
	require.ErrorAs(t, err, &rerr)
	assert.True(t, rerr.Control)
	assert.Equal(t, "The todo description cannot contain line breaks or control characters.", err.Error())
	assert.True(t, model.IsUserError(err))
}
