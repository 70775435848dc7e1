package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/jack/internal/log"
	"github.com/slok/jack/internal/model"
	"github.com/slok/jack/internal/storage/file"
)

func newRepo(t *testing.T, path string) *file.Repository {
	t.Helper()
	repo, err := file.NewRepository(file.RepositoryConfig{
		Path:   path,
		Logger: log.Noop,
	})
	require.NoError(t, err)
	return repo
}

func TestNewRepositoryRequiresPath(t *testing.T) {
	_, err := file.NewRepository(file.RepositoryConfig{})
	assert.Error(t, err)
}

func TestRepositoryLoadMissingFile(t *testing.T) {
	repo := newRepo(t, filepath.Join(t.TempDir(), "missing", "jack.txt"))

	tasks, err := repo.LoadTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestRepositorySaveAndLoad(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "data", "jack.txt")
	repo := newRepo(t, path)

	todo, err := model.NewTodo("read book")
	require.NoError(err)
	todo.MarkDone()
	deadline, err := model.NewDeadline("return book", time.Date(2019, 10, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(err)
	event, err := model.NewEvent("project meeting", "Mon 2pm", "4pm")
	require.NoError(err)
	tasks := []model.Task{todo, deadline, event}

	// The directory is created on the first save.
	require.NoError(repo.SaveTasks(ctx, tasks))

	data, err := os.ReadFile(path)
	require.NoError(err)
	exp := "T | 1 | read book\n" +
		"D | 0 | return book | 2019-10-15\n" +
		"E | 0 | project meeting | Mon 2pm | 4pm\n"
	assert.Equal(exp, string(data))

	got, err := newRepo(t, path).LoadTasks(ctx)
	require.NoError(err)
	assert.Equal(tasks, got)

	// Saves truncate the previous content.
	require.NoError(repo.SaveTasks(ctx, tasks[:1]))
	data, err = os.ReadFile(path)
	require.NoError(err)
	assert.Equal("T | 1 | read book\n", string(data))
}

func TestRepositoryLoadSkipsCorruptedLines(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "jack.txt")
	content := "T | 0 | read book\r\nthis is garbage\n\nD | 1 | return book | 2019-10-15\n"
	require.NoError(os.WriteFile(path, []byte(content), 0644))

	tasks, err := newRepo(t, path).LoadTasks(context.Background())
	require.NoError(err)
	require.Len(tasks, 2)
	assert.Equal("[T][ ] read book", tasks[0].Render())
	assert.Equal("[D][X] return book (by: Oct 15 2019)", tasks[1].Render())
}

func TestRepositoryLoadUnreadableFile(t *testing.T) {
	// A directory in the file path can't be read as a file.
	path := t.TempDir()

	_, err := newRepo(t, path).LoadTasks(context.Background())
	assert.Error(t, err)
}

func TestRepositorySaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	// The parent "directory" is a regular file.
	repo := newRepo(t, filepath.Join(blocker, "jack.txt"))

	todo, err := model.NewTodo("read book")
	require.NoError(t, err)
	assert.Error(t, repo.SaveTasks(context.Background(), []model.Task{todo}))
}

func TestRepositorySaveRejectsUnstorableTasks(t *testing.T) {
	tests := map[string]struct {
		task model.Task
	}{
		"A description with a line break should not be saved.": {
			task: model.Task{Kind: model.TaskKindTodo, Description: "first\nD | 0 | x | 2025-01-01"},
		},
		"An event end with a carriage return should not be saved.": {
			task: model.Task{Kind: model.TaskKindEvent, Description: "x", Event: &model.EventInfo{From: "2pm", To: "4pm\r"}},
		},
		"A deadline with a 5 digit year should not be saved.": {
			task: model.Task{
				Kind:        model.TaskKindDeadline,
				Description: "far",
				Deadline:    &model.DeadlineInfo{By: time.Date(10239, 1, 1, 0, 0, 0, 0, time.UTC)},
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)
			ctx := context.Background()

			path := filepath.Join(t.TempDir(), "jack.txt")
			repo := newRepo(t, path)

			todo, err := model.NewTodo("read book")
			require.NoError(err)
			require.NoError(repo.SaveTasks(ctx, []model.Task{todo}))

			err = repo.SaveTasks(ctx, []model.Task{todo, test.task})
			assert.ErrorIs(err, model.ErrNotValid)

			// The previous content is kept.
			got, err := repo.LoadTasks(ctx)
			require.NoError(err)
			assert.Equal([]model.Task{todo}, got)
		})
	}
}

func TestRepositoryRoundTripKeepsEveryTask(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	todo, err := model.NewTodo("tabs and  spaces ok")
	require.NoError(err)
	first, err := model.NewDeadline("first", time.Date(1, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(err)
	last, err := model.NewDeadline("last", time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(err)
	event, err := model.NewEvent("trip", "Mon", "Fri")
	require.NoError(err)
	event.MarkDone()
	tasks := []model.Task{todo, first, last, event}

	path := filepath.Join(t.TempDir(), "jack.txt")
	require.NoError(newRepo(t, path).SaveTasks(ctx, tasks))

	got, err := newRepo(t, path).LoadTasks(ctx)
	require.NoError(err)
	assert.Equal(tasks, got)
}
