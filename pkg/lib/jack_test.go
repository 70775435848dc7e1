package lib_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/jack/pkg/lib"
)

func fixedClock() time.Time { return time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC) }

// newTestClient creates a loaded client over a temp data dir.
func newTestClient(t *testing.T, dataDir string, backend lib.Backend) *lib.Client {
	t.Helper()

	ctx := context.Background()
	client, err := lib.New(ctx, lib.Config{
		DataDir: dataDir,
		Backend: backend,
		Clock:   fixedClock,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	notice, err := client.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, notice)

	return client
}

func TestClientPersistsAcrossSessions(t *testing.T) {
	tests := map[string]struct {
		backend lib.Backend
		file    string
	}{
		"File backend should keep tasks between sessions.": {
			backend: lib.BackendFile,
			file:    "jack.txt",
		},
		"SQLite backend should keep tasks between sessions.": {
			backend: lib.BackendSQLite,
			file:    "jack.db",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)
			ctx := context.Background()
			dataDir := t.TempDir()

			c1 := newTestClient(t, dataDir, test.backend)
			for _, line := range []string{
				"todo read book",
				"deadline return book /by 2019-10-15",
				"event project meeting /from Mon 2pm /to 4pm",
				"mark 1",
			} {
				_, err := c1.Submit(ctx, line)
				require.NoError(err)
			}
			require.NoError(c1.Close())
			assert.FileExists(filepath.Join(dataDir, test.file))

			c2 := newTestClient(t, dataDir, test.backend)
			tasks := c2.Tasks()
			require.Len(tasks, 3)
			assert.Equal("[T][X] read book", tasks[0].Rendered)
			assert.Equal("[D][ ] return book (by: Oct 15 2019)", tasks[1].Rendered)
			assert.Equal("[E][ ] project meeting (from: Mon 2pm to: 4pm)", tasks[2].Rendered)
			require.NotNil(tasks[1].By)
			assert.Equal(time.Date(2019, 10, 15, 0, 0, 0, 0, time.UTC), *tasks[1].By)
			assert.Equal("Mon 2pm", tasks[2].From)
			assert.Equal(lib.TaskKindEvent, tasks[2].Kind)
		})
	}
}

func TestClientSubmit(t *testing.T) {
	tests := map[string]struct {
		lines    []string
		expLines []string
		expExit  bool
		expErr   error
	}{
		"Adding a todo should confirm it.": {
			lines: []string{"todo read book"},
			expLines: []string{
				"Got it. I've added this task:",
				"  [T][ ] read book",
				"Now you have 1 task in the list.",
			},
		},
		"Relative dates should use the client clock.": {
			lines: []string{"deadline submit report /by in 2 weeks"},
			expLines: []string{
				"Got it. I've added this task:",
				"  [D][ ] submit report (by: Oct 15 2025)",
				"Now you have 1 task in the list.",
			},
		},
		"Bye should end the session.": {
			lines:    []string{"bye"},
			expLines: []string{"Bye. Hope to see you again soon!"},
			expExit:  true,
		},
		"Invalid index should be a user error.": {
			lines:  []string{"todo a", "delete 2"},
			expErr: lib.ErrInvalidIndex,
		},
		"Unknown command should be a user error.": {
			lines:  []string{"blah"},
			expErr: lib.ErrUnknownCommand,
		},
		"Bad dates should be a user error.": {
			lines:  []string{"deadline x /by 32/13/2019"},
			expErr: lib.ErrDateFormat,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)
			ctx := context.Background()

			client := newTestClient(t, t.TempDir(), lib.BackendFile)

			var resp lib.Response
			var err error
			for _, line := range test.lines {
				resp, err = client.Submit(ctx, line)
			}

			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
				assert.True(lib.IsUserError(err))
			} else {
				require.NoError(err)
				assert.Equal(test.expLines, resp.Lines)
				assert.Equal(test.expExit, resp.Exit)
			}
		})
	}
}

func TestClientExport(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, t.TempDir(), lib.BackendFile)

	for _, line := range []string{"todo read book", "deadline return book /by 15/10/2019", "mark 2"} {
		_, err := client.Submit(ctx, line)
		require.NoError(t, err)
	}

	exp := []string{
		"T | 0 | read book",
		"D | 1 | return book | 2019-10-15",
	}
	assert.Equal(t, exp, client.Export())
}

func TestClientLoadCorruptedFile(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	dataDir := t.TempDir()
	content := "T | 1 | read book\nthis is garbage\nD | 0 | return book | 2019-10-15\n"
	require.NoError(os.WriteFile(filepath.Join(dataDir, "jack.txt"), []byte(content), 0644))

	client := newTestClient(t, dataDir, lib.BackendFile)

	tasks := client.Tasks()
	require.Len(tasks, 2)
	assert.Equal("[T][X] read book", tasks[0].Rendered)
	assert.Equal("[D][ ] return book (by: Oct 15 2019)", tasks[1].Rendered)
}

func TestClientLoadUnreadableStore(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	// A directory where the store file should be can't be read.
	dataDir := t.TempDir()
	require.NoError(os.Mkdir(filepath.Join(dataDir, "jack.txt"), 0755))

	client, err := lib.New(ctx, lib.Config{DataDir: dataDir})
	require.NoError(err)
	defer client.Close()

	notice, err := client.Load(ctx)
	require.NoError(err)
	assert.Equal("Could not load previous tasks, starting with an empty list.", notice)
	assert.Empty(client.Tasks())

	// The session keeps working in memory even if saving fails.
	resp, err := client.Submit(ctx, "todo read book")
	require.NoError(err)
	assert.Equal("Now you have 1 task in the list.", resp.Lines[2])
}

func TestNewInvalidConfig(t *testing.T) {
	_, err := lib.New(context.Background(), lib.Config{
		DataDir: t.TempDir(),
		Backend: "redis",
	})
	assert.Error(t, err)
}
