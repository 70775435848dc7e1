package jack_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intjack "github.com/slok/jack/test/integration/jack"
)

func TestSessionsShareTheStore(t *testing.T) {
	config := intjack.NewConfig(t)

	tests := map[string]struct {
		storage string
	}{
		"Text file store.": {storage: "file"},
		"SQLite store.":    {storage: "sqlite"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			dataDir := t.TempDir()

			input := strings.Join([]string{
				"todo read book",
				"deadline return book /by 2019-10-15",
				"event project meeting /from Mon 2pm /to 4pm",
				"mark 1",
				"delete 3",
				"bye",
			}, "\n")
			stdout, _, err := intjack.RunSession(ctx, config, dataDir, test.storage, input)
			require.NoError(err)
			assert.Contains(string(stdout), "Hello! I'm Jack")
			assert.Contains(string(stdout), "Bye. Hope to see you again soon!")

			// A new session sees the tasks of the previous one.
			stdout, _, err = intjack.RunSession(ctx, config, dataDir, test.storage, "list\nfind book\n")
			require.NoError(err)
			assert.Contains(string(stdout), "1.[T][X] read book")
			assert.Contains(string(stdout), "2.[D][ ] return book (by: Oct 15 2019)")
			assert.NotContains(string(stdout), "project meeting")
			assert.Contains(string(stdout), "Here are the matching tasks in your list:")

			stdout, _, err = intjack.RunExport(ctx, config, dataDir, test.storage)
			require.NoError(err)
			assert.Equal("T | 1 | read book\nD | 0 | return book | 2019-10-15\n", string(stdout))
		})
	}
}
