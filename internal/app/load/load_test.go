package load_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/jack/internal/app/load"
	"github.com/slok/jack/internal/log"
	"github.com/slok/jack/internal/model"
	"github.com/slok/jack/internal/storage/storagemock"
)

func TestNewService(t *testing.T) {
	tests := map[string]struct {
		config load.ServiceConfig
		expErr bool
	}{
		"valid config should create service": {
			config: load.ServiceConfig{
				Repository: &storagemock.MockRepository{},
				Logger:     log.Noop,
			},
		},
		"missing repository should fail": {
			config: load.ServiceConfig{},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			svc, err := load.NewService(test.config)

			if test.expErr {
				require.Error(err)
				require.Nil(svc)
			} else {
				require.NoError(err)
				require.NotNil(svc)
			}
		})
	}
}

func TestService_Run(t *testing.T) {
	todo, err := model.NewTodo("read book")
	require.NoError(t, err)
	todo.MarkDone()

	tests := map[string]struct {
		mock       func(m *storagemock.MockRepository)
		expRenders []string
		expNotice  string
	}{
		"Stored tasks should be loaded in order.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("LoadTasks", mock.Anything).Once().Return([]model.Task{todo, {Kind: model.TaskKindTodo, Description: "buy milk"}}, nil)
			},
			expRenders: []string{"[T][X] read book", "[T][ ] buy milk"},
		},
		"An empty store should load an empty list without notice.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("LoadTasks", mock.Anything).Once().Return([]model.Task{}, nil)
			},
			expRenders: []string{},
		},
		"A repository error should fall back to an empty list with a notice.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("LoadTasks", mock.Anything).Once().Return(nil, fmt.Errorf("permission denied"))
			},
			expRenders: []string{},
			expNotice:  load.FallbackNotice,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := storagemock.NewMockRepository(t)
			test.mock(m)

			svc, err := load.NewService(load.ServiceConfig{Repository: m})
			require.NoError(err)

			res, err := svc.Run(context.Background())
			require.NoError(err)
			require.NotNil(res.Tasks)

			renders := []string{}
			for _, task := range res.Tasks.Snapshot() {
				renders = append(renders, task.Render())
			}
			assert.Equal(test.expRenders, renders)
			assert.Equal(test.expNotice, res.Notice)
		})
	}
}

func TestService_RunCancelledContext(t *testing.T) {
	svc, err := load.NewService(load.ServiceConfig{Repository: storagemock.NewMockRepository(t)})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = svc.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
