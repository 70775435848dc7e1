package lib

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"k8s.io/client-go/util/homedir"

	"github.com/slok/jack/internal/app/dispatch"
	"github.com/slok/jack/internal/app/load"
	"github.com/slok/jack/internal/codec"
	"github.com/slok/jack/internal/conventions"
	"github.com/slok/jack/internal/log"
	"github.com/slok/jack/internal/model"
	"github.com/slok/jack/internal/storage/backend"
	"github.com/slok/jack/internal/tasklist"
)

// Config configures the SDK client.
//
// All fields are optional. An empty Config{} keeps the tasks in ~/.jack/jack.txt.
type Config struct {
	// DataDir is the directory of the default store files.
	// Default: ~/.jack.
	DataDir string

	// ConfigPath is an optional YAML file selecting the storage. When set, the
	// file must exist and its storage section takes precedence over Backend.
	ConfigPath string

	// Backend selects the storage when the config file doesn't.
	// Default: [BackendFile].
	Backend Backend

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger

	// Clock returns the current time, its day is the reference for relative
	// dates like "tomorrow". Default: time.Now.
	Clock func() time.Time
}

func (c *Config) defaults() error {
	if c.DataDir == "" {
		home := homedir.HomeDir()
		if home == "" {
			return fmt.Errorf("could not get user home dir")
		}
		c.DataDir = filepath.Join(home, conventions.DefaultDataDir)
	}

	if c.Backend == "" {
		c.Backend = BackendFile
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	if c.Clock == nil {
		c.Clock = time.Now
	}

	return nil
}

// Client is a task manager session: one task list, loaded once from the
// store and saved after every change.
//
// Create a Client with [New], call [Client.Load] once and release its
// resources with [Client.Close]. A Client is safe for concurrent use, commands
// are applied one at a time.
type Client struct {
	mu         sync.Mutex
	store      *backend.Store
	loader     *load.Service
	dispatcher *dispatch.Service
	tasks      *tasklist.List
	logger     log.Logger
}

// New creates a new SDK client with an empty task list.
//
// The caller must call [Client.Close] when done. Typically used with defer:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	store, err := backend.Open(ctx, backend.Config{
		Backend:    model.StorageBackend(cfg.Backend),
		DataDir:    cfg.DataDir,
		ConfigPath: cfg.ConfigPath,
		Logger:     cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not open store: %w", err)
	}

	loader, err := load.NewService(load.ServiceConfig{
		Repository: store,
		Logger:     cfg.Logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("could not create load service: %w", err)
	}

	dispatcher, err := dispatch.NewService(dispatch.ServiceConfig{
		Repository: store,
		Logger:     cfg.Logger,
		TimeNow:    cfg.Clock,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("could not create dispatch service: %w", err)
	}

	cfg.Logger.Debugf("Using %s store at %s", store.Backend, store.Path)

	return &Client{
		store:      store,
		loader:     loader,
		dispatcher: dispatcher,
		tasks:      tasklist.New(),
		logger:     cfg.Logger,
	}, nil
}

// Load replaces the session task list with the stored tasks.
//
// A store that can't be read is not an error: the session starts with an
// empty list and the returned notice explains it to the user. The notice is
// empty when the tasks were loaded.
func (c *Client) Load(ctx context.Context) (notice string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.loader.Run(ctx)
	if err != nil {
		return "", err
	}
	c.tasks = res.Tasks

	return res.Notice, nil
}

// Submit runs a single command line against the session task list.
//
// Errors caused by the input match the exported sentinels (e.g.
// [ErrInvalidIndex]) and [IsUserError] returns true for them. Save failures
// are not returned, the session keeps working in memory.
func (c *Client) Submit(ctx context.Context, line string) (Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.dispatcher.Run(ctx, dispatch.Request{Line: line, Tasks: c.tasks})
	if err != nil {
		return Response{}, err
	}

	return Response{Lines: res.Lines, Exit: res.Exit}, nil
}

// Tasks returns a copy of the session tasks in list order.
func (c *Client) Tasks() []Task {
	c.mu.Lock()
	defer c.mu.Unlock()

	return fromInternalTaskList(c.tasks.Snapshot())
}

// Export returns the session tasks encoded as storage records, one per task.
func (c *Client) Export() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return codec.Encode(c.tasks.Snapshot())
}

// StorePath returns the location of the store in use.
func (c *Client) StorePath() string { return c.store.Path }

// Close releases resources held by the client. After Close returns, the
// client must not be used.
func (c *Client) Close() error {
	return c.store.Close()
}
