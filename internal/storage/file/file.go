package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/slok/jack/internal/codec"
	"github.com/slok/jack/internal/log"
	"github.com/slok/jack/internal/model"
)

// RepositoryConfig is the configuration for the flat file repository.
type RepositoryConfig struct {
	Path   string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.File"})
	return nil
}

// Repository is a storage.Repository that keeps the tasks in a UTF-8 text
// file, one record line per task. Every save rewrites the whole file, no file
// handle is kept between calls.
type Repository struct {
	path   string
	logger log.Logger
}

// NewRepository creates a new file repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		path:   cfg.Path,
		logger: cfg.Logger,
	}, nil
}

// Path returns the path of the tasks file.
func (r *Repository) Path() string { return r.path }

// LoadTasks reads and decodes the tasks file. A missing file is an empty list,
// malformed records are skipped.
func (r *Repository) LoadTasks(ctx context.Context) ([]model.Task, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debugf("Tasks file %s does not exist, starting empty", r.path)
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("could not read tasks file: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	tasks, skipped := codec.Decode(strings.Split(string(data), "\n"))
	if len(skipped) > 0 {
		r.logger.Warningf("Skipped %d corrupted records in %s (lines: %v)", len(skipped), r.path, skipped)
	}
	r.logger.Debugf("Loaded %d tasks from %s", len(tasks), r.path)

	return tasks, nil
}

// SaveTasks encodes the tasks and truncates and overwrites the tasks file with
// them, creating its directory if required. Nothing is written when a task is
// not valid.
func (r *Repository) SaveTasks(ctx context.Context, tasks []model.Task) error {
	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("invalid task %d: %w", i+1, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("could not create tasks directory: %w", err)
	}

	var b strings.Builder
	for _, line := range codec.Encode(tasks) {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if err := os.WriteFile(r.path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("could not write tasks file: %w", err)
	}

	r.logger.Debugf("Saved %d tasks to %s", len(tasks), r.path)
	return nil
}
