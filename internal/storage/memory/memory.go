package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/slok/jack/internal/log"
	"github.com/slok/jack/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Tasks  []model.Task
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository.
type Repository struct {
	tasks  []model.Task
	saves  int
	mu     sync.RWMutex
	logger log.Logger
}

// NewRepository creates a new memory repository, optionally seeded with tasks.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		tasks:  copyTasks(cfg.Tasks),
		logger: cfg.Logger,
	}, nil
}

// LoadTasks returns a copy of the stored tasks.
func (r *Repository) LoadTasks(ctx context.Context) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return copyTasks(r.tasks), nil
}

// SaveTasks replaces the stored tasks with a copy of the received ones.
func (r *Repository) SaveTasks(ctx context.Context, tasks []model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("invalid task %d: %w", i+1, err)
		}
	}

	r.tasks = copyTasks(tasks)
	r.saves++
	r.logger.Debugf("Saved %d tasks in repository", len(tasks))

	return nil
}

// Saves returns how many times the tasks have been saved.
func (r *Repository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.saves
}

func copyTasks(tasks []model.Task) []model.Task {
	c := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		c = append(c, t.Copy())
	}
	return c
}
