package load

import (
	"context"
	"fmt"

	"github.com/slok/jack/internal/log"
	"github.com/slok/jack/internal/storage"
	"github.com/slok/jack/internal/tasklist"
)

// FallbackNotice is shown once when the stored tasks could not be loaded.
const FallbackNotice = "Could not load previous tasks, starting with an empty list."

// ServiceConfig is the configuration for the load service.
type ServiceConfig struct {
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Load"})

	return nil
}

// Service builds the initial session task list from the repository.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new load service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Result is the loaded session state.
type Result struct {
	Tasks *tasklist.List
	// Notice is a message for the user, empty when the load went fine.
	Notice string
}

// Run loads the stored tasks. It never fails because of the repository, on
// load errors the session starts with an empty list and a notice.
func (s *Service) Run(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	tasks, err := s.repo.LoadTasks(ctx)
	if err != nil {
		s.logger.Errorf("Could not load tasks: %s", err)
		return Result{Tasks: tasklist.New(), Notice: FallbackNotice}, nil
	}

	s.logger.Debugf("Loaded %d tasks", len(tasks))
	return Result{Tasks: tasklist.New(tasks...)}, nil
}
