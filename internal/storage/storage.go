package storage

import (
	"context"

	"github.com/slok/jack/internal/model"
)

// Repository is the interface for task list persistence. The whole list is
// loaded and saved at once, in order.
type Repository interface {
	// LoadTasks returns the persisted tasks. A store that doesn't exist yet
	// returns an empty list.
	LoadTasks(ctx context.Context) ([]model.Task, error)
	// SaveTasks replaces the persisted tasks with the received ones.
	SaveTasks(ctx context.Context, tasks []model.Task) error
}
