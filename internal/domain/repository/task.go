package repository

import (
	"context"

	"github.com/perkmart/perkmart/internal/domain/model"
)

// TaskRepository manages earning tasks and their per-user completions.
// Complete records the completion and credits the reward in one
// transaction, rejecting repeats per user.
type TaskRepository interface {
	Create(ctx context.Context, title string, reward int64) (*model.Task, error)
	GetByID(ctx context.Context, id int64) (*model.Task, error)
	ListActive(ctx context.Context) ([]model.Task, error)
	Complete(ctx context.Context, userID, taskID int64) error
}
