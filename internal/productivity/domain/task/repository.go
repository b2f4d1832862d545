package task

import (
	"context"
)

// Repository defines the interface for task persistence.
type Repository interface {
	Save(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id ID) (*Task, error)
	// FindAll returns every task in creation order.
	FindAll(ctx context.Context) ([]*Task, error)
	// FindPending returns pending tasks sorted for scheduling.
	FindPending(ctx context.Context) ([]*Task, error)
	Delete(ctx context.Context, id ID) error
	// MaxSeq returns the highest sequence ever stored, or 0.
	MaxSeq(ctx context.Context) (int, error)
}
