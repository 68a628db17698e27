package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/models"
)

// Sentinel errors for task store operations
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskAlreadyExists = errors.New("task already exists")
)

// TaskStore defines the interface for task storage operations. Tasks are
// scoped through their project; handlers guard the project before touching
// tasks.
type TaskStore interface {
	// Create creates a new task.
	// Returns ErrTaskAlreadyExists if the ID is already taken.
	Create(ctx context.Context, task *models.Task) error

	// Get retrieves a task by ID.
	// Returns ErrTaskNotFound if the task doesn't exist.
	Get(ctx context.Context, taskID uuid.UUID) (*models.Task, error)

	// ListByProject returns all tasks under a project, oldest first.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error)

	// Complete marks a task done and records the completion time. Completing
	// an already-done task is a no-op that still succeeds.
	// Returns ErrTaskNotFound if the task doesn't exist.
	Complete(ctx context.Context, taskID uuid.UUID, completedAt time.Time) (*models.Task, error)
}
