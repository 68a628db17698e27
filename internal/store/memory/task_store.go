package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
)

// TaskStore implements store.TaskStore using in-memory storage.
type TaskStore struct {
	mu sync.RWMutex

	tasks map[uuid.UUID]*models.Task
}

// NewTaskStore creates a new in-memory task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[uuid.UUID]*models.Task),
	}
}

// Create creates a new task in memory.
func (s *TaskStore) Create(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.TaskID]; exists {
		return store.ErrTaskAlreadyExists
	}

	clone := *task
	s.tasks[task.TaskID] = &clone

	return nil
}

// Get retrieves a task by ID.
func (s *TaskStore) Get(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, exists := s.tasks[taskID]
	if !exists {
		return nil, store.ErrTaskNotFound
	}

	clone := *task
	return &clone, nil
}

// ListByProject returns all tasks under a project, oldest first.
func (s *TaskStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Task
	for _, task := range s.tasks {
		if task.ProjectID == projectID {
			clone := *task
			result = append(result, &clone)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// Complete marks a task done. Completing an already-done task is a no-op.
func (s *TaskStore) Complete(ctx context.Context, taskID uuid.UUID, completedAt time.Time) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, exists := s.tasks[taskID]
	if !exists {
		return nil, store.ErrTaskNotFound
	}

	if task.Status != models.TaskStatusDone {
		task.Status = models.TaskStatusDone
		task.CompletedAt = &completedAt
		task.UpdatedAt = completedAt
	}

	clone := *task
	return &clone, nil
}
