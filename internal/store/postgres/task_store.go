package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
)

// TaskStore implements store.TaskStore using PostgreSQL.
type TaskStore struct {
	pool *pgxpool.Pool
}

// NewTaskStore creates a new PostgreSQL-backed task store.
func NewTaskStore(pool *pgxpool.Pool) *TaskStore {
	return &TaskStore{
		pool: pool,
	}
}

// Create creates a new task in the database.
func (s *TaskStore) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (
			task_id, project_id, title, status, completed_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	_, err := s.pool.Exec(ctx, query,
		task.TaskID,
		task.ProjectID,
		task.Title,
		task.Status,
		task.CompletedAt,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrTaskAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return store.ErrProjectNotFound
		}
		return fmt.Errorf("failed to create task: %w", mapPostgresError(err))
	}

	log.Debug().
		Str("task_id", task.TaskID.String()).
		Str("project_id", task.ProjectID.String()).
		Msg("Created task")

	return nil
}

// Get retrieves a task by ID.
func (s *TaskStore) Get(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	query := `
		SELECT task_id, project_id, title, status, completed_at, created_at, updated_at
		FROM tasks
		WHERE task_id = $1
	`

	return s.scanOne(s.pool.QueryRow(ctx, query, taskID))
}

// ListByProject returns all tasks under a project, oldest first.
func (s *TaskStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	query := `
		SELECT task_id, project_id, title, status, completed_at, created_at, updated_at
		FROM tasks
		WHERE project_id = $1
		ORDER BY created_at
	`

	rows, err := s.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", mapPostgresError(err))
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		var task models.Task
		err := rows.Scan(
			&task.TaskID,
			&task.ProjectID,
			&task.Title,
			&task.Status,
			&task.CompletedAt,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// Complete marks a task done. The status predicate makes the flip one-way:
// an already-done task is returned unchanged.
func (s *TaskStore) Complete(ctx context.Context, taskID uuid.UUID, completedAt time.Time) (*models.Task, error) {
	query := `
		UPDATE tasks SET
			status = $2,
			completed_at = $3,
			updated_at = $3
		WHERE task_id = $1 AND status <> $2
	`

	_, err := s.pool.Exec(ctx, query, taskID, models.TaskStatusDone, completedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", mapPostgresError(err))
	}

	return s.Get(ctx, taskID)
}

func (s *TaskStore) scanOne(row pgx.Row) (*models.Task, error) {
	var task models.Task
	err := row.Scan(
		&task.TaskID,
		&task.ProjectID,
		&task.Title,
		&task.Status,
		&task.CompletedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", mapPostgresError(err))
	}

	return &task, nil
}
