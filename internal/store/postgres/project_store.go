package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
)

// ProjectStore implements store.ProjectStore using PostgreSQL.
type ProjectStore struct {
	pool *pgxpool.Pool
}

// NewProjectStore creates a new PostgreSQL-backed project store.
func NewProjectStore(pool *pgxpool.Pool) *ProjectStore {
	return &ProjectStore{
		pool: pool,
	}
}

// Create creates a new project in the database.
func (s *ProjectStore) Create(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (
			project_id, org_id, name, status, assignee_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	_, err := s.pool.Exec(ctx, query,
		project.ProjectID,
		project.OrgID,
		project.Name,
		project.Status,
		project.AssigneeID,
		project.CreatedAt,
		project.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrProjectAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return store.ErrOrganizationNotFound
		}
		return fmt.Errorf("failed to create project: %w", mapPostgresError(err))
	}

	log.Debug().
		Str("project_id", project.ProjectID.String()).
		Str("org_id", project.OrgID.String()).
		Msg("Created project")

	return nil
}

// Get retrieves a project by ID with no access filtering.
func (s *ProjectStore) Get(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	query := `
		SELECT project_id, org_id, name, status, assignee_id, created_at, updated_at
		FROM projects
		WHERE project_id = $1
	`

	return s.scanOne(s.pool.QueryRow(ctx, query, projectID))
}

// GetFiltered retrieves a project by ID restricted by the access filter. The
// id match and the organization restriction run as one lookup; an absent
// project and an out-of-scope project are indistinguishable in the result.
func (s *ProjectStore) GetFiltered(ctx context.Context, projectID uuid.UUID, filter store.AccessFilter) (*models.Project, error) {
	if filter.MatchesNothing() {
		return nil, store.ErrProjectNotFound
	}

	if filter.Unbounded {
		return s.Get(ctx, projectID)
	}

	query := `
		SELECT project_id, org_id, name, status, assignee_id, created_at, updated_at
		FROM projects
		WHERE project_id = $1 AND org_id = ANY($2)
	`

	return s.scanOne(s.pool.QueryRow(ctx, query, projectID, filter.OrgIDs))
}

// ListFiltered returns all projects within the access filter, newest first.
func (s *ProjectStore) ListFiltered(ctx context.Context, filter store.AccessFilter) ([]*models.Project, error) {
	if filter.MatchesNothing() {
		return nil, nil
	}

	query := `
		SELECT project_id, org_id, name, status, assignee_id, created_at, updated_at
		FROM projects
		WHERE $1 OR org_id = ANY($2)
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query, filter.Unbounded, filter.OrgIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", mapPostgresError(err))
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		var project models.Project
		err := rows.Scan(
			&project.ProjectID,
			&project.OrgID,
			&project.Name,
			&project.Status,
			&project.AssigneeID,
			&project.CreatedAt,
			&project.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, &project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}

func (s *ProjectStore) scanOne(row pgx.Row) (*models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ProjectID,
		&project.OrgID,
		&project.Name,
		&project.Status,
		&project.AssigneeID,
		&project.CreatedAt,
		&project.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", mapPostgresError(err))
	}

	return &project, nil
}
