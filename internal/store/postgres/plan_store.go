package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
)

// PlanStore implements store.PlanStore using PostgreSQL.
type PlanStore struct {
	pool *pgxpool.Pool
}

// NewPlanStore creates a new PostgreSQL-backed maintenance plan store.
func NewPlanStore(pool *pgxpool.Pool) *PlanStore {
	return &PlanStore{
		pool: pool,
	}
}

// Create creates a new maintenance plan in the database.
func (s *PlanStore) Create(ctx context.Context, plan *models.MaintenancePlan) error {
	query := `
		INSERT INTO maintenance_plans (
			plan_id, project_id, tier, hours_included, hours_used, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	_, err := s.pool.Exec(ctx, query,
		plan.PlanID,
		plan.ProjectID,
		plan.Tier,
		plan.HoursIncluded,
		plan.HoursUsed,
		plan.CreatedAt,
		plan.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrPlanAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return store.ErrProjectNotFound
		}
		return fmt.Errorf("failed to create maintenance plan: %w", mapPostgresError(err))
	}

	return nil
}

// GetByProject retrieves the plan for a project.
func (s *PlanStore) GetByProject(ctx context.Context, projectID uuid.UUID) (*models.MaintenancePlan, error) {
	query := `
		SELECT plan_id, project_id, tier, hours_included, hours_used, created_at, updated_at
		FROM maintenance_plans
		WHERE project_id = $1
	`

	var plan models.MaintenancePlan
	err := s.pool.QueryRow(ctx, query, projectID).Scan(
		&plan.PlanID,
		&plan.ProjectID,
		&plan.Tier,
		&plan.HoursIncluded,
		&plan.HoursUsed,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get maintenance plan: %w", mapPostgresError(err))
	}

	return &plan, nil
}
