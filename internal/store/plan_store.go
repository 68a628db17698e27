package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/models"
)

// Sentinel errors for maintenance plan store operations
var (
	ErrPlanNotFound      = errors.New("maintenance plan not found")
	ErrPlanAlreadyExists = errors.New("maintenance plan already exists")
)

// PlanStore defines the interface for maintenance plan storage operations.
// A project has at most one plan.
type PlanStore interface {
	// Create creates a new maintenance plan.
	// Returns ErrPlanAlreadyExists if the project already has a plan.
	Create(ctx context.Context, plan *models.MaintenancePlan) error

	// GetByProject retrieves the plan for a project.
	// Returns ErrPlanNotFound if the project has no plan.
	GetByProject(ctx context.Context, projectID uuid.UUID) (*models.MaintenancePlan, error)
}
