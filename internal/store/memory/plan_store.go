package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
)

// PlanStore implements store.PlanStore using in-memory storage. Keyed by
// project since a project has at most one plan.
type PlanStore struct {
	mu sync.RWMutex

	plans map[uuid.UUID]*models.MaintenancePlan // project_id -> plan
}

// NewPlanStore creates a new in-memory maintenance plan store.
func NewPlanStore() *PlanStore {
	return &PlanStore{
		plans: make(map[uuid.UUID]*models.MaintenancePlan),
	}
}

// Create creates a new maintenance plan in memory.
func (s *PlanStore) Create(ctx context.Context, plan *models.MaintenancePlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.plans[plan.ProjectID]; exists {
		return store.ErrPlanAlreadyExists
	}

	clone := *plan
	s.plans[plan.ProjectID] = &clone

	return nil
}

// GetByProject retrieves the plan for a project.
func (s *PlanStore) GetByProject(ctx context.Context, projectID uuid.UUID) (*models.MaintenancePlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, exists := s.plans[projectID]
	if !exists {
		return nil, store.ErrPlanNotFound
	}

	clone := *plan
	return &clone, nil
}
