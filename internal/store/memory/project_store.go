package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
)

// ProjectStore implements store.ProjectStore using in-memory storage.
type ProjectStore struct {
	mu sync.RWMutex

	projects map[uuid.UUID]*models.Project
}

// NewProjectStore creates a new in-memory project store.
func NewProjectStore() *ProjectStore {
	return &ProjectStore{
		projects: make(map[uuid.UUID]*models.Project),
	}
}

// Create creates a new project in memory.
func (s *ProjectStore) Create(ctx context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[project.ProjectID]; exists {
		return store.ErrProjectAlreadyExists
	}

	clone := *project
	s.projects[project.ProjectID] = &clone

	return nil
}

// Get retrieves a project by ID with no access filtering.
func (s *ProjectStore) Get(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, exists := s.projects[projectID]
	if !exists {
		return nil, store.ErrProjectNotFound
	}

	clone := *project
	return &clone, nil
}

// GetFiltered retrieves a project restricted by the access filter. Absent
// and out-of-scope both return store.ErrProjectNotFound.
func (s *ProjectStore) GetFiltered(ctx context.Context, projectID uuid.UUID, filter store.AccessFilter) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, exists := s.projects[projectID]
	if !exists || !filter.AllowsOrg(project.OrgID) {
		return nil, store.ErrProjectNotFound
	}

	clone := *project
	return &clone, nil
}

// ListFiltered returns all projects within the access filter, newest first.
func (s *ProjectStore) ListFiltered(ctx context.Context, filter store.AccessFilter) ([]*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Project
	for _, project := range s.projects {
		if filter.AllowsOrg(project.OrgID) {
			clone := *project
			result = append(result, &clone)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}
