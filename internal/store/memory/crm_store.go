package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/models"
)

// LeadStore implements store.LeadStore using in-memory storage.
type LeadStore struct {
	mu sync.RWMutex

	leads map[uuid.UUID]*models.Lead
}

// NewLeadStore creates a new in-memory lead store.
func NewLeadStore() *LeadStore {
	return &LeadStore{
		leads: make(map[uuid.UUID]*models.Lead),
	}
}

// Create creates a new lead in memory.
func (s *LeadStore) Create(ctx context.Context, lead *models.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *lead
	s.leads[lead.LeadID] = &clone

	return nil
}

// List returns all leads, newest first.
func (s *LeadStore) List(ctx context.Context) ([]*models.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Lead
	for _, lead := range s.leads {
		clone := *lead
		result = append(result, &clone)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

// ChangeRequestStore implements store.ChangeRequestStore using in-memory
// storage.
type ChangeRequestStore struct {
	mu sync.RWMutex

	requests map[uuid.UUID]*models.ChangeRequest
}

// NewChangeRequestStore creates a new in-memory change request store.
func NewChangeRequestStore() *ChangeRequestStore {
	return &ChangeRequestStore{
		requests: make(map[uuid.UUID]*models.ChangeRequest),
	}
}

// Create creates a new change request in memory.
func (s *ChangeRequestStore) Create(ctx context.Context, cr *models.ChangeRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *cr
	s.requests[cr.RequestID] = &clone

	return nil
}

// ListByProject returns all change requests under a project, newest first.
func (s *ChangeRequestStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.ChangeRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.ChangeRequest
	for _, cr := range s.requests {
		if cr.ProjectID == projectID {
			clone := *cr
			result = append(result, &clone)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}
