package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
)

type memberKey struct {
	orgID  uuid.UUID
	userID uuid.UUID
}

// OrganizationStore implements store.OrganizationStore using in-memory
// storage.
type OrganizationStore struct {
	mu sync.RWMutex

	organizations map[uuid.UUID]*models.Organization
	members       map[memberKey]*models.OrganizationMember
}

// NewOrganizationStore creates a new in-memory organization store.
func NewOrganizationStore() *OrganizationStore {
	return &OrganizationStore{
		organizations: make(map[uuid.UUID]*models.Organization),
		members:       make(map[memberKey]*models.OrganizationMember),
	}
}

// Create creates a new organization in memory.
func (s *OrganizationStore) Create(ctx context.Context, org *models.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.organizations[org.OrgID]; exists {
		return store.ErrOrganizationAlreadyExists
	}
	for _, existing := range s.organizations {
		if existing.Name == org.Name {
			return store.ErrOrganizationAlreadyExists
		}
	}

	// Clone to avoid external modifications
	clone := *org
	s.organizations[org.OrgID] = &clone

	return nil
}

// Get retrieves an organization by ID.
func (s *OrganizationStore) Get(ctx context.Context, orgID uuid.UUID) (*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	org, exists := s.organizations[orgID]
	if !exists {
		return nil, store.ErrOrganizationNotFound
	}

	clone := *org
	return &clone, nil
}

// GetByName retrieves an organization by name.
func (s *OrganizationStore) GetByName(ctx context.Context, name string) (*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, org := range s.organizations {
		if org.Name == name {
			clone := *org
			return &clone, nil
		}
	}

	return nil, store.ErrOrganizationNotFound
}

// AddMember adds a membership row.
func (s *OrganizationStore) AddMember(ctx context.Context, member *models.OrganizationMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.organizations[member.OrgID]; !exists {
		return store.ErrOrganizationNotFound
	}

	key := memberKey{orgID: member.OrgID, userID: member.UserID}
	if _, exists := s.members[key]; exists {
		return store.ErrMemberAlreadyExists
	}

	clone := *member
	s.members[key] = &clone

	return nil
}

// RemoveMember removes a membership row.
func (s *OrganizationStore) RemoveMember(ctx context.Context, orgID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memberKey{orgID: orgID, userID: userID}
	if _, exists := s.members[key]; !exists {
		return store.ErrMemberNotFound
	}

	delete(s.members, key)

	return nil
}

// ListMembers returns all membership rows for an organization.
func (s *OrganizationStore) ListMembers(ctx context.Context, orgID uuid.UUID) ([]*models.OrganizationMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.OrganizationMember
	for _, member := range s.members {
		if member.OrgID == orgID {
			clone := *member
			result = append(result, &clone)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].JoinedAt.Before(result[j].JoinedAt)
	})

	return result, nil
}

// MemberOrgIDs returns the organizations with a membership row matching the
// user ID or email. Both keys zero yields an empty result.
func (s *OrganizationStore) MemberOrgIDs(ctx context.Context, userID uuid.UUID, email string) ([]uuid.UUID, error) {
	if userID == uuid.Nil && email == "" {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[uuid.UUID]struct{})
	var result []uuid.UUID
	for _, member := range s.members {
		match := (userID != uuid.Nil && member.UserID == userID) ||
			(email != "" && member.Email == email)
		if !match {
			continue
		}
		if _, dup := seen[member.OrgID]; dup {
			continue
		}
		seen[member.OrgID] = struct{}{}
		result = append(result, member.OrgID)
	}

	return result, nil
}
