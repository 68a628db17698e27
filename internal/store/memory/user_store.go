package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
)

// UserStore implements store.UserStore using in-memory storage.
type UserStore struct {
	mu sync.RWMutex

	users   map[uuid.UUID]*models.User
	byEmail map[string]uuid.UUID
}

// NewUserStore creates a new in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{
		users:   make(map[uuid.UUID]*models.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

// Create creates a new user in memory.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.UserID]; exists {
		return store.ErrUserAlreadyExists
	}
	if _, exists := s.byEmail[user.Email]; exists {
		return store.ErrUserAlreadyExists
	}

	clone := *user
	s.users[user.UserID] = &clone
	s.byEmail[user.Email] = user.UserID

	return nil
}

// Get retrieves a user by ID.
func (s *UserStore) Get(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[userID]
	if !exists {
		return nil, store.ErrUserNotFound
	}

	clone := *user
	return &clone, nil
}

// GetByEmail retrieves a user by email.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, exists := s.byEmail[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}

	clone := *s.users[userID]
	return &clone, nil
}

// ListByRoles returns all users holding any of the given roles.
func (s *UserStore) ListByRoles(ctx context.Context, roles []models.Role) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.User
	for _, user := range s.users {
		if slices.Contains(roles, user.Role) {
			clone := *user
			result = append(result, &clone)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}
