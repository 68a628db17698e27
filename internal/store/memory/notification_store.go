package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
)

// NotificationStore implements store.NotificationStore using in-memory
// storage.
type NotificationStore struct {
	mu sync.RWMutex

	notifications map[uuid.UUID]*models.Notification
}

// NewNotificationStore creates a new in-memory notification store.
func NewNotificationStore() *NotificationStore {
	return &NotificationStore{
		notifications: make(map[uuid.UUID]*models.Notification),
	}
}

// Create creates a single notification in memory.
func (s *NotificationStore) Create(ctx context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *n
	s.notifications[n.NotificationID] = &clone

	return nil
}

// CreateMany creates a batch of notifications. The in-memory batch is atomic
// under the store lock.
func (s *NotificationStore) CreateMany(ctx context.Context, ns []*models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range ns {
		clone := *n
		s.notifications[n.NotificationID] = &clone
	}

	return nil
}

// ListByUser returns a user's notifications, newest first.
func (s *NotificationStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			clone := *n
			result = append(result, &clone)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

// MarkRead flips a notification to read. One-way: an already-read
// notification stays read.
func (s *NotificationStore) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, exists := s.notifications[notificationID]
	if !exists || n.UserID != userID {
		return store.ErrNotificationNotFound
	}

	n.Read = true

	return nil
}

// MarkAllRead flips all of a user's unread notifications to read.
func (s *NotificationStore) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed int64
	for _, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			changed++
		}
	}

	return changed, nil
}
