package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
)

func newNotification(userID uuid.UUID, title string, createdAt time.Time) *models.Notification {
	return &models.Notification{
		NotificationID: uuid.Must(uuid.NewV7()),
		UserID:         userID,
		Type:           models.NotificationInfo,
		Title:          title,
		CreatedAt:      createdAt,
	}
}

func TestNotificationStoreMarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("flips unread to read", func(t *testing.T) {
		s := NewNotificationStore()
		userID := uuid.Must(uuid.NewV7())
		n := newNotification(userID, "hello", time.Now())
		require.NoError(t, s.Create(ctx, n))

		require.NoError(t, s.MarkRead(ctx, n.NotificationID, userID))

		got, err := s.ListByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.True(t, got[0].Read)
	})

	t.Run("marking read twice succeeds", func(t *testing.T) {
		s := NewNotificationStore()
		userID := uuid.Must(uuid.NewV7())
		n := newNotification(userID, "hello", time.Now())
		require.NoError(t, s.Create(ctx, n))

		require.NoError(t, s.MarkRead(ctx, n.NotificationID, userID))
		require.NoError(t, s.MarkRead(ctx, n.NotificationID, userID))
	})

	t.Run("another user's notification behaves as absent", func(t *testing.T) {
		s := NewNotificationStore()
		n := newNotification(uuid.Must(uuid.NewV7()), "hello", time.Now())
		require.NoError(t, s.Create(ctx, n))

		err := s.MarkRead(ctx, n.NotificationID, uuid.Must(uuid.NewV7()))
		require.ErrorIs(t, err, store.ErrNotificationNotFound)
	})
}

func TestNotificationStoreMarkAllRead(t *testing.T) {
	ctx := context.Background()

	s := NewNotificationStore()
	userID := uuid.Must(uuid.NewV7())
	otherID := uuid.Must(uuid.NewV7())

	read := newNotification(userID, "already read", time.Now())
	read.Read = true
	require.NoError(t, s.CreateMany(ctx, []*models.Notification{
		newNotification(userID, "one", time.Now()),
		newNotification(userID, "two", time.Now()),
		read,
		newNotification(otherID, "foreign", time.Now()),
	}))

	changed, err := s.MarkAllRead(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, int64(2), changed)

	// Second pass finds nothing to change.
	changed, err = s.MarkAllRead(ctx, userID)
	require.NoError(t, err)
	require.Zero(t, changed)

	foreign, err := s.ListByUser(ctx, otherID)
	require.NoError(t, err)
	require.Len(t, foreign, 1)
	require.False(t, foreign[0].Read)
}

func TestNotificationStoreListByUser(t *testing.T) {
	ctx := context.Background()

	s := NewNotificationStore()
	userID := uuid.Must(uuid.NewV7())
	base := time.Now()

	require.NoError(t, s.Create(ctx, newNotification(userID, "older", base.Add(-time.Hour))))
	require.NoError(t, s.Create(ctx, newNotification(userID, "newer", base)))

	got, err := s.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "newer", got[0].Title)
	require.Equal(t, "older", got[1].Title)
}
