package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/models"
)

// Sentinel errors for notification store operations
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// NotificationStore defines the interface for notification storage. Rows are
// written by the fan-out component and only ever mutated by the recipient
// flipping the read flag.
type NotificationStore interface {
	// Create creates a single notification.
	Create(ctx context.Context, n *models.Notification) error

	// CreateMany creates a batch of notifications in one statement. Relies on
	// the statement's own atomicity; there is no surrounding transaction.
	CreateMany(ctx context.Context, ns []*models.Notification) error

	// ListByUser returns a user's notifications, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error)

	// MarkRead flips a notification to read. The transition is one-way:
	// marking an already-read notification succeeds without change.
	// Returns ErrNotificationNotFound if no notification with that ID
	// belongs to the user.
	MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error

	// MarkAllRead flips all of a user's unread notifications to read and
	// returns how many changed.
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}
