package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
)

// NotificationStore implements store.NotificationStore using PostgreSQL.
type NotificationStore struct {
	pool *pgxpool.Pool
}

// NewNotificationStore creates a new PostgreSQL-backed notification store.
func NewNotificationStore(pool *pgxpool.Pool) *NotificationStore {
	return &NotificationStore{
		pool: pool,
	}
}

// Create creates a single notification in the database.
func (s *NotificationStore) Create(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (
			notification_id, user_id, project_id, type, title, message, read, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	_, err := s.pool.Exec(ctx, query,
		n.NotificationID,
		n.UserID,
		n.ProjectID,
		n.Type,
		n.Title,
		n.Message,
		n.Read,
		n.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create notification: %w", mapPostgresError(err))
	}

	return nil
}

// CreateMany creates a batch of notifications with a single multi-row
// insert. Atomicity comes from the statement itself; there is no wrapping
// transaction.
func (s *NotificationStore) CreateMany(ctx context.Context, ns []*models.Notification) error {
	if len(ns) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO notifications (
			notification_id, user_id, project_id, type, title, message, read, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`
	for _, n := range ns {
		batch.Queue(query,
			n.NotificationID,
			n.UserID,
			n.ProjectID,
			n.Type,
			n.Title,
			n.Message,
			n.Read,
			n.CreatedAt,
		)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close() //nolint:errcheck // close error surfaces via Exec below

	for range ns {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to create notifications: %w", mapPostgresError(err))
		}
	}

	log.Debug().Int("count", len(ns)).Msg("Created notifications")

	return nil
}

// ListByUser returns a user's notifications, newest first.
func (s *NotificationStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error) {
	query := `
		SELECT notification_id, user_id, project_id, type, title, message, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", mapPostgresError(err))
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(
			&n.NotificationID,
			&n.UserID,
			&n.ProjectID,
			&n.Type,
			&n.Title,
			&n.Message,
			&n.Read,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}

// MarkRead flips a notification to read. The user predicate keeps recipients
// from touching each other's rows; matching an already-read row still counts
// as success so the transition stays one-way and idempotent.
func (s *NotificationStore) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	query := `
		UPDATE notifications SET read = true
		WHERE notification_id = $1 AND user_id = $2
	`

	result, err := s.pool.Exec(ctx, query, notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", mapPostgresError(err))
	}

	if result.RowsAffected() == 0 {
		return store.ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead flips all of a user's unread notifications to read.
func (s *NotificationStore) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `
		UPDATE notifications SET read = true
		WHERE user_id = $1 AND read = false
	`

	result, err := s.pool.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", mapPostgresError(err))
	}

	return result.RowsAffected(), nil
}
