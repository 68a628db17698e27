package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType is a presentation tag, chosen by a static mapping per
// event kind. It carries no behaviour.
type NotificationType string

const (
	NotificationInfo    NotificationType = "INFO"
	NotificationSuccess NotificationType = "SUCCESS"
	NotificationWarning NotificationType = "WARNING"
	NotificationError   NotificationType = "ERROR"
)

// Notification is a best-effort message delivered to a single user. Once
// created it is never mutated except for the one-way unread -> read flip.
//
// ProjectID is not re-checked against the recipient's scope at write time;
// notifications act as a historical record and may outlive a membership.
type Notification struct {
	NotificationID uuid.UUID // UUIDv7
	UserID         uuid.UUID // Recipient
	ProjectID      *uuid.UUID
	Type           NotificationType
	Title          string
	Message        string
	Read           bool
	CreatedAt      time.Time
}
