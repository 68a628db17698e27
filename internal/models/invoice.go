package models

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceStatus represents the billing state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// Invoice is a billing record under a project. Amounts are stored in cents to
// avoid floating point.
type Invoice struct {
	InvoiceID   uuid.UUID // UUIDv7
	ProjectID   uuid.UUID // FK to projects
	Number      string    // Human-facing invoice number, unique
	AmountCents int64
	Status      InvoiceStatus
	DueAt       *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
