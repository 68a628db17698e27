package models

import (
	"time"

	"github.com/google/uuid"
)

// Lead is an inbound sales enquiry captured from the public website. Leads
// are not scoped to an organization; only elevated roles may list them.
type Lead struct {
	LeadID    uuid.UUID // UUIDv7
	Name      string
	Email     string
	Company   string
	Message   string
	Source    string // e.g. "website", "referral"
	CreatedAt time.Time
}

// ChangeRequest is a client-submitted request for changes on a project.
// Urgent requests are surfaced to the elevated-role roster as warnings.
type ChangeRequest struct {
	RequestID   uuid.UUID // UUIDv7
	ProjectID   uuid.UUID // FK to projects
	RequestedBy uuid.UUID // User who submitted the request
	Subject     string
	Detail      string
	Urgent      bool
	CreatedAt   time.Time
}
