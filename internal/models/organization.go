package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization represents a client organization (tenant) in the system.
// Every scoped resource hangs off a project, and every project belongs to
// exactly one organization.
type Organization struct {
	OrgID     uuid.UUID // UUIDv7
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrganizationMember is the join row granting a user access to everything
// under an organization. A user may belong to multiple organizations.
//
// Email is carried alongside UserID because legacy session records were keyed
// by email before user rows existed; the scope builder matches on either.
type OrganizationMember struct {
	OrgID    uuid.UUID
	UserID   uuid.UUID
	Email    string
	Role     Role
	JoinedAt time.Time
}
