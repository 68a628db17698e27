package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of roles recognised by the system. Route handlers
// must gate on capabilities derived from these, never on ad-hoc role lists.
type Role string

const (
	RoleClient Role = "CLIENT" // Organization member on the client side
	RoleStaff  Role = "STAFF"  // Agency staff assigned to projects
	RoleAdmin  Role = "ADMIN"  // Agency admin
	RoleCEO    Role = "CEO"    // Elevated, bypasses organization scoping
	RoleCFO    Role = "CFO"    // Elevated, bypasses organization scoping
)

// ElevatedRoles is the roster notified on broadcast events and the set of
// roles whose scope is unbounded.
var ElevatedRoles = []Role{RoleAdmin, RoleCEO, RoleCFO}

// User represents a person who can sign in. Access to projects is granted
// through organization membership, not stored on the user row.
type User struct {
	UserID    uuid.UUID // UUIDv7
	Email     string    // Unique
	Name      string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
