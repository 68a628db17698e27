package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusPaused    ProjectStatus = "paused"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

// Project is the top-level scoped resource. Tasks, invoices and maintenance
// plans all hang off a project, so reachability of a project decides
// reachability of everything under it.
type Project struct {
	ProjectID  uuid.UUID // UUIDv7
	OrgID      uuid.UUID // FK to organizations
	Name       string
	Status     ProjectStatus
	AssigneeID *uuid.UUID // Agency admin responsible for the project
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
