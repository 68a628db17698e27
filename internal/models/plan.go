package models

import (
	"time"

	"github.com/google/uuid"
)

// MaintenancePlan is the recurring support agreement attached to a project.
// At most one plan per project.
type MaintenancePlan struct {
	PlanID        uuid.UUID // UUIDv7
	ProjectID     uuid.UUID // FK to projects, unique
	Tier          string    // e.g. "basic", "standard", "premium"
	HoursIncluded int32
	HoursUsed     int32
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
