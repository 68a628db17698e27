package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/models"
)

// Sentinel errors for CRM store operations
var (
	ErrLeadNotFound          = errors.New("lead not found")
	ErrChangeRequestNotFound = errors.New("change request not found")
)

// LeadStore defines the interface for lead storage operations. Leads are
// global (not organization-scoped); access is role-gated instead.
type LeadStore interface {
	// Create creates a new lead.
	Create(ctx context.Context, lead *models.Lead) error

	// List returns all leads, newest first.
	List(ctx context.Context) ([]*models.Lead, error)
}

// ChangeRequestStore defines the interface for change request storage.
type ChangeRequestStore interface {
	// Create creates a new change request.
	Create(ctx context.Context, cr *models.ChangeRequest) error

	// ListByProject returns all change requests under a project, newest
	// first.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.ChangeRequest, error)
}
