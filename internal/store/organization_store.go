package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/models"
)

// Sentinel errors for organization store operations
var (
	ErrOrganizationNotFound      = errors.New("organization not found")
	ErrOrganizationAlreadyExists = errors.New("organization already exists")
	ErrMemberNotFound            = errors.New("organization member not found")
	ErrMemberAlreadyExists       = errors.New("organization member already exists")
)

// OrganizationStore defines the interface for organization and membership
// storage. Organizations are the tenant boundary; membership rows are the
// sole source of truth for ordinary (non-elevated) access scoping.
type OrganizationStore interface {
	// Create creates a new organization.
	// Returns ErrOrganizationAlreadyExists if the ID is already taken.
	Create(ctx context.Context, org *models.Organization) error

	// Get retrieves an organization by ID.
	// Returns ErrOrganizationNotFound if the organization doesn't exist.
	Get(ctx context.Context, orgID uuid.UUID) (*models.Organization, error)

	// GetByName retrieves an organization by name. Names are unique.
	// Returns ErrOrganizationNotFound if no organization has that name.
	GetByName(ctx context.Context, name string) (*models.Organization, error)

	// AddMember adds a membership row.
	// Returns ErrMemberAlreadyExists if the (org, user) pair already exists.
	AddMember(ctx context.Context, member *models.OrganizationMember) error

	// RemoveMember removes a membership row.
	// Returns ErrMemberNotFound if the pair doesn't exist.
	RemoveMember(ctx context.Context, orgID, userID uuid.UUID) error

	// ListMembers returns all membership rows for an organization.
	ListMembers(ctx context.Context, orgID uuid.UUID) ([]*models.OrganizationMember, error)

	// MemberOrgIDs returns the IDs of every organization with a membership
	// row matching the given user ID or email. Either key may be zero/empty;
	// when both are zero the result is empty, never an error.
	MemberOrgIDs(ctx context.Context, userID uuid.UUID, email string) ([]uuid.UUID, error)
}
