package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/models"
)

// Sentinel errors for project store operations
var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectAlreadyExists = errors.New("project already exists")
)

// ProjectStore defines the interface for project storage operations. The
// filtered lookups are the only ones route handlers may use; the unfiltered
// Get exists for internal consumers that have already been authorized.
type ProjectStore interface {
	// Create creates a new project.
	// Returns ErrProjectAlreadyExists if the ID is already taken.
	Create(ctx context.Context, project *models.Project) error

	// Get retrieves a project by ID with no access filtering.
	// Returns ErrProjectNotFound if the project doesn't exist.
	Get(ctx context.Context, projectID uuid.UUID) (*models.Project, error)

	// GetFiltered retrieves a project by ID, restricted by the access
	// filter. Returns ErrProjectNotFound both when the project is absent and
	// when it exists outside the filter; callers must not distinguish the
	// two.
	GetFiltered(ctx context.Context, projectID uuid.UUID, filter AccessFilter) (*models.Project, error)

	// ListFiltered returns all projects within the access filter, newest
	// first.
	ListFiltered(ctx context.Context, filter AccessFilter) ([]*models.Project, error)
}
