package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/models"
)

// Sentinel errors for user store operations
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserStore defines the interface for user storage operations.
type UserStore interface {
	// Create creates a new user.
	// Returns ErrUserAlreadyExists if the ID or email is already taken.
	Create(ctx context.Context, user *models.User) error

	// Get retrieves a user by ID.
	// Returns ErrUserNotFound if the user doesn't exist.
	Get(ctx context.Context, userID uuid.UUID) (*models.User, error)

	// GetByEmail retrieves a user by email.
	// Returns ErrUserNotFound if no user has that email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// ListByRoles returns all users holding any of the given roles, ordered
	// by creation time. Used to resolve the elevated-role broadcast roster.
	ListByRoles(ctx context.Context, roles []models.Role) ([]*models.User, error)
}
