package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
)

// UserStore implements store.UserStore using PostgreSQL.
type UserStore struct {
	pool *pgxpool.Pool
}

// NewUserStore creates a new PostgreSQL-backed user store.
func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{
		pool: pool,
	}
}

// Create creates a new user in the database.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (
			user_id, email, name, role, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	_, err := s.pool.Exec(ctx, query,
		user.UserID,
		user.Email,
		user.Name,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", mapPostgresError(err))
	}

	log.Debug().
		Str("user_id", user.UserID.String()).
		Str("role", string(user.Role)).
		Msg("Created user")

	return nil
}

// Get retrieves a user by ID.
func (s *UserStore) Get(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	query := `
		SELECT user_id, email, name, role, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`

	return s.scanOne(s.pool.QueryRow(ctx, query, userID))
}

// GetByEmail retrieves a user by email.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT user_id, email, name, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	return s.scanOne(s.pool.QueryRow(ctx, query, email))
}

// ListByRoles returns all users holding any of the given roles.
func (s *UserStore) ListByRoles(ctx context.Context, roles []models.Role) ([]*models.User, error) {
	query := `
		SELECT user_id, email, name, role, created_at, updated_at
		FROM users
		WHERE role = ANY($1)
		ORDER BY created_at
	`

	roleStrs := make([]string, 0, len(roles))
	for _, role := range roles {
		roleStrs = append(roleStrs, string(role))
	}

	rows, err := s.pool.Query(ctx, query, roleStrs)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", mapPostgresError(err))
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.UserID,
			&user.Email,
			&user.Name,
			&user.Role,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

func (s *UserStore) scanOne(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.UserID,
		&user.Email,
		&user.Name,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", mapPostgresError(err))
	}

	return &user, nil
}
