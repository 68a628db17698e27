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

// OrganizationStore implements store.OrganizationStore using PostgreSQL.
type OrganizationStore struct {
	pool *pgxpool.Pool
}

// NewOrganizationStore creates a new PostgreSQL-backed organization store.
// It shares the connection pool with other stores.
func NewOrganizationStore(pool *pgxpool.Pool) *OrganizationStore {
	return &OrganizationStore{
		pool: pool,
	}
}

// Create creates a new organization in the database.
func (s *OrganizationStore) Create(ctx context.Context, org *models.Organization) error {
	query := `
		INSERT INTO organizations (
			org_id, name, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4
		)
	`

	_, err := s.pool.Exec(ctx, query,
		org.OrgID,
		org.Name,
		org.CreatedAt,
		org.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrOrganizationAlreadyExists
		}
		return fmt.Errorf("failed to create organization: %w", mapPostgresError(err))
	}

	log.Debug().
		Str("org_id", org.OrgID.String()).
		Str("name", org.Name).
		Msg("Created organization")

	return nil
}

// Get retrieves an organization by ID.
func (s *OrganizationStore) Get(ctx context.Context, orgID uuid.UUID) (*models.Organization, error) {
	query := `
		SELECT org_id, name, created_at, updated_at
		FROM organizations
		WHERE org_id = $1
	`

	var org models.Organization
	err := s.pool.QueryRow(ctx, query, orgID).Scan(
		&org.OrgID,
		&org.Name,
		&org.CreatedAt,
		&org.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", mapPostgresError(err))
	}

	return &org, nil
}

// GetByName retrieves an organization by name.
func (s *OrganizationStore) GetByName(ctx context.Context, name string) (*models.Organization, error) {
	query := `
		SELECT org_id, name, created_at, updated_at
		FROM organizations
		WHERE name = $1
	`

	var org models.Organization
	err := s.pool.QueryRow(ctx, query, name).Scan(
		&org.OrgID,
		&org.Name,
		&org.CreatedAt,
		&org.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization by name: %w", mapPostgresError(err))
	}

	return &org, nil
}

// AddMember adds a membership row.
func (s *OrganizationStore) AddMember(ctx context.Context, member *models.OrganizationMember) error {
	query := `
		INSERT INTO organization_members (
			org_id, user_id, email, role, joined_at
		) VALUES (
			$1, $2, $3, $4, $5
		)
	`

	_, err := s.pool.Exec(ctx, query,
		member.OrgID,
		member.UserID,
		member.Email,
		member.Role,
		member.JoinedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrMemberAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return store.ErrOrganizationNotFound
		}
		return fmt.Errorf("failed to add member: %w", mapPostgresError(err))
	}

	log.Debug().
		Str("org_id", member.OrgID.String()).
		Str("user_id", member.UserID.String()).
		Msg("Added organization member")

	return nil
}

// RemoveMember removes a membership row.
func (s *OrganizationStore) RemoveMember(ctx context.Context, orgID, userID uuid.UUID) error {
	query := `DELETE FROM organization_members WHERE org_id = $1 AND user_id = $2`

	result, err := s.pool.Exec(ctx, query, orgID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", mapPostgresError(err))
	}

	if result.RowsAffected() == 0 {
		return store.ErrMemberNotFound
	}

	log.Debug().
		Str("org_id", orgID.String()).
		Str("user_id", userID.String()).
		Msg("Removed organization member")

	return nil
}

// ListMembers returns all membership rows for an organization.
func (s *OrganizationStore) ListMembers(ctx context.Context, orgID uuid.UUID) ([]*models.OrganizationMember, error) {
	query := `
		SELECT org_id, user_id, email, role, joined_at
		FROM organization_members
		WHERE org_id = $1
		ORDER BY joined_at
	`

	rows, err := s.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", mapPostgresError(err))
	}
	defer rows.Close()

	var members []*models.OrganizationMember
	for rows.Next() {
		var member models.OrganizationMember
		err := rows.Scan(
			&member.OrgID,
			&member.UserID,
			&member.Email,
			&member.Role,
			&member.JoinedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, &member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	return members, nil
}

// MemberOrgIDs returns the organizations with a membership row matching the
// user ID or email. Each match arm is only included when its key is present,
// so a missing key can never widen the result.
func (s *OrganizationStore) MemberOrgIDs(ctx context.Context, userID uuid.UUID, email string) ([]uuid.UUID, error) {
	if userID == uuid.Nil && email == "" {
		return nil, nil
	}

	query := `
		SELECT DISTINCT org_id
		FROM organization_members
		WHERE ($1::uuid IS NOT NULL AND user_id = $1)
		   OR ($2::text <> '' AND email = $2)
	`

	var userIDArg any
	if userID != uuid.Nil {
		userIDArg = userID
	}

	rows, err := s.pool.Query(ctx, query, userIDArg, email)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve member org ids: %w", mapPostgresError(err))
	}
	defer rows.Close()

	var orgIDs []uuid.UUID
	for rows.Next() {
		var orgID uuid.UUID
		if err := rows.Scan(&orgID); err != nil {
			return nil, fmt.Errorf("failed to scan org id: %w", err)
		}
		orgIDs = append(orgIDs, orgID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating org ids: %w", err)
	}

	return orgIDs, nil
}
