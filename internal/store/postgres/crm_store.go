package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
)

// LeadStore implements store.LeadStore using PostgreSQL.
type LeadStore struct {
	pool *pgxpool.Pool
}

// NewLeadStore creates a new PostgreSQL-backed lead store.
func NewLeadStore(pool *pgxpool.Pool) *LeadStore {
	return &LeadStore{
		pool: pool,
	}
}

// Create creates a new lead in the database.
func (s *LeadStore) Create(ctx context.Context, lead *models.Lead) error {
	query := `
		INSERT INTO leads (
			lead_id, name, email, company, message, source, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	_, err := s.pool.Exec(ctx, query,
		lead.LeadID,
		lead.Name,
		lead.Email,
		lead.Company,
		lead.Message,
		lead.Source,
		lead.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create lead: %w", mapPostgresError(err))
	}

	log.Debug().
		Str("lead_id", lead.LeadID.String()).
		Str("source", lead.Source).
		Msg("Created lead")

	return nil
}

// List returns all leads, newest first.
func (s *LeadStore) List(ctx context.Context) ([]*models.Lead, error) {
	query := `
		SELECT lead_id, name, email, company, message, source, created_at
		FROM leads
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", mapPostgresError(err))
	}
	defer rows.Close()

	var leads []*models.Lead
	for rows.Next() {
		var lead models.Lead
		err := rows.Scan(
			&lead.LeadID,
			&lead.Name,
			&lead.Email,
			&lead.Company,
			&lead.Message,
			&lead.Source,
			&lead.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, &lead)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leads: %w", err)
	}

	return leads, nil
}

// ChangeRequestStore implements store.ChangeRequestStore using PostgreSQL.
type ChangeRequestStore struct {
	pool *pgxpool.Pool
}

// NewChangeRequestStore creates a new PostgreSQL-backed change request
// store.
func NewChangeRequestStore(pool *pgxpool.Pool) *ChangeRequestStore {
	return &ChangeRequestStore{
		pool: pool,
	}
}

// Create creates a new change request in the database.
func (s *ChangeRequestStore) Create(ctx context.Context, cr *models.ChangeRequest) error {
	query := `
		INSERT INTO change_requests (
			request_id, project_id, requested_by, subject, detail, urgent, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	_, err := s.pool.Exec(ctx, query,
		cr.RequestID,
		cr.ProjectID,
		cr.RequestedBy,
		cr.Subject,
		cr.Detail,
		cr.Urgent,
		cr.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrProjectNotFound
		}
		return fmt.Errorf("failed to create change request: %w", mapPostgresError(err))
	}

	return nil
}

// ListByProject returns all change requests under a project, newest first.
func (s *ChangeRequestStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.ChangeRequest, error) {
	query := `
		SELECT request_id, project_id, requested_by, subject, detail, urgent, created_at
		FROM change_requests
		WHERE project_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list change requests: %w", mapPostgresError(err))
	}
	defer rows.Close()

	var requests []*models.ChangeRequest
	for rows.Next() {
		var cr models.ChangeRequest
		err := rows.Scan(
			&cr.RequestID,
			&cr.ProjectID,
			&cr.RequestedBy,
			&cr.Subject,
			&cr.Detail,
			&cr.Urgent,
			&cr.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan change request: %w", err)
		}
		requests = append(requests, &cr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating change requests: %w", err)
	}

	return requests, nil
}
