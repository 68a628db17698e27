package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
)

// InvoiceStore implements store.InvoiceStore using PostgreSQL.
type InvoiceStore struct {
	pool *pgxpool.Pool
}

// NewInvoiceStore creates a new PostgreSQL-backed invoice store.
func NewInvoiceStore(pool *pgxpool.Pool) *InvoiceStore {
	return &InvoiceStore{
		pool: pool,
	}
}

// Create creates a new invoice in the database.
func (s *InvoiceStore) Create(ctx context.Context, invoice *models.Invoice) error {
	query := `
		INSERT INTO invoices (
			invoice_id, project_id, number, amount_cents, status, due_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	_, err := s.pool.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.ProjectID,
		invoice.Number,
		invoice.AmountCents,
		invoice.Status,
		invoice.DueAt,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrInvoiceAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return store.ErrProjectNotFound
		}
		return fmt.Errorf("failed to create invoice: %w", mapPostgresError(err))
	}

	return nil
}

// Get retrieves an invoice by ID.
func (s *InvoiceStore) Get(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, error) {
	query := `
		SELECT invoice_id, project_id, number, amount_cents, status, due_at, created_at, updated_at
		FROM invoices
		WHERE invoice_id = $1
	`

	var invoice models.Invoice
	err := s.pool.QueryRow(ctx, query, invoiceID).Scan(
		&invoice.InvoiceID,
		&invoice.ProjectID,
		&invoice.Number,
		&invoice.AmountCents,
		&invoice.Status,
		&invoice.DueAt,
		&invoice.CreatedAt,
		&invoice.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", mapPostgresError(err))
	}

	return &invoice, nil
}

// ListByProject returns all invoices under a project, newest first.
func (s *InvoiceStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Invoice, error) {
	query := `
		SELECT invoice_id, project_id, number, amount_cents, status, due_at, created_at, updated_at
		FROM invoices
		WHERE project_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", mapPostgresError(err))
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		var invoice models.Invoice
		err := rows.Scan(
			&invoice.InvoiceID,
			&invoice.ProjectID,
			&invoice.Number,
			&invoice.AmountCents,
			&invoice.Status,
			&invoice.DueAt,
			&invoice.CreatedAt,
			&invoice.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, &invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	return invoices, nil
}
