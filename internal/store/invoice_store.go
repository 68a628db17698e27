package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/models"
)

// Sentinel errors for invoice store operations
var (
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrInvoiceAlreadyExists = errors.New("invoice already exists")
)

// InvoiceStore defines the interface for invoice storage operations.
type InvoiceStore interface {
	// Create creates a new invoice.
	// Returns ErrInvoiceAlreadyExists if the ID or number is already taken.
	Create(ctx context.Context, invoice *models.Invoice) error

	// Get retrieves an invoice by ID.
	// Returns ErrInvoiceNotFound if the invoice doesn't exist.
	Get(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, error)

	// ListByProject returns all invoices under a project, newest first.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Invoice, error)
}
