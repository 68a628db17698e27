package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
)

// InvoiceStore implements store.InvoiceStore using in-memory storage.
type InvoiceStore struct {
	mu sync.RWMutex

	invoices map[uuid.UUID]*models.Invoice
}

// NewInvoiceStore creates a new in-memory invoice store.
func NewInvoiceStore() *InvoiceStore {
	return &InvoiceStore{
		invoices: make(map[uuid.UUID]*models.Invoice),
	}
}

// Create creates a new invoice in memory.
func (s *InvoiceStore) Create(ctx context.Context, invoice *models.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[invoice.InvoiceID]; exists {
		return store.ErrInvoiceAlreadyExists
	}
	for _, existing := range s.invoices {
		if existing.Number == invoice.Number {
			return store.ErrInvoiceAlreadyExists
		}
	}

	clone := *invoice
	s.invoices[invoice.InvoiceID] = &clone

	return nil
}

// Get retrieves an invoice by ID.
func (s *InvoiceStore) Get(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invoice, exists := s.invoices[invoiceID]
	if !exists {
		return nil, store.ErrInvoiceNotFound
	}

	clone := *invoice
	return &clone, nil
}

// ListByProject returns all invoices under a project, newest first.
func (s *InvoiceStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Invoice
	for _, invoice := range s.invoices {
		if invoice.ProjectID == projectID {
			clone := *invoice
			result = append(result, &clone)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}
