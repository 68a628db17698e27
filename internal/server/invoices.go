package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/auth"
	"github.com/wolfeidau/studiodesk/internal/models"
)

type invoiceResponse struct {
	InvoiceID   uuid.UUID  `json:"invoice_id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Number      string     `json:"number"`
	AmountCents int64      `json:"amount_cents"`
	Status      string     `json:"status"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toInvoiceResponse(inv *models.Invoice) invoiceResponse {
	return invoiceResponse{
		InvoiceID:   inv.InvoiceID,
		ProjectID:   inv.ProjectID,
		Number:      inv.Number,
		AmountCents: inv.AmountCents,
		Status:      string(inv.Status),
		DueAt:       inv.DueAt,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}

func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if !identity.Can(auth.CapViewInvoices) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	project := s.guardProjectParam(w, r)
	if project == nil {
		return
	}

	invoices, err := s.stores.Invoices.ListByProject(r.Context(), project.ProjectID)
	if err != nil {
		writeServerError(w, err)
		return
	}

	resp := make([]invoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		resp = append(resp, toInvoiceResponse(inv))
	}

	writeJSON(w, http.StatusOK, map[string]any{"invoices": resp})
}

// handleGetInvoice fetches an invoice addressed directly by ID. The invoice
// row itself carries no organization, so scoping goes through its project.
func (s *Server) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if !identity.Can(auth.CapViewInvoices) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	invoiceID, err := uuid.Parse(chi.URLParam(r, "invoiceID"))
	if err != nil {
		writeNotFound(w, "Invoice")
		return
	}

	invoice, err := s.stores.Invoices.Get(r.Context(), invoiceID)
	if err != nil {
		if isNotFound(err) {
			writeNotFound(w, "Invoice")
			return
		}
		writeServerError(w, err)
		return
	}

	if _, err := s.guard.Project(r.Context(), identity, invoice.ProjectID); err != nil {
		writeGuardError(w, err, "Invoice")
		return
	}

	writeJSON(w, http.StatusOK, toInvoiceResponse(invoice))
}
