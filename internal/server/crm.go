package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/auth"
	httpmiddleware "github.com/wolfeidau/studiodesk/internal/http"
	"github.com/wolfeidau/studiodesk/internal/models"
)

type leadResponse struct {
	LeadID    uuid.UUID `json:"lead_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	Message   string    `json:"message,omitempty"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

func toLeadResponse(l *models.Lead) leadResponse {
	return leadResponse{
		LeadID:    l.LeadID,
		Name:      l.Name,
		Email:     l.Email,
		Company:   l.Company,
		Message:   l.Message,
		Source:    l.Source,
		CreatedAt: l.CreatedAt,
	}
}

type createLeadRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Message string `json:"message"`
	Source  string `json:"source"`
}

// handleCreateLead captures an inbound enquiry from the public site. The
// endpoint is unauthenticated, so it returns only an acknowledgement rather
// than the stored record.
func (s *Server) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	var req createLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "Name and email are required")
		return
	}

	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = "website"
	}

	lead := &models.Lead{
		LeadID:    uuid.Must(uuid.NewV7()),
		Name:      req.Name,
		Email:     req.Email,
		Company:   strings.TrimSpace(req.Company),
		Message:   strings.TrimSpace(req.Message),
		Source:    source,
		CreatedAt: time.Now(),
	}

	if err := s.stores.Leads.Create(r.Context(), lead); err != nil {
		writeServerError(w, err)
		return
	}

	s.logger.Info().
		Str("lead_id", lead.LeadID.String()).
		Str("addr", httpmiddleware.ClientIPFromContext(r.Context())).
		Msg("Lead captured")

	s.notifier.LeadCreated(r.Context(), lead)

	writeJSON(w, http.StatusCreated, map[string]string{"lead_id": lead.LeadID.String()})
}

func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := s.stores.Leads.List(r.Context())
	if err != nil {
		writeServerError(w, err)
		return
	}

	resp := make([]leadResponse, 0, len(leads))
	for _, l := range leads {
		resp = append(resp, toLeadResponse(l))
	}

	writeJSON(w, http.StatusOK, map[string]any{"leads": resp})
}

type changeRequestResponse struct {
	RequestID   uuid.UUID `json:"request_id"`
	ProjectID   uuid.UUID `json:"project_id"`
	RequestedBy uuid.UUID `json:"requested_by"`
	Subject     string    `json:"subject"`
	Detail      string    `json:"detail,omitempty"`
	Urgent      bool      `json:"urgent"`
	CreatedAt   time.Time `json:"created_at"`
}

func toChangeRequestResponse(cr *models.ChangeRequest) changeRequestResponse {
	return changeRequestResponse{
		RequestID:   cr.RequestID,
		ProjectID:   cr.ProjectID,
		RequestedBy: cr.RequestedBy,
		Subject:     cr.Subject,
		Detail:      cr.Detail,
		Urgent:      cr.Urgent,
		CreatedAt:   cr.CreatedAt,
	}
}

type createChangeRequest struct {
	Subject string `json:"subject"`
	Detail  string `json:"detail"`
	Urgent  bool   `json:"urgent"`
}

func (s *Server) handleListChangeRequests(w http.ResponseWriter, r *http.Request) {
	project := s.guardProjectParam(w, r)
	if project == nil {
		return
	}

	requests, err := s.stores.ChangeRequests.ListByProject(r.Context(), project.ProjectID)
	if err != nil {
		writeServerError(w, err)
		return
	}

	resp := make([]changeRequestResponse, 0, len(requests))
	for _, cr := range requests {
		resp = append(resp, toChangeRequestResponse(cr))
	}

	writeJSON(w, http.StatusOK, map[string]any{"change_requests": resp})
}

func (s *Server) handleCreateChangeRequest(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if !identity.Can(auth.CapSubmitChanges) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	project := s.guardProjectParam(w, r)
	if project == nil {
		return
	}

	var req createChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Subject = strings.TrimSpace(req.Subject)
	if req.Subject == "" {
		writeError(w, http.StatusBadRequest, "Subject is required")
		return
	}

	cr := &models.ChangeRequest{
		RequestID:   uuid.Must(uuid.NewV7()),
		ProjectID:   project.ProjectID,
		RequestedBy: identity.UserID,
		Subject:     req.Subject,
		Detail:      req.Detail,
		Urgent:      req.Urgent,
		CreatedAt:   time.Now(),
	}

	if err := s.stores.ChangeRequests.Create(r.Context(), cr); err != nil {
		writeServerError(w, err)
		return
	}

	s.notifier.ChangeRequestSubmitted(r.Context(), project, cr)

	writeJSON(w, http.StatusCreated, toChangeRequestResponse(cr))
}
