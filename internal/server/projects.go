package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/auth"
	"github.com/wolfeidau/studiodesk/internal/models"
)

type projectResponse struct {
	ProjectID  uuid.UUID  `json:"project_id"`
	OrgID      uuid.UUID  `json:"org_id"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	AssigneeID *uuid.UUID `json:"assignee_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func toProjectResponse(p *models.Project) projectResponse {
	return projectResponse{
		ProjectID:  p.ProjectID,
		OrgID:      p.OrgID,
		Name:       p.Name,
		Status:     string(p.Status),
		AssigneeID: p.AssigneeID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	projects, err := s.guard.Projects(r.Context(), identity)
	if err != nil {
		writeServerError(w, err)
		return
	}

	resp := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, toProjectResponse(p))
	}

	writeJSON(w, http.StatusOK, map[string]any{"projects": resp})
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	// An unparseable id gets the same 404 as a scope miss; the shape of the
	// id is not a hint worth leaking.
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		writeNotFound(w, "Project")
		return
	}

	project, err := s.guard.Project(r.Context(), identity, projectID)
	if err != nil {
		writeGuardError(w, err, "Project")
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponse(project))
}

// guardProjectParam resolves the {projectID} route parameter through the
// guard. On failure it writes the response and returns nil.
func (s *Server) guardProjectParam(w http.ResponseWriter, r *http.Request) *models.Project {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return nil
	}

	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		writeNotFound(w, "Project")
		return nil
	}

	project, err := s.guard.Project(r.Context(), identity, projectID)
	if err != nil {
		writeGuardError(w, err, "Project")
		return nil
	}

	return project
}
