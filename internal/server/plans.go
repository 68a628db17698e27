package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/models"
)

type planResponse struct {
	PlanID        uuid.UUID `json:"plan_id"`
	ProjectID     uuid.UUID `json:"project_id"`
	Tier          string    `json:"tier"`
	HoursIncluded int32     `json:"hours_included"`
	HoursUsed     int32     `json:"hours_used"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toPlanResponse(p *models.MaintenancePlan) planResponse {
	return planResponse{
		PlanID:        p.PlanID,
		ProjectID:     p.ProjectID,
		Tier:          p.Tier,
		HoursIncluded: p.HoursIncluded,
		HoursUsed:     p.HoursUsed,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	project := s.guardProjectParam(w, r)
	if project == nil {
		return
	}

	plan, err := s.stores.Plans.GetByProject(r.Context(), project.ProjectID)
	if err != nil {
		if isNotFound(err) {
			writeNotFound(w, "Maintenance plan")
			return
		}
		writeServerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPlanResponse(plan))
}
