package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/auth"
	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/telemetry"
)

type notificationResponse struct {
	NotificationID uuid.UUID  `json:"notification_id"`
	ProjectID      *uuid.UUID `json:"project_id,omitempty"`
	Type           string     `json:"type"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	Read           bool       `json:"read"`
	CreatedAt      time.Time  `json:"created_at"`
}

func toNotificationResponse(n *models.Notification) notificationResponse {
	return notificationResponse{
		NotificationID: n.NotificationID,
		ProjectID:      n.ProjectID,
		Type:           string(n.Type),
		Title:          n.Title,
		Message:        n.Message,
		Read:           n.Read,
		CreatedAt:      n.CreatedAt,
	}
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	notifications, err := s.stores.Notifications.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		writeServerError(w, err)
		return
	}

	resp := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp = append(resp, toNotificationResponse(n))
	}

	writeJSON(w, http.StatusOK, map[string]any{"notifications": resp})
}

// handleMarkNotificationRead flips one of the caller's notifications to
// read. The store scopes the update by recipient, so another user's
// notification ID behaves as if it doesn't exist.
func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	notificationID, err := uuid.Parse(chi.URLParam(r, "notificationID"))
	if err != nil {
		writeNotFound(w, "Notification")
		return
	}

	if err := s.stores.Notifications.MarkRead(r.Context(), notificationID, identity.UserID); err != nil {
		if isNotFound(err) {
			writeNotFound(w, "Notification")
			return
		}
		writeServerError(w, err)
		return
	}

	telemetry.GetMetrics().NotificationsReadTotal.Add(r.Context(), 1)

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	updated, err := s.stores.Notifications.MarkAllRead(r.Context(), identity.UserID)
	if err != nil {
		writeServerError(w, err)
		return
	}

	telemetry.GetMetrics().NotificationsReadTotal.Add(r.Context(), updated)

	writeJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}
