package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/auth"
	"github.com/wolfeidau/studiodesk/internal/models"
)

type taskResponse struct {
	TaskID      uuid.UUID  `json:"task_id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toTaskResponse(t *models.Task) taskResponse {
	return taskResponse{
		TaskID:      t.TaskID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Status:      string(t.Status),
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type createTaskRequest struct {
	Title string `json:"title"`
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	project := s.guardProjectParam(w, r)
	if project == nil {
		return
	}

	tasks, err := s.stores.Tasks.ListByProject(r.Context(), project.ProjectID)
	if err != nil {
		writeServerError(w, err)
		return
	}

	resp := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toTaskResponse(t))
	}

	writeJSON(w, http.StatusOK, map[string]any{"tasks": resp})
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if !identity.Can(auth.CapManageTasks) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	project := s.guardProjectParam(w, r)
	if project == nil {
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	now := time.Now()
	task := &models.Task{
		TaskID:    uuid.Must(uuid.NewV7()),
		ProjectID: project.ProjectID,
		Title:     req.Title,
		Status:    models.TaskStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.stores.Tasks.Create(r.Context(), task); err != nil {
		writeServerError(w, err)
		return
	}

	s.notifier.ClientActivity(r.Context(), project, "Task created")

	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

// handleCompleteTask marks a task done. The task is looked up first to learn
// its project, then the project is guarded; a task whose project is out of
// scope gets the same 404 as a task that doesn't exist. The notification
// fan-out runs after the completion has been persisted and cannot affect the
// response: assigned projects notify the assignee, unassigned projects fall
// back to the elevated-role broadcast so a completion is never silent.
func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		writeNotFound(w, "Task")
		return
	}

	task, err := s.stores.Tasks.Get(r.Context(), taskID)
	if err != nil {
		if isNotFound(err) {
			writeNotFound(w, "Task")
			return
		}
		writeServerError(w, err)
		return
	}

	project, err := s.guard.Project(r.Context(), identity, task.ProjectID)
	if err != nil {
		writeGuardError(w, err, "Task")
		return
	}

	task, err = s.stores.Tasks.Complete(r.Context(), taskID, time.Now())
	if err != nil {
		if isNotFound(err) {
			writeNotFound(w, "Task")
			return
		}
		writeServerError(w, err)
		return
	}

	if project.AssigneeID != nil {
		s.notifier.TaskCompleted(r.Context(), project, task)
	} else {
		s.notifier.TaskCompletedBroadcast(r.Context(), project, task)
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}
