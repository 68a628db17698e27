// Package notify implements best-effort notification fan-out for domain
// events. Delivery is at-most-once: every failure resolving recipients or
// writing rows is logged and swallowed, so fan-out can never make the
// triggering operation appear failed to its caller. If a stronger guarantee
// is ever needed, model it as an outbox with retries rather than letting
// errors propagate from here.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
	"github.com/wolfeidau/studiodesk/internal/telemetry"
)

// Notifier writes notification rows for domain events. All methods return
// nothing; callers fire and forget after their own write has committed.
type Notifier struct {
	notifications store.NotificationStore
	users         store.UserStore
}

// New creates a notifier.
func New(notifications store.NotificationStore, users store.UserStore) *Notifier {
	return &Notifier{
		notifications: notifications,
		users:         users,
	}
}

// TaskCompleted notifies the project's assigned admin that a task was
// completed. Projects without an assignee produce no notification; callers
// use TaskCompletedBroadcast for those.
func (n *Notifier) TaskCompleted(ctx context.Context, project *models.Project, task *models.Task) {
	if project.AssigneeID == nil {
		log.Debug().
			Str("project_id", project.ProjectID.String()).
			Msg("Task completed on unassigned project, skipping notification")
		return
	}

	n.create(ctx, &models.Notification{
		NotificationID: uuid.Must(uuid.NewV7()),
		UserID:         *project.AssigneeID,
		ProjectID:      &project.ProjectID,
		Type:           models.NotificationSuccess,
		Title:          "Task completed",
		Message:        fmt.Sprintf("Task %q on project %q was completed", task.Title, project.Name),
		CreatedAt:      time.Now(),
	})
}

// TaskCompletedBroadcast notifies the full elevated-role roster that a task
// was completed, in addition to whatever the default path delivered.
func (n *Notifier) TaskCompletedBroadcast(ctx context.Context, project *models.Project, task *models.Task) {
	n.broadcast(ctx, &project.ProjectID, models.NotificationSuccess,
		"Task completed",
		fmt.Sprintf("Task %q on project %q was completed", task.Title, project.Name))
}

// LeadCreated notifies the elevated-role roster of a new lead.
func (n *Notifier) LeadCreated(ctx context.Context, lead *models.Lead) {
	n.broadcast(ctx, nil, models.NotificationInfo,
		"New lead",
		fmt.Sprintf("New lead from %s (%s)", lead.Name, lead.Email))
}

// ChangeRequestSubmitted notifies the elevated-role roster of a new change
// request. Urgent requests are tagged as warnings.
func (n *Notifier) ChangeRequestSubmitted(ctx context.Context, project *models.Project, cr *models.ChangeRequest) {
	typ := models.NotificationInfo
	if cr.Urgent {
		typ = models.NotificationWarning
	}

	n.broadcast(ctx, &project.ProjectID, typ,
		"Change request submitted",
		fmt.Sprintf("Change request %q on project %q", cr.Subject, project.Name))
}

// ClientActivity notifies the project's assigned admin of client activity on
// a project.
func (n *Notifier) ClientActivity(ctx context.Context, project *models.Project, activity string) {
	if project.AssigneeID == nil {
		return
	}

	n.create(ctx, &models.Notification{
		NotificationID: uuid.Must(uuid.NewV7()),
		UserID:         *project.AssigneeID,
		ProjectID:      &project.ProjectID,
		Type:           models.NotificationInfo,
		Title:          "Client activity",
		Message:        fmt.Sprintf("%s on project %q", activity, project.Name),
		CreatedAt:      time.Now(),
	})
}

// create writes a single notification, swallowing any error.
func (n *Notifier) create(ctx context.Context, notification *models.Notification) {
	m := telemetry.GetMetrics()

	if err := n.notifications.Create(ctx, notification); err != nil {
		log.Warn().Err(err).
			Str("user_id", notification.UserID.String()).
			Str("type", string(notification.Type)).
			Msg("Failed to create notification, dropping")
		m.NotificationsDroppedTotal.Add(ctx, 1)
		return
	}

	m.NotificationsCreatedTotal.Add(ctx, 1)
}

// broadcast writes one notification per elevated-role user in a single
// batch. Errors resolving the roster or writing rows are swallowed.
func (n *Notifier) broadcast(ctx context.Context, projectID *uuid.UUID, typ models.NotificationType, title, message string) {
	m := telemetry.GetMetrics()

	recipients, err := n.users.ListByRoles(ctx, models.ElevatedRoles)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to resolve broadcast recipients, dropping broadcast")
		m.BroadcastFailuresTotal.Add(ctx, 1)
		return
	}

	if len(recipients) == 0 {
		return
	}

	now := time.Now()
	notifications := make([]*models.Notification, 0, len(recipients))
	for _, user := range recipients {
		notifications = append(notifications, &models.Notification{
			NotificationID: uuid.Must(uuid.NewV7()),
			UserID:         user.UserID,
			ProjectID:      projectID,
			Type:           typ,
			Title:          title,
			Message:        message,
			CreatedAt:      now,
		})
	}

	if err := n.notifications.CreateMany(ctx, notifications); err != nil {
		log.Warn().Err(err).
			Int("recipients", len(notifications)).
			Str("type", string(typ)).
			Msg("Failed to create broadcast notifications, dropping")
		m.NotificationsDroppedTotal.Add(ctx, int64(len(notifications)))
		return
	}

	m.NotificationsCreatedTotal.Add(ctx, int64(len(notifications)))
}
