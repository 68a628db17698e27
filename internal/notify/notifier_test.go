package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
	"github.com/wolfeidau/studiodesk/internal/store/memory"
)

func seedUser(t *testing.T, users store.UserStore, role models.Role, email string) *models.User {
	t.Helper()

	user := &models.User{
		UserID:    uuid.Must(uuid.NewV7()),
		Email:     email,
		Name:      email,
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func testProject(assigneeID *uuid.UUID) *models.Project {
	return &models.Project{
		ProjectID:  uuid.Must(uuid.NewV7()),
		OrgID:      uuid.Must(uuid.NewV7()),
		Name:       "website",
		Status:     models.ProjectStatusActive,
		AssigneeID: assigneeID,
	}
}

func TestTaskCompleted(t *testing.T) {
	ctx := context.Background()

	t.Run("notifies the assignee with a success notification", func(t *testing.T) {
		notifications := memory.NewNotificationStore()
		users := memory.NewUserStore()
		admin := seedUser(t, users, models.RoleAdmin, "admin@studio.com")

		notifier := New(notifications, users)
		project := testProject(&admin.UserID)
		task := &models.Task{TaskID: uuid.Must(uuid.NewV7()), ProjectID: project.ProjectID, Title: "deploy"}

		notifier.TaskCompleted(ctx, project, task)

		got, err := notifications.ListByUser(ctx, admin.UserID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, models.NotificationSuccess, got[0].Type)
		require.Equal(t, &project.ProjectID, got[0].ProjectID)
		require.False(t, got[0].Read)
	})

	t.Run("unassigned project produces nothing", func(t *testing.T) {
		notifications := memory.NewNotificationStore()
		users := memory.NewUserStore()
		admin := seedUser(t, users, models.RoleAdmin, "admin@studio.com")

		notifier := New(notifications, users)
		notifier.TaskCompleted(ctx, testProject(nil), &models.Task{Title: "deploy"})

		got, err := notifications.ListByUser(ctx, admin.UserID)
		require.NoError(t, err)
		require.Empty(t, got)
	})
}

func TestBroadcastRoster(t *testing.T) {
	ctx := context.Background()

	t.Run("lead reaches every elevated user and nobody else", func(t *testing.T) {
		notifications := memory.NewNotificationStore()
		users := memory.NewUserStore()

		admin := seedUser(t, users, models.RoleAdmin, "admin@studio.com")
		ceo := seedUser(t, users, models.RoleCEO, "ceo@studio.com")
		cfo := seedUser(t, users, models.RoleCFO, "cfo@studio.com")
		staff := seedUser(t, users, models.RoleStaff, "staff@studio.com")
		client := seedUser(t, users, models.RoleClient, "client@acme.com")

		notifier := New(notifications, users)
		notifier.LeadCreated(ctx, &models.Lead{Name: "Jo", Email: "jo@prospect.com"})

		for _, user := range []*models.User{admin, ceo, cfo} {
			got, err := notifications.ListByUser(ctx, user.UserID)
			require.NoError(t, err)
			require.Len(t, got, 1, "user %s", user.Email)
			require.Equal(t, models.NotificationInfo, got[0].Type)
			require.Nil(t, got[0].ProjectID)
		}

		for _, user := range []*models.User{staff, client} {
			got, err := notifications.ListByUser(ctx, user.UserID)
			require.NoError(t, err)
			require.Empty(t, got, "user %s", user.Email)
		}
	})

	t.Run("task completion on an unassigned project reaches the roster", func(t *testing.T) {
		notifications := memory.NewNotificationStore()
		users := memory.NewUserStore()

		admin := seedUser(t, users, models.RoleAdmin, "admin@studio.com")
		ceo := seedUser(t, users, models.RoleCEO, "ceo@studio.com")
		staff := seedUser(t, users, models.RoleStaff, "staff@studio.com")

		notifier := New(notifications, users)
		project := testProject(nil)
		task := &models.Task{TaskID: uuid.Must(uuid.NewV7()), ProjectID: project.ProjectID, Title: "deploy"}

		notifier.TaskCompletedBroadcast(ctx, project, task)

		for _, user := range []*models.User{admin, ceo} {
			got, err := notifications.ListByUser(ctx, user.UserID)
			require.NoError(t, err)
			require.Len(t, got, 1, "user %s", user.Email)
			require.Equal(t, models.NotificationSuccess, got[0].Type)
			require.Equal(t, &project.ProjectID, got[0].ProjectID)
		}

		got, err := notifications.ListByUser(ctx, staff.UserID)
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("urgent change request is tagged as warning", func(t *testing.T) {
		notifications := memory.NewNotificationStore()
		users := memory.NewUserStore()
		admin := seedUser(t, users, models.RoleAdmin, "admin@studio.com")

		notifier := New(notifications, users)
		project := testProject(nil)
		notifier.ChangeRequestSubmitted(ctx, project, &models.ChangeRequest{Subject: "outage", Urgent: true})

		got, err := notifications.ListByUser(ctx, admin.UserID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, models.NotificationWarning, got[0].Type)
	})

	t.Run("routine change request is informational", func(t *testing.T) {
		notifications := memory.NewNotificationStore()
		users := memory.NewUserStore()
		admin := seedUser(t, users, models.RoleAdmin, "admin@studio.com")

		notifier := New(notifications, users)
		notifier.ChangeRequestSubmitted(ctx, testProject(nil), &models.ChangeRequest{Subject: "copy tweak"})

		got, err := notifications.ListByUser(ctx, admin.UserID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, models.NotificationInfo, got[0].Type)
	})

	t.Run("empty roster is a no-op", func(t *testing.T) {
		notifications := memory.NewNotificationStore()
		users := memory.NewUserStore()

		notifier := New(notifications, users)
		notifier.LeadCreated(ctx, &models.Lead{Name: "Jo", Email: "jo@prospect.com"})
	})
}

type failingNotificationStore struct {
	store.NotificationStore
}

func (f *failingNotificationStore) Create(ctx context.Context, n *models.Notification) error {
	return errors.New("write failed")
}

func (f *failingNotificationStore) CreateMany(ctx context.Context, ns []*models.Notification) error {
	return errors.New("write failed")
}

type failingUserStore struct {
	store.UserStore
}

func (f *failingUserStore) ListByRoles(ctx context.Context, roles []models.Role) ([]*models.User, error) {
	return nil, errors.New("read failed")
}

func TestFanOutSwallowsFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("failing notification store does not panic or propagate", func(t *testing.T) {
		users := memory.NewUserStore()
		admin := seedUser(t, users, models.RoleAdmin, "admin@studio.com")

		notifier := New(&failingNotificationStore{}, users)
		notifier.TaskCompleted(ctx, testProject(&admin.UserID), &models.Task{Title: "deploy"})
		notifier.LeadCreated(ctx, &models.Lead{Name: "Jo", Email: "jo@prospect.com"})
	})

	t.Run("failing roster lookup drops the broadcast", func(t *testing.T) {
		notifications := memory.NewNotificationStore()

		notifier := New(notifications, &failingUserStore{})
		notifier.LeadCreated(ctx, &models.Lead{Name: "Jo", Email: "jo@prospect.com"})
	})
}
