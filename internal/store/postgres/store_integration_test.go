//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
)

func setupPostgresContainer(t *testing.T, ctx context.Context) (*Stores, func()) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connString := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	stores, err := NewStores(ctx, &Config{
		Pool:        &PoolConfig{ConnString: connString},
		AutoMigrate: true,
	})
	require.NoError(t, err)

	cleanup := func() {
		stores.Close()
		_ = container.Terminate(ctx)
	}

	return stores, cleanup
}

func seedOrgAndMember(t *testing.T, ctx context.Context, stores *Stores, email string) (*models.Organization, uuid.UUID) {
	t.Helper()

	org := &models.Organization{
		OrgID: uuid.Must(uuid.NewV7()), Name: "acme-" + uuid.NewString(),
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, stores.Organizations.Create(ctx, org))

	userID := uuid.Must(uuid.NewV7())
	require.NoError(t, stores.Organizations.AddMember(ctx, &models.OrganizationMember{
		OrgID: org.OrgID, UserID: userID, Email: email,
		Role: models.RoleClient, JoinedAt: time.Now(),
	}))

	return org, userID
}

func TestIntegration_MembershipScoping(t *testing.T) {
	ctx := context.Background()
	stores, cleanup := setupPostgresContainer(t, ctx)
	defer cleanup()

	t.Run("member org ids match by either key", func(t *testing.T) {
		_, userID := seedOrgAndMember(t, ctx, stores, "jo@acme.com")

		byID, err := stores.Organizations.MemberOrgIDs(ctx, userID, "")
		require.NoError(t, err)
		require.Len(t, byID, 1)

		byEmail, err := stores.Organizations.MemberOrgIDs(ctx, uuid.Nil, "jo@acme.com")
		require.NoError(t, err)
		require.Equal(t, byID, byEmail)

		both, err := stores.Organizations.MemberOrgIDs(ctx, userID, "jo@acme.com")
		require.NoError(t, err)
		require.Equal(t, byID, both)

		none, err := stores.Organizations.MemberOrgIDs(ctx, uuid.Nil, "")
		require.NoError(t, err)
		require.Empty(t, none)
	})

	t.Run("filtered project reads respect scope", func(t *testing.T) {
		org, userID := seedOrgAndMember(t, ctx, stores, "scoped@acme.com")
		foreignOrg, _ := seedOrgAndMember(t, ctx, stores, "other@globex.com")

		project := &models.Project{
			ProjectID: uuid.Must(uuid.NewV7()), OrgID: org.OrgID, Name: "website",
			Status: models.ProjectStatusActive, CreatedAt: time.Now(), UpdatedAt: time.Now(),
		}
		require.NoError(t, stores.Projects.Create(ctx, project))

		foreign := &models.Project{
			ProjectID: uuid.Must(uuid.NewV7()), OrgID: foreignOrg.OrgID, Name: "secret",
			Status: models.ProjectStatusActive, CreatedAt: time.Now(), UpdatedAt: time.Now(),
		}
		require.NoError(t, stores.Projects.Create(ctx, foreign))

		orgIDs, err := stores.Organizations.MemberOrgIDs(ctx, userID, "")
		require.NoError(t, err)
		filter := store.AccessFilter{OrgIDs: orgIDs}

		got, err := stores.Projects.GetFiltered(ctx, project.ProjectID, filter)
		require.NoError(t, err)
		require.Equal(t, project.ProjectID, got.ProjectID)

		_, err = stores.Projects.GetFiltered(ctx, foreign.ProjectID, filter)
		require.ErrorIs(t, err, store.ErrProjectNotFound)

		unbounded, err := stores.Projects.GetFiltered(ctx, foreign.ProjectID, store.AccessFilter{Unbounded: true})
		require.NoError(t, err)
		require.Equal(t, foreign.ProjectID, unbounded.ProjectID)
	})
}

func TestIntegration_TaskLifecycle(t *testing.T) {
	ctx := context.Background()
	stores, cleanup := setupPostgresContainer(t, ctx)
	defer cleanup()

	org, _ := seedOrgAndMember(t, ctx, stores, "tasks@acme.com")
	project := &models.Project{
		ProjectID: uuid.Must(uuid.NewV7()), OrgID: org.OrgID, Name: "website",
		Status: models.ProjectStatusActive, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, stores.Projects.Create(ctx, project))

	task := &models.Task{
		TaskID: uuid.Must(uuid.NewV7()), ProjectID: project.ProjectID,
		Title: "deploy", Status: models.TaskStatusOpen,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, stores.Tasks.Create(ctx, task))

	first := time.Now()
	completed, err := stores.Tasks.Complete(ctx, task.TaskID, first)
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusDone, completed.Status)
	require.NotNil(t, completed.CompletedAt)

	// Second completion keeps the original timestamp.
	again, err := stores.Tasks.Complete(ctx, task.TaskID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.WithinDuration(t, *completed.CompletedAt, *again.CompletedAt, time.Millisecond)
}

func TestIntegration_NotificationBatch(t *testing.T) {
	ctx := context.Background()
	stores, cleanup := setupPostgresContainer(t, ctx)
	defer cleanup()

	userID := uuid.Must(uuid.NewV7())
	otherID := uuid.Must(uuid.NewV7())

	batch := []*models.Notification{
		{NotificationID: uuid.Must(uuid.NewV7()), UserID: userID, Type: models.NotificationInfo, Title: "one", Message: "m", CreatedAt: time.Now()},
		{NotificationID: uuid.Must(uuid.NewV7()), UserID: userID, Type: models.NotificationWarning, Title: "two", Message: "m", CreatedAt: time.Now()},
		{NotificationID: uuid.Must(uuid.NewV7()), UserID: otherID, Type: models.NotificationInfo, Title: "three", Message: "m", CreatedAt: time.Now()},
	}
	require.NoError(t, stores.Notifications.CreateMany(ctx, batch))

	mine, err := stores.Notifications.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	require.NoError(t, stores.Notifications.MarkRead(ctx, mine[0].NotificationID, userID))
	require.ErrorIs(t, stores.Notifications.MarkRead(ctx, mine[1].NotificationID, otherID), store.ErrNotificationNotFound)

	changed, err := stores.Notifications.MarkAllRead(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, int64(1), changed)
}
