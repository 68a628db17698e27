package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
)

func TestTaskStoreComplete(t *testing.T) {
	ctx := context.Background()

	t.Run("marks task done with completion time", func(t *testing.T) {
		s := NewTaskStore()
		task := &models.Task{
			TaskID:    uuid.Must(uuid.NewV7()),
			ProjectID: uuid.Must(uuid.NewV7()),
			Title:     "deploy",
			Status:    models.TaskStatusOpen,
			CreatedAt: time.Now(),
		}
		require.NoError(t, s.Create(ctx, task))

		completedAt := time.Now()
		got, err := s.Complete(ctx, task.TaskID, completedAt)
		require.NoError(t, err)
		require.Equal(t, models.TaskStatusDone, got.Status)
		require.NotNil(t, got.CompletedAt)
		require.True(t, got.CompletedAt.Equal(completedAt))
	})

	t.Run("completing a done task keeps the original time", func(t *testing.T) {
		s := NewTaskStore()
		task := &models.Task{
			TaskID:    uuid.Must(uuid.NewV7()),
			ProjectID: uuid.Must(uuid.NewV7()),
			Title:     "deploy",
			Status:    models.TaskStatusOpen,
			CreatedAt: time.Now(),
		}
		require.NoError(t, s.Create(ctx, task))

		first := time.Now().Add(-time.Hour)
		_, err := s.Complete(ctx, task.TaskID, first)
		require.NoError(t, err)

		got, err := s.Complete(ctx, task.TaskID, time.Now())
		require.NoError(t, err)
		require.True(t, got.CompletedAt.Equal(first))
	})

	t.Run("unknown task reports not found", func(t *testing.T) {
		s := NewTaskStore()

		_, err := s.Complete(ctx, uuid.Must(uuid.NewV7()), time.Now())
		require.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskStoreListByProject(t *testing.T) {
	ctx := context.Background()

	s := NewTaskStore()
	projectID := uuid.Must(uuid.NewV7())
	base := time.Now()

	second := &models.Task{
		TaskID: uuid.Must(uuid.NewV7()), ProjectID: projectID,
		Title: "second", Status: models.TaskStatusOpen, CreatedAt: base,
	}
	first := &models.Task{
		TaskID: uuid.Must(uuid.NewV7()), ProjectID: projectID,
		Title: "first", Status: models.TaskStatusOpen, CreatedAt: base.Add(-time.Hour),
	}
	other := &models.Task{
		TaskID: uuid.Must(uuid.NewV7()), ProjectID: uuid.Must(uuid.NewV7()),
		Title: "other", Status: models.TaskStatusOpen, CreatedAt: base,
	}
	for _, task := range []*models.Task{second, first, other} {
		require.NoError(t, s.Create(ctx, task))
	}

	got, err := s.ListByProject(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "first", got[0].Title)
	require.Equal(t, "second", got[1].Title)
}
