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

func newProject(t *testing.T, s *ProjectStore, orgID uuid.UUID, name string, createdAt time.Time) *models.Project {
	t.Helper()

	project := &models.Project{
		ProjectID: uuid.Must(uuid.NewV7()),
		OrgID:     orgID,
		Name:      name,
		Status:    models.ProjectStatusActive,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, s.Create(context.Background(), project))
	return project
}

func TestProjectStoreGetFiltered(t *testing.T) {
	ctx := context.Background()

	t.Run("in scope", func(t *testing.T) {
		s := NewProjectStore()
		orgID := uuid.Must(uuid.NewV7())
		project := newProject(t, s, orgID, "website", time.Now())

		got, err := s.GetFiltered(ctx, project.ProjectID, store.AccessFilter{OrgIDs: []uuid.UUID{orgID}})
		require.NoError(t, err)
		require.Equal(t, project.ProjectID, got.ProjectID)
	})

	t.Run("out of scope reports not found", func(t *testing.T) {
		s := NewProjectStore()
		project := newProject(t, s, uuid.Must(uuid.NewV7()), "website", time.Now())

		_, err := s.GetFiltered(ctx, project.ProjectID, store.AccessFilter{
			OrgIDs: []uuid.UUID{uuid.Must(uuid.NewV7())},
		})
		require.ErrorIs(t, err, store.ErrProjectNotFound)
	})

	t.Run("absent reports not found", func(t *testing.T) {
		s := NewProjectStore()

		_, err := s.GetFiltered(ctx, uuid.Must(uuid.NewV7()), store.AccessFilter{Unbounded: true})
		require.ErrorIs(t, err, store.ErrProjectNotFound)
	})

	t.Run("unbounded filter ignores org", func(t *testing.T) {
		s := NewProjectStore()
		project := newProject(t, s, uuid.Must(uuid.NewV7()), "website", time.Now())

		got, err := s.GetFiltered(ctx, project.ProjectID, store.AccessFilter{Unbounded: true})
		require.NoError(t, err)
		require.Equal(t, project.ProjectID, got.ProjectID)
	})

	t.Run("returned project is a copy", func(t *testing.T) {
		s := NewProjectStore()
		orgID := uuid.Must(uuid.NewV7())
		project := newProject(t, s, orgID, "website", time.Now())

		got, err := s.Get(ctx, project.ProjectID)
		require.NoError(t, err)
		got.Name = "mutated"

		again, err := s.Get(ctx, project.ProjectID)
		require.NoError(t, err)
		require.Equal(t, "website", again.Name)
	})
}

func TestProjectStoreListFiltered(t *testing.T) {
	ctx := context.Background()

	t.Run("lists newest first within scope", func(t *testing.T) {
		s := NewProjectStore()
		orgID := uuid.Must(uuid.NewV7())
		base := time.Now()

		older := newProject(t, s, orgID, "older", base.Add(-time.Hour))
		newer := newProject(t, s, orgID, "newer", base)
		newProject(t, s, uuid.Must(uuid.NewV7()), "foreign", base)

		got, err := s.ListFiltered(ctx, store.AccessFilter{OrgIDs: []uuid.UUID{orgID}})
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, newer.ProjectID, got[0].ProjectID)
		require.Equal(t, older.ProjectID, got[1].ProjectID)
	})

	t.Run("empty filter lists nothing", func(t *testing.T) {
		s := NewProjectStore()
		newProject(t, s, uuid.Must(uuid.NewV7()), "website", time.Now())

		got, err := s.ListFiltered(ctx, store.AccessFilter{})
		require.NoError(t, err)
		require.Empty(t, got)
	})
}
