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

func newOrg(t *testing.T, s *OrganizationStore, name string) *models.Organization {
	t.Helper()

	org := &models.Organization{
		OrgID:     uuid.Must(uuid.NewV7()),
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, s.Create(context.Background(), org))
	return org
}

func TestOrganizationStoreMembers(t *testing.T) {
	ctx := context.Background()

	t.Run("add member requires existing organization", func(t *testing.T) {
		s := NewOrganizationStore()

		err := s.AddMember(ctx, &models.OrganizationMember{
			OrgID:  uuid.Must(uuid.NewV7()),
			UserID: uuid.Must(uuid.NewV7()),
		})
		require.ErrorIs(t, err, store.ErrOrganizationNotFound)
	})

	t.Run("duplicate membership is rejected", func(t *testing.T) {
		s := NewOrganizationStore()
		org := newOrg(t, s, "acme")
		userID := uuid.Must(uuid.NewV7())

		member := &models.OrganizationMember{OrgID: org.OrgID, UserID: userID, JoinedAt: time.Now()}
		require.NoError(t, s.AddMember(ctx, member))
		require.ErrorIs(t, s.AddMember(ctx, member), store.ErrMemberAlreadyExists)
	})

	t.Run("remove member", func(t *testing.T) {
		s := NewOrganizationStore()
		org := newOrg(t, s, "acme")
		userID := uuid.Must(uuid.NewV7())

		require.NoError(t, s.AddMember(ctx, &models.OrganizationMember{
			OrgID: org.OrgID, UserID: userID, JoinedAt: time.Now(),
		}))
		require.NoError(t, s.RemoveMember(ctx, org.OrgID, userID))
		require.ErrorIs(t, s.RemoveMember(ctx, org.OrgID, userID), store.ErrMemberNotFound)
	})
}

func TestOrganizationStoreMemberOrgIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("both keys zero yields empty", func(t *testing.T) {
		s := NewOrganizationStore()
		org := newOrg(t, s, "acme")
		require.NoError(t, s.AddMember(ctx, &models.OrganizationMember{
			OrgID: org.OrgID, UserID: uuid.Must(uuid.NewV7()), Email: "jo@acme.com",
		}))

		ids, err := s.MemberOrgIDs(ctx, uuid.Nil, "")
		require.NoError(t, err)
		require.Empty(t, ids)
	})

	t.Run("matches by user id", func(t *testing.T) {
		s := NewOrganizationStore()
		org := newOrg(t, s, "acme")
		userID := uuid.Must(uuid.NewV7())
		require.NoError(t, s.AddMember(ctx, &models.OrganizationMember{OrgID: org.OrgID, UserID: userID}))

		ids, err := s.MemberOrgIDs(ctx, userID, "")
		require.NoError(t, err)
		require.Equal(t, []uuid.UUID{org.OrgID}, ids)
	})

	t.Run("matches by email", func(t *testing.T) {
		s := NewOrganizationStore()
		org := newOrg(t, s, "acme")
		require.NoError(t, s.AddMember(ctx, &models.OrganizationMember{
			OrgID: org.OrgID, UserID: uuid.Must(uuid.NewV7()), Email: "jo@acme.com",
		}))

		ids, err := s.MemberOrgIDs(ctx, uuid.Nil, "jo@acme.com")
		require.NoError(t, err)
		require.Equal(t, []uuid.UUID{org.OrgID}, ids)
	})

	t.Run("empty email arm never matches empty member email", func(t *testing.T) {
		s := NewOrganizationStore()
		org := newOrg(t, s, "acme")
		require.NoError(t, s.AddMember(ctx, &models.OrganizationMember{
			OrgID: org.OrgID, UserID: uuid.Must(uuid.NewV7()), Email: "",
		}))

		ids, err := s.MemberOrgIDs(ctx, uuid.Must(uuid.NewV7()), "")
		require.NoError(t, err)
		require.Empty(t, ids)
	})

	t.Run("deduplicates orgs matched by both keys", func(t *testing.T) {
		s := NewOrganizationStore()
		org := newOrg(t, s, "acme")
		userID := uuid.Must(uuid.NewV7())
		require.NoError(t, s.AddMember(ctx, &models.OrganizationMember{
			OrgID: org.OrgID, UserID: userID, Email: "jo@acme.com",
		}))

		ids, err := s.MemberOrgIDs(ctx, userID, "jo@acme.com")
		require.NoError(t, err)
		require.Equal(t, []uuid.UUID{org.OrgID}, ids)
	})
}
