package scope

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/studiodesk/internal/auth"
	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
	"github.com/wolfeidau/studiodesk/internal/store/memory"
)

func seedOrg(t *testing.T, orgs store.OrganizationStore, name string) *models.Organization {
	t.Helper()

	org := &models.Organization{
		OrgID:     uuid.Must(uuid.NewV7()),
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, orgs.Create(context.Background(), org))
	return org
}

func seedMember(t *testing.T, orgs store.OrganizationStore, orgID, userID uuid.UUID, email string) {
	t.Helper()

	require.NoError(t, orgs.AddMember(context.Background(), &models.OrganizationMember{
		OrgID:    orgID,
		UserID:   userID,
		Email:    email,
		Role:     models.RoleClient,
		JoinedAt: time.Now(),
	}))
}

func TestBuilderForIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("zero identity matches nothing", func(t *testing.T) {
		builder := NewBuilder(memory.NewOrganizationStore())

		filter, err := builder.ForIdentity(ctx, auth.Identity{})
		require.NoError(t, err)
		require.True(t, filter.MatchesNothing())
	})

	t.Run("identity with no memberships matches nothing", func(t *testing.T) {
		orgs := memory.NewOrganizationStore()
		seedOrg(t, orgs, "acme")

		builder := NewBuilder(orgs)
		filter, err := builder.ForIdentity(ctx, auth.Identity{
			UserID: uuid.Must(uuid.NewV7()),
			Role:   models.RoleClient,
		})
		require.NoError(t, err)
		require.True(t, filter.MatchesNothing())
	})

	t.Run("memberships resolve by user id", func(t *testing.T) {
		orgs := memory.NewOrganizationStore()
		org1 := seedOrg(t, orgs, "acme")
		org2 := seedOrg(t, orgs, "globex")
		seedOrg(t, orgs, "initech")

		userID := uuid.Must(uuid.NewV7())
		seedMember(t, orgs, org1.OrgID, userID, "jo@acme.com")
		seedMember(t, orgs, org2.OrgID, userID, "jo@acme.com")

		builder := NewBuilder(orgs)
		filter, err := builder.ForIdentity(ctx, auth.Identity{UserID: userID, Role: models.RoleClient})
		require.NoError(t, err)
		require.False(t, filter.Unbounded)
		require.ElementsMatch(t, []uuid.UUID{org1.OrgID, org2.OrgID}, filter.OrgIDs)
	})

	t.Run("memberships resolve by email when user id missing", func(t *testing.T) {
		orgs := memory.NewOrganizationStore()
		org := seedOrg(t, orgs, "acme")
		seedMember(t, orgs, org.OrgID, uuid.Must(uuid.NewV7()), "legacy@acme.com")

		builder := NewBuilder(orgs)
		filter, err := builder.ForIdentity(ctx, auth.Identity{
			Email: "legacy@acme.com",
			Role:  models.RoleClient,
		})
		require.NoError(t, err)
		require.ElementsMatch(t, []uuid.UUID{org.OrgID}, filter.OrgIDs)
	})

	t.Run("either key arm matches", func(t *testing.T) {
		orgs := memory.NewOrganizationStore()
		orgByID := seedOrg(t, orgs, "acme")
		orgByEmail := seedOrg(t, orgs, "globex")

		userID := uuid.Must(uuid.NewV7())
		seedMember(t, orgs, orgByID.OrgID, userID, "")
		seedMember(t, orgs, orgByEmail.OrgID, uuid.Must(uuid.NewV7()), "jo@acme.com")

		builder := NewBuilder(orgs)
		filter, err := builder.ForIdentity(ctx, auth.Identity{
			UserID: userID,
			Email:  "jo@acme.com",
			Role:   models.RoleClient,
		})
		require.NoError(t, err)
		require.ElementsMatch(t, []uuid.UUID{orgByID.OrgID, orgByEmail.OrgID}, filter.OrgIDs)
	})

	t.Run("elevated role is unbounded without membership rows", func(t *testing.T) {
		builder := NewBuilder(memory.NewOrganizationStore())

		for _, role := range models.ElevatedRoles {
			filter, err := builder.ForIdentity(ctx, auth.Identity{
				UserID: uuid.Must(uuid.NewV7()),
				Role:   role,
			})
			require.NoError(t, err)
			require.True(t, filter.Unbounded, "role %s", role)
			require.False(t, filter.MatchesNothing())
		}
	})
}

func TestAccessFilter(t *testing.T) {
	orgID := uuid.Must(uuid.NewV7())

	t.Run("empty filter matches nothing", func(t *testing.T) {
		f := store.AccessFilter{}
		require.True(t, f.MatchesNothing())
		require.False(t, f.AllowsOrg(orgID))
	})

	t.Run("unbounded filter allows any org", func(t *testing.T) {
		f := store.AccessFilter{Unbounded: true}
		require.False(t, f.MatchesNothing())
		require.True(t, f.AllowsOrg(orgID))
	})

	t.Run("scoped filter allows listed orgs only", func(t *testing.T) {
		f := store.AccessFilter{OrgIDs: []uuid.UUID{orgID}}
		require.True(t, f.AllowsOrg(orgID))
		require.False(t, f.AllowsOrg(uuid.Must(uuid.NewV7())))
	})
}
