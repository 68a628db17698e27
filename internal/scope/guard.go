package scope

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/studiodesk/internal/auth"
	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
	"github.com/wolfeidau/studiodesk/internal/telemetry"
)

// ErrAccessDenied is returned for every guarded lookup that misses, whether
// the resource is absent or exists outside the caller's scope. The two cases
// are deliberately merged: distinguishing them would let a caller probe for
// the existence of resources it cannot see. Handlers map this to a 404.
var ErrAccessDenied = errors.New("access denied")

// Guard fetches scoped resources with the caller's access filter applied. A
// miss is always ErrAccessDenied; the guard never reveals whether the
// resource existed.
type Guard struct {
	builder  *Builder
	projects store.ProjectStore
}

// NewGuard creates a resource guard.
func NewGuard(builder *Builder, projects store.ProjectStore) *Guard {
	return &Guard{builder: builder, projects: projects}
}

// Project fetches a single project within the identity's scope. The lookup
// combines the requested ID and the access filter in one consistent read; no
// retries.
func (g *Guard) Project(ctx context.Context, identity auth.Identity, projectID uuid.UUID) (*models.Project, error) {
	m := telemetry.GetMetrics()
	m.GuardChecksTotal.Add(ctx, 1)

	filter, err := g.builder.ForIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}

	if filter.MatchesNothing() {
		m.GuardDeniedTotal.Add(ctx, 1)
		return nil, ErrAccessDenied
	}

	project, err := g.projects.GetFiltered(ctx, projectID, filter)
	if err != nil {
		if errors.Is(err, store.ErrProjectNotFound) {
			log.Debug().
				Str("project_id", projectID.String()).
				Str("user_id", identity.UserID.String()).
				Msg("Guard miss")
			m.GuardDeniedTotal.Add(ctx, 1)
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	m.ScopedReadsTotal.Add(ctx, 1)
	return project, nil
}

// Projects lists every project within the identity's scope, newest first.
func (g *Guard) Projects(ctx context.Context, identity auth.Identity) ([]*models.Project, error) {
	filter, err := g.builder.ForIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}

	if filter.MatchesNothing() {
		return nil, nil
	}

	projects, err := g.projects.ListFiltered(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	telemetry.GetMetrics().ScopedReadsTotal.Add(ctx, 1)
	return projects, nil
}
