// Package scope computes which resources a caller may see and enforces that
// boundary. The Builder translates an identity into an access filter over
// organizations; the Guard applies it to individual lookups and fails
// closed.
package scope

import (
	"context"
	"fmt"

	"github.com/wolfeidau/studiodesk/internal/auth"
	"github.com/wolfeidau/studiodesk/internal/store"
)

// Builder resolves an identity's organization memberships into an access
// filter. It is a pure read over membership rows; no side effects.
type Builder struct {
	orgs store.OrganizationStore
}

// NewBuilder creates a scope builder backed by the given organization store.
func NewBuilder(orgs store.OrganizationStore) *Builder {
	return &Builder{orgs: orgs}
}

// ForIdentity returns the access filter for an identity.
//
// Membership rows are matched by user ID or email, with both arms combined
// when both are present; this tolerates identity records keyed
// inconsistently between session and user rows. An identity with neither key
// yields a filter that matches nothing rather than an error. Elevated roles
// yield an unbounded filter; the bypass is explicit, not a membership list.
func (b *Builder) ForIdentity(ctx context.Context, identity auth.Identity) (store.AccessFilter, error) {
	if identity.Elevated() {
		return store.AccessFilter{Unbounded: true}, nil
	}

	if identity.IsZero() {
		return store.AccessFilter{}, nil
	}

	orgIDs, err := b.orgs.MemberOrgIDs(ctx, identity.UserID, identity.Email)
	if err != nil {
		return store.AccessFilter{}, fmt.Errorf("failed to resolve memberships: %w", err)
	}

	return store.AccessFilter{OrgIDs: orgIDs}, nil
}
