package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/models"
)

// Identity is the resolved caller reference for one request. It is derived
// from the session token by the middleware and passed explicitly through the
// scope builder and resource guard, never read from ambient state below the
// middleware, so guards stay testable with synthetic identities.
//
// Either UserID or Email may be missing; the scope builder tolerates session
// records keyed inconsistently between the two.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   models.Role
}

// IsZero reports whether the identity carries neither a user ID nor an
// email. A zero identity must never match any resource.
func (i Identity) IsZero() bool {
	return i.UserID == uuid.Nil && i.Email == ""
}

// Elevated reports whether the identity's role bypasses organization
// scoping.
func (i Identity) Elevated() bool {
	return HasCapability(i.Role, CapBypassScope)
}

// Can reports whether the identity's role carries the given capability.
func (i Identity) Can(cap Capability) bool {
	return HasCapability(i.Role, cap)
}

type contextKey int

const identityContextKey contextKey = iota

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext extracts the authenticated identity from the request
// context. The second return is false for unauthenticated requests.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(Identity)
	return identity, ok
}
