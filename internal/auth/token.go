package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/wolfeidau/studiodesk/internal/models"
)

// ErrUnauthenticated is returned when a session token cannot be verified.
var ErrUnauthenticated = errors.New("unauthenticated")

// SessionClaims are the claims carried by a session token. The subject is
// the user ID; email and role ride alongside so the identity can be resolved
// without a database round-trip.
type SessionClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier verifies HS256 session tokens and resolves them to an
// Identity.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier creates a verifier for the given signing secret. The
// secret must be at least 32 bytes for HMAC-SHA256.
func NewTokenVerifier(secret []byte) (*TokenVerifier, error) {
	if len(secret) < 32 {
		return nil, errors.New("session signing secret must be at least 32 bytes")
	}
	return &TokenVerifier{secret: secret}, nil
}

// Verify parses and validates a session token, returning the identity it
// carries. Every failure collapses into ErrUnauthenticated so callers map it
// to a single 401.
func (v *TokenVerifier) Verify(tokenStr string) (Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("invalid signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return Identity{}, ErrUnauthenticated
	}

	identity := Identity{
		Email: claims.Email,
		Role:  models.Role(claims.Role),
	}
	if claims.Subject != "" {
		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return Identity{}, fmt.Errorf("%w: invalid subject", ErrUnauthenticated)
		}
		identity.UserID = userID
	}

	if identity.IsZero() {
		return Identity{}, fmt.Errorf("%w: empty identity", ErrUnauthenticated)
	}

	return identity, nil
}

// IssueSessionToken signs a session token for the given identity. Used by
// the login flow and by tests to mint synthetic sessions.
func IssueSessionToken(secret []byte, identity Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Email: identity.Email,
		Role:  string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if identity.UserID != uuid.Nil {
		claims.Subject = identity.UserID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}
