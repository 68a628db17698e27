package auth

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// Middleware authenticates requests using Bearer session tokens. On success
// the resolved Identity is added to the request context; on failure the
// request is rejected with the uniform 401 body.
func Middleware(verifier *TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := bearerToken(r)
			if !ok {
				writeUnauthorized(w)
				return
			}

			identity, err := verifier.Verify(tokenStr)
			if err != nil {
				log.Debug().Err(err).Msg("Session auth: failed to verify token")
				writeUnauthorized(w)
				return
			}

			log.Debug().
				Str("user_id", identity.UserID.String()).
				Str("role", string(identity.Role)).
				Msg("Session auth: authenticated")

			ctx := WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireCapability gates a route on a role capability. Runs after
// Middleware; an authenticated identity lacking the capability gets the
// uniform 403 body.
func RequireCapability(cap Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				writeUnauthorized(w)
				return
			}

			if !identity.Can(cap) {
				log.Debug().
					Str("role", string(identity.Role)).
					Str("capability", string(cap)).
					Msg("Capability check failed")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"Forbidden"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
}
