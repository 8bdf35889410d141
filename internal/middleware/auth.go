// internal/middleware/auth.go
package middleware

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/vinculocrm/vinculo/internal/auth"
	"github.com/vinculocrm/vinculo/internal/domain"
	"github.com/vinculocrm/vinculo/internal/model"
	"github.com/vinculocrm/vinculo/internal/service"
)

type contextKey string

const callerKey contextKey = "vinculo_caller"

// Caller is the authenticated identity attached to the request context.
// OrganizationID scopes every downstream query.
type Caller struct {
	UserID         string
	OrganizationID string
	Email          string
	Role           model.Role
}

// CallerFromContext returns the authenticated caller, if any
func CallerFromContext(ctx context.Context) (*Caller, bool) {
	caller, ok := ctx.Value(callerKey).(*Caller)
	return caller, ok
}

// Identity creates a middleware that validates the bearer token and
// resolves the caller's profile. Requests without a resolvable profile
// never reach the handlers.
func Identity(tokenManager *auth.TokenManager, authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondWithError(w, http.StatusUnauthorized, "No authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondWithError(w, http.StatusUnauthorized, "Invalid authorization header")
				return
			}

			claims, err := tokenManager.Validate(parts[1])
			if err != nil {
				respondWithError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			profile, err := authService.FindProfile(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrProfileNotFound) {
					respondWithError(w, http.StatusNotFound, "Profile not found")
					return
				}
				respondWithError(w, http.StatusInternalServerError, "Failed to resolve profile")
				return
			}

			caller := &Caller{
				UserID:         profile.ID.String(),
				OrganizationID: profile.OrganizationID.String(),
				Email:          profile.Email,
				Role:           profile.Role,
			}

			ctx := context.WithValue(r.Context(), callerKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects callers that do not hold the admin role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerFromContext(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "No authenticated caller")
			return
		}
		if caller.Role != model.RoleAdmin {
			respondWithError(w, http.StatusForbidden, "Admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SameOrigin rejects mutating requests whose Origin or Referer does not
// match one of the allowed origins. Requests carrying neither header
// pass through so non-browser clients keep working.
func SameOrigin(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[strings.TrimSuffix(origin, "/")] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			default:
				next.ServeHTTP(w, r)
				return
			}

			origin := r.Header.Get("Origin")
			if origin == "" {
				if referer := r.Header.Get("Referer"); referer != "" {
					if u, err := url.Parse(referer); err == nil {
						origin = u.Scheme + "://" + u.Host
					}
				}
			}
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !allowed[strings.TrimSuffix(origin, "/")] {
				respondWithError(w, http.StatusForbidden, "Origin not allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// InstallerGuard hides the installer surface when disabled and requires
// the shared installer token when one is configured. A disabled
// installer answers 404 so the endpoint does not advertise itself.
// Without a configured token the guard passes requests through, which
// matches the meta endpoint reporting requiresToken false.
func InstallerGuard(enabled bool, token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondWithError(w, http.StatusUnauthorized, "Invalid authorization header")
				return
			}
			if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(token)) != 1 {
				respondWithError(w, http.StatusUnauthorized, "Invalid installer token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// respondWithError sends a JSON error response
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
