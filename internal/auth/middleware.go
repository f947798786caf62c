// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

package auth

import (
	"context"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/stockroomhq/stockroom/internal/logging"
	"github.com/stockroomhq/stockroom/internal/models"
)

type contextKey string

// ClaimsContextKey is where Authenticate stores the verified claims.
const ClaimsContextKey contextKey = "claims"

// ClaimsFromContext returns the claims placed by Authenticate, or nil.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(ClaimsContextKey).(*Claims)
	return claims
}

// Authenticate verifies the bearer token on every request and stores the
// claims in the request context. Requests without a valid token get 401.
func Authenticate(manager *JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := extractBearer(r)
			if tokenStr == "" {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
				return
			}

			claims, err := manager.ValidateToken(tokenStr)
			if err != nil {
				logging.Debug().Err(err).Msg("token rejected")
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authorize grants access when the subject's role is in roles OR any of
// its permissions is in permissions. An authenticated subject that
// matches neither gets 403.
func Authorize(roles []string, permissions []string) func(http.Handler) http.Handler {
	roleSet := toSet(roles)
	permSet := toSet(permissions)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
				return
			}

			if _, ok := roleSet[claims.Role]; ok {
				next.ServeHTTP(w, r)
				return
			}
			for _, p := range claims.Permissions {
				if _, ok := permSet[p]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			logging.Warn().
				Str("user", claims.ID).
				Str("role", claims.Role).
				Str("path", r.URL.Path).
				Msg("access denied")
			writeError(w, http.StatusForbidden, "FORBIDDEN", "insufficient role or permissions")
		})
	}
}

func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{
		Error: &models.APIError{Code: code, Message: message},
	})
}
