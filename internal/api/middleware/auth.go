package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/hugh/scoutzos/internal/api/render"
	"github.com/hugh/scoutzos/internal/apperr"
	"github.com/hugh/scoutzos/internal/auth"
)

type contextKey string

const (
	UserIDKey         contextKey = "user_id"
	OrganizationIDKey contextKey = "organization_id"
	RequestIDKey      contextKey = "request_id"
)

// TenantHeader carries the organization every scoped request acts on.
const TenantHeader = "X-Org-Id"

// Actor identifies the acting user from an optional bearer token. Requests
// without one proceed anonymously; a token that fails validation is
// rejected.
func Actor(tokens auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || tokens == nil {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				render.Error(w, r, nil, apperr.Unauthorized("malformed authorization header"))
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, auth.ErrExpiredToken) {
					msg = "token has expired"
				}
				render.Error(w, r, nil, apperr.Unauthorized(msg))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTenant rejects requests without a tenant header and stores the
// tenant id in the context. The id itself is trusted as given; records of
// unknown tenants simply do not exist.
func RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orgID := strings.TrimSpace(r.Header.Get(TenantHeader))
		if orgID == "" {
			render.Error(w, r, nil, apperr.BadRequest(TenantHeader+" header is required"))
			return
		}

		ctx := context.WithValue(r.Context(), OrganizationIDKey, orgID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Helper functions to extract values from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// GetActor returns the acting user id, or nil for anonymous requests.
func GetActor(ctx context.Context) *string {
	if id := GetUserID(ctx); id != "" {
		return &id
	}
	return nil
}

func GetOrganizationID(ctx context.Context) string {
	if id, ok := ctx.Value(OrganizationIDKey).(string); ok {
		return id
	}
	return ""
}
