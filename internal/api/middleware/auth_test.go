package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hugh/scoutzos/internal/api/dto"
	"github.com/hugh/scoutzos/internal/auth"
	"github.com/hugh/scoutzos/internal/ids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWT() *auth.JWTService {
	return auth.NewJWTService("test-secret", "scoutzos-test", 24*time.Hour)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestActor_ValidToken(t *testing.T) {
	jwtService := newJWT()
	userID := ids.New()

	token, err := jwtService.GenerateToken(userID, "agent@example.com")
	require.NoError(t, err)

	handler := Actor(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userID, GetUserID(r.Context()))
		require.NotNil(t, GetActor(r.Context()))
		assert.Equal(t, userID, *GetActor(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/owners", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestActor_NoToken_Anonymous(t *testing.T) {
	called := false
	handler := Actor(newJWT())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Nil(t, GetActor(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/owners", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestActor_Rejected(t *testing.T) {
	jwtService := newJWT()
	expired, err := auth.NewJWTService("test-secret", "scoutzos-test", -time.Hour).GenerateToken(ids.New(), "x@example.com")
	require.NoError(t, err)
	foreign, err := auth.NewJWTService("other-secret", "scoutzos-test", time.Hour).GenerateToken(ids.New(), "x@example.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"garbage token", "Bearer not-a-jwt", "invalid token"},
		{"expired token", "Bearer " + expired, "token has expired"},
		{"different secret", "Bearer " + foreign, "invalid token"},
		{"basic scheme", "Basic dXNlcjpwYXNz", "malformed authorization header"},
		{"empty bearer", "Bearer ", "malformed authorization header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Actor(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler should not be called")
			}))

			req := httptest.NewRequest("GET", "/api/v1/owners", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, "unauthorized", body.Kind)
			assert.Equal(t, tt.message, body.Error)
		})
	}
}

func TestRequireTenant(t *testing.T) {
	orgID := ids.New()

	handler := RequireTenant(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, orgID, GetOrganizationID(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/owners", nil)
	req.Header.Set(TenantHeader, " "+orgID+" ")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireTenant_MissingHeader(t *testing.T) {
	handler := RequireTenant(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	for _, value := range []string{"", "   "} {
		req := httptest.NewRequest("GET", "/api/v1/owners", nil)
		if value != "" {
			req.Header.Set(TenantHeader, value)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "bad_request", body.Kind)
		assert.Equal(t, "X-Org-Id header is required", body.Error)
	}
}

func TestContextGetters_Empty(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", GetUserID(ctx))
	assert.Nil(t, GetActor(ctx))
	assert.Equal(t, "", GetOrganizationID(ctx))
	assert.Equal(t, "", GetRequestID(ctx))
}
