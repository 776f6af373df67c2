package auth_test

import (
	"testing"
	"time"

	"github.com/hugh/scoutzos/internal/auth"
	"github.com/hugh/scoutzos/internal/ids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIssuer = "scoutzos-test"

func TestJWTService_GenerateToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", testIssuer, 24*time.Hour)

	userID := ids.New()
	email := "agent@example.com"

	t.Run("generates valid token", func(t *testing.T) {
		token, err := jwtService.GenerateToken(userID, email)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, email, claims.Email)
	})

	t.Run("token contains issuer and subject", func(t *testing.T) {
		token, err := jwtService.GenerateToken(userID, email)
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, testIssuer, claims.Issuer)
		assert.Equal(t, userID, claims.Subject)
	})
}

func TestJWTService_ValidateToken(t *testing.T) {
	userID := ids.New()
	email := "agent@example.com"

	t.Run("rejects expired token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", testIssuer, 1*time.Millisecond)

		token, err := jwtService.GenerateToken(userID, email)
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		_, err = jwtService.ValidateToken(token)
		assert.Equal(t, auth.ErrExpiredToken, err)
	})

	t.Run("rejects tampered token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", testIssuer, 24*time.Hour)

		token, err := jwtService.GenerateToken(userID, email)
		require.NoError(t, err)

		_, err = jwtService.ValidateToken(token + "tampered")
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects token signed with different secret", func(t *testing.T) {
		signer := auth.NewJWTService("secret-1", testIssuer, 24*time.Hour)
		verifier := auth.NewJWTService("secret-2", testIssuer, 24*time.Hour)

		token, err := signer.GenerateToken(userID, email)
		require.NoError(t, err)

		_, err = verifier.ValidateToken(token)
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects token from another issuer", func(t *testing.T) {
		signer := auth.NewJWTService("test-secret", "someone-else", 24*time.Hour)
		verifier := auth.NewJWTService("test-secret", testIssuer, 24*time.Hour)

		token, err := signer.GenerateToken(userID, email)
		require.NoError(t, err)

		_, err = verifier.ValidateToken(token)
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects token without user", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", testIssuer, 24*time.Hour)

		token, err := jwtService.GenerateToken("", email)
		require.NoError(t, err)

		_, err = jwtService.ValidateToken(token)
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects malformed token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", testIssuer, 24*time.Hour)

		_, err := jwtService.ValidateToken("not-a-valid-jwt")
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects empty token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", testIssuer, 24*time.Hour)

		_, err := jwtService.ValidateToken("")
		assert.Equal(t, auth.ErrInvalidToken, err)
	})
}
