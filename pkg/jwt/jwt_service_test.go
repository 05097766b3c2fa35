package jwt

import (
	"testing"
	"time"

	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := &jwtService{secretKey: "test-secret", issuer: "COOKFLOW", ttl: time.Hour}

	token, err := svc.GenerateTokenUser(42, "admin")
	require.NoError(t, err)

	id, role, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, "admin", role)
}

func TestRejectedTokens(t *testing.T) {
	svc := &jwtService{secretKey: "test-secret", issuer: "COOKFLOW", ttl: time.Hour}

	t.Run("expired", func(t *testing.T) {
		old := &jwtService{secretKey: "test-secret", issuer: "COOKFLOW", ttl: -time.Minute}
		token, err := old.GenerateTokenUser(1, "user")
		require.NoError(t, err)
		_, _, err = svc.GetUserIDByToken(token)
		assert.ErrorIs(t, err, domain.ErrTokenExpired)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := &jwtService{secretKey: "other", issuer: "COOKFLOW", ttl: time.Hour}
		token, err := other.GenerateTokenUser(1, "user")
		require.NoError(t, err)
		_, _, err = svc.GetUserIDByToken(token)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := &jwtService{secretKey: "test-secret", issuer: "ELSEWHERE", ttl: time.Hour}
		token, err := other.GenerateTokenUser(1, "user")
		require.NoError(t, err)
		_, _, err = svc.GetUserIDByToken(token)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("garbage", func(t *testing.T) {
		_, _, err := svc.GetUserIDByToken("not-a-token")
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("no secret", func(t *testing.T) {
		_, err := (&jwtService{}).GenerateTokenUser(1, "user")
		assert.Error(t, err)
	})
}
