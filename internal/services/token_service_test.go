package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_GenerateAndValidate(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")

	token, err := env.tokens.GenerateToken(alice, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, time.Minute)

	user, err := env.tokens.ValidateToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)
	assert.Equal(t, "alice", user.Username)

	tokens, err := env.tokens.ListUserTokens(alice.ID)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	require.NotNil(t, tokens[0].LastUsedAt)
	assert.WithinDuration(t, time.Now(), *tokens[0].LastUsedAt, time.Minute)
}

func TestTokenService_DefaultExpiry(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")

	token, err := env.tokens.GenerateToken(alice, 0)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, time.Minute)
}

func TestTokenService_ValidateRejects(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")

	t.Run("garbage", func(t *testing.T) {
		_, err := env.tokens.ValidateToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewTokenService(env.tokenRepo, "another-secret", time.Hour)
		token, err := other.GenerateToken(alice, time.Hour)
		require.NoError(t, err)

		_, err = env.tokens.ValidateToken(token.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := env.tokens.GenerateToken(alice, time.Nanosecond)
		require.NoError(t, err)

		_, err = env.tokens.ValidateToken(token.Token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("revoked", func(t *testing.T) {
		token, err := env.tokens.GenerateToken(alice, time.Hour)
		require.NoError(t, err)
		require.NoError(t, env.tokens.DeleteToken(token.ID, alice.ID))

		_, err = env.tokens.ValidateToken(token.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestTokenService_ListAndDelete(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	first, err := env.tokens.GenerateToken(alice, time.Hour)
	require.NoError(t, err)
	_, err = env.tokens.GenerateToken(alice, time.Hour)
	require.NoError(t, err)

	tokens, err := env.tokens.ListUserTokens(alice.ID)
	require.NoError(t, err)
	assert.Len(t, tokens, 2)

	assert.ErrorIs(t, env.tokens.DeleteToken(first.ID, bob.ID), ErrTokenNotFound)
	assert.NoError(t, env.tokens.DeleteToken(first.ID, alice.ID))

	tokens, err = env.tokens.ListUserTokens(alice.ID)
	require.NoError(t, err)
	assert.Len(t, tokens, 1)
}

func TestTokenService_PurgeExpired(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")

	_, err := env.tokens.GenerateToken(alice, time.Nanosecond)
	require.NoError(t, err)
	_, err = env.tokens.GenerateToken(alice, time.Hour)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	n, err := env.tokens.PurgeExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
