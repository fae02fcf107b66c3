package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("JWT_EXPIRY", "")
	t.Setenv("ADMIN_USERS", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 720*time.Hour, cfg.JWT.Expiry)
	assert.Empty(t, cfg.AdminUsers)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Logto.Enabled())
}

func TestLoad_Lists(t *testing.T) {
	t.Setenv("ADMIN_USERS", " alice, bob ,,")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"alice", "bob"}, cfg.AdminUsers)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_InvalidExpiry(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("requires jwt secret outside test mode", func(t *testing.T) {
		cfg := &Config{JWT: JWTConfig{Expiry: time.Hour}}
		assert.Error(t, cfg.Validate())

		cfg.TestMode = true
		assert.NoError(t, cfg.Validate())
	})

	t.Run("requires session secret with logto", func(t *testing.T) {
		cfg := &Config{
			JWT:   JWTConfig{Secret: "s", Expiry: time.Hour},
			Logto: LogtoConfig{Endpoint: "https://auth.example", AppID: "app"},
		}
		assert.Error(t, cfg.Validate())

		cfg.Session.Secret = "session"
		assert.NoError(t, cfg.Validate())
	})
}
