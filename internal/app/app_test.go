package app

import (
	"testing"
	"time"

	"github.com/onside-finance/onside/internal/config"
	"github.com/onside-finance/onside/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	cfg := &config.Config{
		Database:         config.DatabaseConfig{URL: ":memory:"},
		JWT:              config.JWTConfig{Secret: "test-secret", Expiry: time.Hour},
		ExportSigningKey: "signing-key",
	}

	a, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.Nil(t, a.Metrics)

	user, err := a.UserService.Register(schemas.UserCreate{Username: "alice", Password: "correct-horse"})
	require.NoError(t, err)

	summary, err := a.SummaryService.ForUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "USD", summary.Currency)
}

func TestNew_Metrics(t *testing.T) {
	cfg := &config.Config{
		Database:       config.DatabaseConfig{URL: ":memory:"},
		JWT:            config.JWTConfig{Secret: "test-secret", Expiry: time.Hour},
		MetricsEnabled: true,
	}

	a, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.NotNil(t, a.Metrics)
}
