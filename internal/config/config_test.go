package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(false)
	require.NoError(t, err)

	assert.Equal(t, "https://ai.gateway.lovable.dev/v1", cfg.Gateway.BaseURL)
	assert.Equal(t, "google/gemini-2.5-flash", cfg.Gateway.Model)
	assert.Equal(t, 60000, cfg.Gateway.RequestTimeoutMs)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Database.URL)
	assert.False(t, cfg.Debug)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	t.Run("gateway key from primary variable", func(t *testing.T) {
		t.Setenv("VIBESPECS_GATEWAY_API_KEY", "primary")
		t.Setenv("LOVABLE_API_KEY", "fallback")

		cfg, err := Load(false)
		require.NoError(t, err)
		assert.Equal(t, "primary", cfg.Gateway.APIKey)
	})

	t.Run("gateway key falls back to provider variable", func(t *testing.T) {
		t.Setenv("VIBESPECS_GATEWAY_API_KEY", "")
		t.Setenv("LOVABLE_API_KEY", "fallback")

		cfg, err := Load(false)
		require.NoError(t, err)
		assert.Equal(t, "fallback", cfg.Gateway.APIKey)
	})

	t.Run("database URL", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/vibespecs")

		cfg, err := Load(false)
		require.NoError(t, err)
		assert.Equal(t, "postgres://localhost/vibespecs", cfg.Database.URL)
	})
}
