package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("APP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreBackendMemory, cfg.Store.Backend)
	assert.True(t, cfg.Store.Seed)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "hr:", cfg.Redis.KeyPrefix)
}

func TestValidate(t *testing.T) {
	t.Run("postgres needs a dsn", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "postgres")
		t.Setenv("POSTGRES_DSN", "")
		_, err := Load()
		assert.ErrorContains(t, err, "POSTGRES_DSN")
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "sqlite")
		_, err := Load()
		assert.ErrorContains(t, err, "sqlite")
	})

	t.Run("redis backend with a custom prefix", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "Redis")
		t.Setenv("REDIS_KEY_PREFIX", "staging:")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, StoreBackendRedis, cfg.Store.Backend)
		assert.Equal(t, "staging:", cfg.Redis.KeyPrefix)
	})
}
