package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		// t.Setenv sets the environment variable for the duration of the test
		// and automatically restores it afterwards.
		t.Setenv("API_BASE_URL", "https://api.example.test")
		t.Setenv("PAYMENT_PUBLIC_KEY", "pk_test_123")
		t.Setenv("APP_ENV", "test")
		t.Setenv("NAILSTORE_LANG", "VI")
		t.Setenv("TOKEN_REFRESH_INTERVAL", "5m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "https://api.example.test", cfg.APIBaseURL)
		assert.Equal(t, "pk_test_123", cfg.PaymentPublicKey)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "VI", cfg.Language)
		assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "https://api.example.test")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, 15*time.Minute, cfg.RefreshInterval)
		assert.Equal(t, 10.0, cfg.RateLimit)
		assert.Equal(t, 20, cfg.RateBurst)
		assert.Equal(t, "EN", cfg.Language)
		assert.Equal(t, ".nailstore", cfg.StateDir)
	})

	t.Run("Missing base URL", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "")

		cfg, err := Load()
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, ErrMissingAPIBaseURL)
	})
}
