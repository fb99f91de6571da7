package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the test controls the whole
// environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HELIUS_API_KEY", "HELIUS_BASE_URL", "HELIUS_RPC_URL",
		"DEXSCREENER_BASE_URL", "HOST", "PORT", "ANALYSIS_TIMEOUT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HELIUS_API_KEY", "real-api-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "real-api-key", cfg.HeliusAPIKey)
	assert.Equal(t, "https://api.helius.xyz", cfg.HeliusBaseURL)
	assert.Equal(t, "https://mainnet.helius-rpc.com", cfg.HeliusRPCURL)
	assert.Equal(t, "https://api.dexscreener.com", cfg.DexScreenerBaseURL)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 45*time.Second, cfg.AnalysisTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HELIUS_API_KEY", "real-api-key")
	t.Setenv("HELIUS_BASE_URL", "http://localhost:9999")
	t.Setenv("PORT", "3000")
	t.Setenv("ANALYSIS_TIMEOUT", "90s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.HeliusBaseURL)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 90*time.Second, cfg.AnalysisTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingOrPlaceholderKey(t *testing.T) {
	placeholders := []string{"", "your-api-key", "YOUR_API_KEY", "changeme", "<helius-api-key>", "   "}

	for _, key := range placeholders {
		t.Run("key "+key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("HELIUS_API_KEY", key)

			_, err := Load()
			require.Error(t, err)
			var missing ErrMissingHeliusKey
			assert.True(t, errors.As(err, &missing))
		})
	}
}

func TestLoadInvalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("HELIUS_API_KEY", "real-api-key")
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := Load()
	assert.ErrorContains(t, err, "invalid LOG_LEVEL")
}

func TestLoadInvalidTimeout(t *testing.T) {
	t.Run("unparseable", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("HELIUS_API_KEY", "real-api-key")
		t.Setenv("ANALYSIS_TIMEOUT", "soon")

		_, err := Load()
		assert.ErrorContains(t, err, "invalid ANALYSIS_TIMEOUT")
	})

	t.Run("below one second", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("HELIUS_API_KEY", "real-api-key")
		t.Setenv("ANALYSIS_TIMEOUT", "200ms")

		_, err := Load()
		assert.ErrorContains(t, err, "at least 1s")
	})
}
