package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 3000, cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	require.Equal(t, "INR", cfg.Currency.Code)
	require.Equal(t, 83.0, cfg.Currency.Multiplier)
	require.Equal(t, 5, cfg.RateLimit.Login)
	require.Equal(t, 3, cfg.RateLimit.Register)
	require.True(t, cfg.Seed)
	require.False(t, cfg.Metrics.Enabled)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_PORT", "8080")
	t.Setenv("STOREFRONT_LOGLEVEL", "debug")
	t.Setenv("STOREFRONT_JWT_SECRET", "supersecret")
	t.Setenv("STOREFRONT_JWT_TTL", "1h")
	t.Setenv("STOREFRONT_METRICS_ENABLED", "true")
	t.Setenv("STOREFRONT_METRICS_TOKEN", "t0k3n")
	t.Setenv("STOREFRONT_CURRENCY_CODE", "USD")
	t.Setenv("STOREFRONT_CURRENCY_MULTIPLIER", "1")
	t.Setenv("STOREFRONT_RATELIMIT_WINDOW", "30s")
	t.Setenv("STOREFRONT_SEED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "supersecret", cfg.JWT.Secret)
	require.Equal(t, time.Hour, cfg.JWT.TTL)
	require.True(t, cfg.Metrics.Enabled)
	require.Equal(t, "t0k3n", cfg.Metrics.Token)
	require.Equal(t, "USD", cfg.Currency.Code)
	require.Equal(t, 1.0, cfg.Currency.Multiplier)
	require.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	require.False(t, cfg.Seed)
}

func TestUnrelatedEnvIsIgnored(t *testing.T) {
	t.Setenv("PORT", "9999")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3000, cfg.Port)
}
