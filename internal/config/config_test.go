package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("CLICK_SECRET_KEY", "secret")
	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("HTTP_READ_TIMEOUT", "3s")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.AppPort)
	require.Equal(t, "secret", cfg.ClickSecretKey)
	require.Equal(t, 24*time.Hour, cfg.TokenExpires)
	require.Equal(t, 3*time.Second, cfg.ReadTimeout)
	require.Equal(t, 10*time.Second, cfg.WriteTimeout)
	require.False(t, cfg.MetricsEnabled)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_RequiresClickSecret(t *testing.T) {
	t.Setenv("CLICK_SECRET_KEY", "")
	t.Setenv("JWT_SECRET", "jwt-secret")

	_, err := Load()
	require.ErrorContains(t, err, "CLICK_SECRET_KEY")
}

func TestValidate_RejectsNonPositiveTTL(t *testing.T) {
	cfg := &Config{AppPort: "8080", ClickSecretKey: "k", JWTSecret: "j"}
	require.Error(t, cfg.validate())

	cfg.TokenExpires = time.Hour
	require.NoError(t, cfg.validate())
}
