package config

import (
	"os"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFromEnv(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "client-123.apps.googleusercontent.com")
	t.Setenv("SESSION_SECRET", "super-secret")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, https://app.superaisp.org/ ,")
	t.Setenv("ALLOWLIST_SOURCE", "remote")
	t.Setenv("ALLOWLIST_URL", "https://directory.example/api")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, "client-123.apps.googleusercontent.com", cfg.Auth.GoogleClientID)
	assert.Equal(t, "super-secret", cfg.Auth.SessionSecret)
	assert.Equal(t, 8*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "session", cfg.Auth.SessionCookieName)
	assert.Equal(t, "sistematizador", cfg.Auth.DefaultRole)
	assert.Equal(t, AllowlistSourceRemote, cfg.Allowlist.Source)
	assert.Equal(t, "https://directory.example/api", cfg.Allowlist.URL)
	assert.Equal(t, ":4000", cfg.HTTP.Addr)
	assert.Equal(t,
		[]string{"http://localhost:3000", "https://app.superaisp.org"},
		cfg.HTTP.AllowedOrigins)
}

func TestParseRequiresClientIDAndSecret(t *testing.T) {
	// t.Setenv registers restoration; unset afterwards so the variables are
	// genuinely absent for this test.
	t.Setenv("GOOGLE_CLIENT_ID", "x")
	t.Setenv("SESSION_SECRET", "x")
	require.NoError(t, os.Unsetenv("GOOGLE_CLIENT_ID"))
	require.NoError(t, os.Unsetenv("SESSION_SECRET"))

	var cfg AppConfig
	err := env.Parse(&cfg)
	require.Error(t, err)
}

func TestAllowlistSourceModeUnmarshalText(t *testing.T) {
	t.Parallel()

	var mode AllowlistSourceMode
	require.NoError(t, mode.UnmarshalText([]byte("POSTGRES")))
	assert.Equal(t, AllowlistSourcePostgres, mode)

	require.NoError(t, mode.UnmarshalText([]byte("file")))
	assert.Equal(t, AllowlistSourceFile, mode)

	err := mode.UnmarshalText([]byte("ldap"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid AllowlistSourceMode")
}

func TestAuthConfigSanitizeDefaults(t *testing.T) {
	t.Parallel()

	cfg := AuthConfig{
		GoogleClientID:    "  client  ",
		SessionCookieName: "  ",
		SessionTTL:        -1,
		VerifyTimeout:     0,
		DefaultRole:       " Coordinador ",
	}
	cfg.Sanitize()

	assert.Equal(t, "client", cfg.GoogleClientID)
	assert.Equal(t, "session", cfg.SessionCookieName)
	assert.Equal(t, 8*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10*time.Second, cfg.VerifyTimeout)
	assert.Equal(t, "coordinador", cfg.DefaultRole)
}

func TestAllowlistConfigSanitizeDefaults(t *testing.T) {
	t.Parallel()

	cfg := AllowlistConfig{
		UsersExpr:       "  ",
		ScheduleExpr:    "",
		FetchTimeout:    0,
		RefreshInterval: -time.Second,
	}
	cfg.Sanitize()

	assert.Equal(t, "users", cfg.UsersExpr)
	assert.Equal(t, "cronograma", cfg.ScheduleExpr)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
}

func TestHTTPConfigSanitizeOrigins(t *testing.T) {
	t.Parallel()

	cfg := HTTPConfig{AllowedOrigins: []string{" http://localhost:3000 ", "", "https://app.example/"}}
	cfg.Sanitize()

	assert.Equal(t, []string{"http://localhost:3000", "https://app.example"}, cfg.AllowedOrigins)
}

func TestDetectDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	cfg := AppConfig{}
	cfg.Sanitize()
	assert.True(t, cfg.IsDev)

	t.Setenv("NODE_ENV", "production")
	cfg = AppConfig{}
	cfg.Sanitize()
	assert.False(t, cfg.IsDev)
}

func TestMetricsSanitizeDisablesWithoutAddress(t *testing.T) {
	t.Parallel()

	cfg := ObservabilityMetricsConfig{Enabled: true, StatsdAddress: "   "}
	cfg.Sanitize()

	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.IsEnabled())
}
