package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/maxviazov/chat-endpoints/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "chat-endpoints", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, config.DefaultBaseURL, cfg.API.BaseURL)
	assert.True(t, cfg.Proxy.Enabled)
	assert.Equal(t, "/api", cfg.Proxy.Prefix)
	assert.Equal(t, config.DefaultBaseURL, cfg.Proxy.Target)
	assert.True(t, cfg.Proxy.ChangeOrigin)
	assert.Equal(t, 30, cfg.Proxy.Timeout)
	assert.Equal(t, "dev", cfg.Logger.Env)
}

func TestLoad_FromYAMLAndEnv(t *testing.T) {
	yaml := `
app:
  name: chat-endpoints
  env: test
  port: 18080

logger:
  level: info
  format: json

api:
  base_url: http://192.168.110.99:3000

proxy:
  prefix: /backend/
  change_origin: false
`
	path := writeTempConfig(t, yaml)
	t.Setenv("APP_APP_PORT", "19090")
	t.Setenv("APP_PROXY_TARGET", "http://10.0.0.5:3000")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 19090, cfg.App.Port)
	assert.Equal(t, "test", cfg.App.Env)
	assert.Equal(t, "test", cfg.Logger.Env)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "http://192.168.110.99:3000", cfg.API.BaseURL)
	assert.Equal(t, "/backend", cfg.Proxy.Prefix)
	assert.Equal(t, "http://10.0.0.5:3000", cfg.Proxy.Target)
	assert.False(t, cfg.Proxy.ChangeOrigin)
}

func TestLoad_BaseURLFromEnv(t *testing.T) {
	t.Setenv("APP_API_BASE_URL", "https://chat.example.com")
	t.Setenv("APP_PROXY_ENABLED", "false")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://chat.example.com", cfg.API.BaseURL)
	assert.False(t, cfg.Proxy.Enabled)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_ValidationFailures(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"empty base url", map[string]string{"APP_API_BASE_URL": " "}},
		{"base url without scheme", map[string]string{"APP_API_BASE_URL": "127.0.0.1:3000"}},
		{"non http base url", map[string]string{"APP_API_BASE_URL": "ftp://example.com"}},
		{"port out of range", map[string]string{"APP_APP_PORT": "70000"}},
		{"unknown env", map[string]string{"APP_APP_ENV": "qa"}},
		{"relative proxy prefix", map[string]string{"APP_PROXY_PREFIX": "api"}},
		{"root proxy prefix", map[string]string{"APP_PROXY_PREFIX": "/"}},
		{"prefix shadows catalog", map[string]string{"APP_PROXY_PREFIX": "/routes"}},
		{"prefix under catalog", map[string]string{"APP_PROXY_PREFIX": "/routes/api"}},
		{"prefix shadows liveness", map[string]string{"APP_PROXY_PREFIX": "/live"}},
		{"prefix shadows readiness", map[string]string{"APP_PROXY_PREFIX": "/ready/"}},
		{"prefix shadows metrics", map[string]string{"APP_PROXY_PREFIX": "/metrics"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := config.Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation error")
		})
	}
}

func TestLoad_ReservedPrefixAllowedWhenProxyDisabled(t *testing.T) {
	t.Setenv("APP_PROXY_ENABLED", "false")
	t.Setenv("APP_PROXY_PREFIX", "/routes")

	_, err := config.Load("")
	assert.NoError(t, err)
}

func TestLoad_PrefixSharingReservedStemIsAccepted(t *testing.T) {
	t.Setenv("APP_PROXY_PREFIX", "/routes-backend")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "/routes-backend", cfg.Proxy.Prefix)
}

func TestLoad_LoggerEnvOverrides(t *testing.T) {
	t.Setenv("APP_LOGGER_TIME_FIELD", "time")
	t.Setenv("APP_LOGGER_TIME_FORMAT", "unix")
	t.Setenv("APP_LOGGER_SERVICE_NAME", "chat-proxy")
	t.Setenv("APP_LOGGER_SERVICE_VERSION", "9.9.9")
	t.Setenv("APP_LOGGER_WITH_CALLER", "true")
	t.Setenv("APP_LOGGER_STACKTRACE", "true")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "time", cfg.Logger.TimeField)
	assert.Equal(t, "unix", cfg.Logger.TimeFormat)
	assert.Equal(t, "chat-proxy", cfg.Logger.ServiceName)
	assert.Equal(t, "9.9.9", cfg.Logger.ServiceVersion)
	assert.True(t, cfg.Logger.WithCaller)
	assert.True(t, cfg.Logger.Stacktrace)
}

func TestLoad_LoggerIdentityFollowsApp(t *testing.T) {
	t.Setenv("APP_APP_NAME", "chat-gateway")
	t.Setenv("APP_APP_VERSION", "1.2.3")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "chat-gateway", cfg.Logger.ServiceName)
	assert.Equal(t, "1.2.3", cfg.Logger.ServiceVersion)
}
