package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, 15*time.Minute, cfg.Auth.JWT.TTL)
	require.Equal(t, 72*time.Hour, cfg.Features.Wishes.GracePeriod)
	require.Equal(t, 90*24*time.Hour, cfg.Chat.Retention)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	contents := []byte(`
server:
  port: 9100
  log_level: debug
auth:
  jwt:
    secret: test-secret
    access_token_ttl: 30m
features:
  wishes:
    grace_period: 0s
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), contents, 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)
	require.Equal(t, "test-secret", cfg.Auth.JWT.Secret)
	require.Equal(t, 30*time.Minute, cfg.Auth.JWT.TTL)
	require.Zero(t, cfg.Features.Wishes.GracePeriod)
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsMissingSecret(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.Auth.JWT.Secret = "secret"
	cfg.Server.Port = -1
	require.Error(t, cfg.Validate())
}

func TestJWTServiceConfigTrimsValues(t *testing.T) {
	auth := AuthConfig{JWT: JWTSettings{Secret: "  s3cret  ", Issuer: " portal ", TTL: time.Minute}}
	jwtCfg := auth.JWTServiceConfig()
	require.Equal(t, "s3cret", jwtCfg.Secret)
	require.Equal(t, "portal", jwtCfg.Issuer)
	require.Equal(t, time.Minute, jwtCfg.AccessTokenTTL)
}
