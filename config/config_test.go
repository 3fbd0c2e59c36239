package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, `
db:
  dsn: postgres://localhost/contactbook
jwt:
  secret: test-secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWT.VerificationTTL)
	assert.Equal(t, 10, cfg.Server.RateLimitRPS)
	assert.True(t, cfg.Server.CookieSecure)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.Origins)
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	_, err := Load(writeConfig(t, "jwt:\n  secret: s\n"))
	assert.EqualError(t, err, "db.dsn is required")

	_, err = Load(writeConfig(t, "db:\n  dsn: postgres://x\n"))
	assert.EqualError(t, err, "jwt.secret is required")
}

func TestLoad_OverridesFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9000"
  cookie_secure: false
db:
  dsn: postgres://localhost/contactbook
jwt:
  secret: test-secret
  access_ttl: 5m
cors:
  origins:
    - https://app.example.com
    - https://admin.example.com
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.False(t, cfg.Server.CookieSecure)
	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessTTL)
	assert.Len(t, cfg.CORS.Origins, 2)
}
