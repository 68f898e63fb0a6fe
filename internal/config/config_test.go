package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadPath_Defaults(t *testing.T) {
	path := writeConfig(t, `
dsn: "postgres://u:p@localhost:5432/db"
admin:
  username: "admin"
  password: "secret"
jwt:
  secret: "signing-key"
mail:
  username: "robot@example.com"
`)

	cfg, err := LoadPath(path)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TokenTTL)
	assert.Equal(t, 465, cfg.Mail.Port)
	assert.Equal(t, 1, cfg.Mail.Workers)
	assert.Equal(t, "robot@example.com", cfg.Mail.FromEmail)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}

func TestLoadPath_MissingAdminSecret(t *testing.T) {
	path := writeConfig(t, `
dsn: "postgres://u:p@localhost:5432/db"
admin:
  username: "admin"
jwt:
  secret: "signing-key"
`)

	_, err := LoadPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}

func TestLoadPath_FileDoesNotExist(t *testing.T) {
	_, err := LoadPath(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestMustLoadPath_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustLoadPath(filepath.Join(t.TempDir(), "missing.yaml"))
	})
}
