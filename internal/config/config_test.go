package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nonso/acadport/internal/pkg/auth"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaultsAndFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
jwt:
  secret: "file-secret"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, "file-secret", cfg.JWT.Secret)
	// Untouched fields keep their defaults.
	require.Equal(t, "localhost", cfg.Database.Host)
	require.Equal(t, 24*time.Hour, cfg.JWTTokenExpiration())
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
jwt:
  secret: "file-secret"
`)
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DB_MAX_CONNS", "50")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "7070", cfg.Server.Port)
	require.Equal(t, "env-secret", cfg.JWT.Secret)
	require.Equal(t, 50, cfg.Database.MaxConns)
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT secret")
}

func TestLoadConfigRejectsPlaintextAdminPassword(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: "s"
admin:
  email: "admin@school.edu"
  password_hash: "hunter2"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "admin password hash")
}

func TestLoadConfigAcceptsBcryptAdminHash(t *testing.T) {
	hash, err := auth.HashPassword("admin-pass")
	require.NoError(t, err)

	path := writeConfig(t, `
jwt:
  secret: "s"
admin:
  email: "admin@school.edu"
  password_hash: "`+hash+`"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "admin@school.edu", cfg.Admin.Email)
}

func TestPostgresDSN(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: "s"
database:
  user: "app"
  password: "pw"
  host: "db"
  port: "5433"
  dbname: "registry"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "postgres://app:pw@db:5433/registry?sslmode=disable", cfg.PostgresDSN())
}
