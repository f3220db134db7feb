package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.AddConfigPath(t.TempDir())
	return v
}

func TestLoadDefaultsWithSecretFromEnv(t *testing.T) {
	t.Setenv("FORESTOS_SECURITY__SECRET_KEY", testSecret)

	cfg, err := load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 7*24*time.Hour, cfg.Security.AccessTokenExpire)
	assert.Equal(t, time.Hour, cfg.Redis.CatalogTTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("FORESTOS_SECURITY__SECRET_KEY", "short")

	_, err := load(newViper(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret key")
}

func TestLoadReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  port: 9100
database:
  driver: memory
security:
  secret_key: "` + testSecret + `"
  access_token_expire: 30m
redis:
  enabled: true
  host: cache
  port: 6380
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	v := viper.New()
	v.AddConfigPath(dir)
	cfg, err := load(v)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Security.AccessTokenExpire)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr())
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("FORESTOS_SECURITY__SECRET_KEY", testSecret)
	t.Setenv("FORESTOS_DATABASE__DRIVER", "sqlite")

	_, err := load(newViper(t))
	require.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	c := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "forestos", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=forestos sslmode=disable", c.DSN())
}
