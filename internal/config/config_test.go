package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("FRONTEND_URL", "")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "")
	t.Setenv("EMAIL_USER", "")
	t.Setenv("EMAIL_FROM", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "http://localhost:3001", cfg.HTTP.FrontendURL)
	assert.Equal(t, 30*24*60, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/c.db")
	t.Setenv("EMAIL_USER", "mailer@example.com")
	t.Setenv("EMAIL_FROM", "")
	t.Setenv("EMAIL_PORT", "465")
	t.Setenv("EMAIL_SECURE", "true")
	t.Setenv("FRONTEND_URL", "https://complaints.example.com/")
	t.Setenv("REDIS_CACHE_TTL_SECONDS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/c.db", cfg.SQLite.Path)
	assert.Equal(t, "mailer@example.com", cfg.Mail.From)
	assert.Equal(t, 465, cfg.Mail.Port)
	assert.True(t, cfg.Mail.Secure)
	assert.Equal(t, "https://complaints.example.com", cfg.HTTP.FrontendURL)
	assert.Equal(t, 300*time.Second, cfg.Redis.CacheTTL())
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidRedisDB(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("REDIS_DB", "zero")

	_, err := Load()
	assert.Error(t, err)
}

func TestAppConfig_Addr(t *testing.T) {
	app := AppConfig{Host: "127.0.0.1", Port: "9000"}
	assert.Equal(t, "127.0.0.1:9000", app.Addr())
	assert.Zero(t, AppConfig{RequestTimeoutSeconds: -1}.RequestTimeout())
}
