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

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
remote:
  base_url: http://localhost:5000/api
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, cfg.RemoteTimeout())
	assert.Equal(t, 500*time.Millisecond, cfg.SettleDelay())
	assert.Equal(t, 500, cfg.Ledger.PageSize)
	assert.Equal(t, "file", cfg.Session.Store)
	assert.Equal(t, ".centswise/token", cfg.Session.TokenFile)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "./receipts", cfg.Storage.Dir)
	assert.Equal(t, "0 */5 * * * *", cfg.Scheduler.RefreshLedger)
	assert.Equal(t, "0 0 2 * * *", cfg.Scheduler.MarkOverdueDistributions)
	assert.False(t, cfg.JournalEnabled())
	assert.False(t, cfg.EmailEnabled())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
remote:
  base_url: http://localhost:5000/api
`)
	t.Setenv("CENTSWISE_API_URL", "https://ledger.example.org/api")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_NAME", "n")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://ledger.example.org/api", cfg.Remote.BaseURL)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.JournalEnabled())
	assert.Equal(t, "postgres://u:@db:5432/n?sslmode=disable", cfg.GetDatabaseConnectionString())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate_Errors(t *testing.T) {
	base := func() Config {
		return Config{
			Server: ServerConfig{Port: 8080},
			Remote: RemoteConfig{BaseURL: "http://localhost:5000/api"},
		}
	}
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"missing base url", func(c *Config) { c.Remote.BaseURL = "" }},
		{"relative base url", func(c *Config) { c.Remote.BaseURL = "/api" }},
		{"unknown session store", func(c *Config) { c.Session.Store = "cookie" }},
		{"redis store without addr", func(c *Config) { c.Session.Store = "redis" }},
		{"journal without user", func(c *Config) { c.Database.Host = "db"; c.Database.Database = "n" }},
		{"s3 without bucket", func(c *Config) { c.Storage.Type = "s3" }},
		{"unknown storage", func(c *Config) { c.Storage.Type = "ftp" }},
		{"sendgrid without sender", func(c *Config) { c.Email.APIKey = "SG.x" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := base()
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestRouteSecurity(t *testing.T) {
	assert.Equal(t, SecurityPublic, RouteSecurity("POST", "/api/auth/login"))
	assert.Equal(t, SecuritySession, RouteSecurity("POST", "/api/credits"))
	assert.Equal(t, SecuritySession, RouteSecurity("DELETE", "/api/unknown"))
}
