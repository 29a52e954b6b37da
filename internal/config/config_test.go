package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordrush/wordrush/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg := config.Defaults()
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Empty(t, cfg.Dictionary.LookupURL)
	assert.Equal(t, 2*time.Second, cfg.Dictionary.LookupTimeout)
	require.NoError(t, cfg.Validate())
}

func TestAddr(t *testing.T) {
	s := config.ServerConfig{Host: "127.0.0.1", Port: 9000}
	assert.Equal(t, "127.0.0.1:9000", s.Addr())
}

func TestValidate(t *testing.T) {
	valid := config.Defaults()

	cases := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *config.Config) {},
		},
		{
			name:    "port zero",
			mutate:  func(c *config.Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "port too large",
			mutate:  func(c *config.Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "negative shutdown timeout",
			mutate:  func(c *config.Config) { c.Server.ShutdownTimeout = -time.Second },
			wantErr: "shutdown_timeout",
		},
		{
			name:    "bad log level",
			mutate:  func(c *config.Config) { c.Logging.Level = "verbose" },
			wantErr: "logging.level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *config.Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
		{
			name:    "zero lookup timeout",
			mutate:  func(c *config.Config) { c.Dictionary.LookupTimeout = 0 },
			wantErr: "lookup_timeout",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := config.Defaults()
	cfg.Server.Port = 0
	cfg.Logging.Level = "verbose"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
	assert.Contains(t, err.Error(), "logging.level")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  host: 127.0.0.1
  port: 9090
logging:
  level: debug
  format: console
dictionary:
  lookup_url: https://api.dictionaryapi.dev/api/v2/entries/en
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "https://api.dictionaryapi.dev/api/v2/entries/en", cfg.Dictionary.LookupURL)
	// Unset fields keep their defaults.
	assert.Equal(t, 2*time.Second, cfg.Dictionary.LookupTimeout)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644))
	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestLoadFromViper(t *testing.T) {
	v := viper.New()
	v.Set("server.host", "::1")
	v.Set("server.port", 8443)
	v.Set("server.shutdown_timeout", "5s")
	v.Set("logging.level", "warn")
	v.Set("logging.format", "json")
	v.Set("dictionary.lookup_timeout", "1s")

	cfg, err := config.LoadFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "::1", cfg.Server.Host)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, time.Second, cfg.Dictionary.LookupTimeout)
}
