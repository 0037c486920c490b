package config

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "automata.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Server.Metrics)
	assert.Empty(t, cfg.File)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, `
log_level: warn
store: redis
definitions_dir: ./defs
redis:
  addr: cache:6379
  ttl: 1h
server:
  port: 9000
`)

	t.Setenv("AUTOMATA_LOG_LEVEL", "error")
	t.Setenv("AUTOMATA_REDIS__DB", "3")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "", "")
	flags.String("dir", "", "")
	flags.Int("port", 0, "")
	require.NoError(t, flags.Parse([]string{"--port", "9100"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "error", cfg.LogLevel, "env overrides file")
	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, "./defs", cfg.DefinitionsDir, "unset flags do not override")
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, 9100, cfg.Server.Port, "flags override file")
}

func TestLoad_FlagKeyMapping(t *testing.T) {
	t.Chdir(t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dir", "", "")
	flags.String("redis-addr", "", "")
	flags.String("log-format", "", "")
	require.NoError(t, flags.Parse([]string{"--dir", "automata", "--redis-addr", "r:1", "--log-format", "json"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "automata", cfg.DefinitionsDir)
	assert.Equal(t, "r:1", cfg.Redis.Addr)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown store", "store: postgres"},
		{"unknown log format", "log_format: xml"},
		{"negative concurrency", "concurrency: -1"},
		{"port out of range", "server:\n  port: 70000"},
		{"short encryption key", "privacy:\n  encryption_key: c2hvcnQ="},
		{"encryption key not base64", "privacy:\n  encryption_key: '%%%'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), nil)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_Privacy(t *testing.T) {
	key := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))
	path := writeConfig(t, `
privacy:
  redact: ["^uptc-"]
  encryption_key: `+key+`
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"^uptc-"}, cfg.Privacy.Redact)

	active, fallback, err := cfg.Privacy.Keys()
	require.NoError(t, err)
	assert.Len(t, active, 32)
	assert.Empty(t, fallback)
}
