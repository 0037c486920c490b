// Package config loads the automata CLI configuration.
//
// Values are layered with koanf, highest precedence first: explicitly set
// flags, AUTOMATA_* environment variables, the configuration file, defaults.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable. A double underscore
// separates nested keys: AUTOMATA_REDIS__ADDR sets redis.addr.
const EnvPrefix = "AUTOMATA_"

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config is the resolved configuration.
type Config struct {
	LogLevel       string        `koanf:"log_level"`
	LogFormat      string        `koanf:"log_format"`
	DefinitionsDir string        `koanf:"definitions_dir"`
	Concurrency    int           `koanf:"concurrency"`
	Store          string        `koanf:"store"`
	RunsDir        string        `koanf:"runs_dir"`
	Redis          RedisConfig   `koanf:"redis"`
	Server         ServerConfig  `koanf:"server"`
	Privacy        PrivacyConfig `koanf:"privacy"`

	// File is the configuration file that was read, if any.
	File string `koanf:"-"`
}

// RedisConfig configures the Redis run store.
type RedisConfig struct {
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	TTL      time.Duration `koanf:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port    int  `koanf:"port"`
	Metrics bool `koanf:"metrics"`
}

// PrivacyConfig configures how saved runs are protected.
type PrivacyConfig struct {
	// Redact lists patterns of automaton names whose inputs are masked.
	Redact []string `koanf:"redact"`

	// EncryptionKey is a base64 AES-256 key. When set, runs are sealed at rest.
	EncryptionKey string `koanf:"encryption_key"`

	// FallbackKeys are older base64 keys still accepted for decryption.
	FallbackKeys []string `koanf:"fallback_keys"`
}

// Keys decodes the encryption keys. Both are nil when encryption is off.
func (p PrivacyConfig) Keys() (active []byte, fallback [][]byte, err error) {
	if p.EncryptionKey == "" {
		return nil, nil, nil
	}
	active, err = decodeKey(p.EncryptionKey)
	if err != nil {
		return nil, nil, fmt.Errorf("privacy.encryption_key: %w", err)
	}
	for i, k := range p.FallbackKeys {
		key, err := decodeKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("privacy.fallback_keys[%d]: %w", i, err)
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("not base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("want 32 bytes, got %d", len(key))
	}
	return key, nil
}

// Defaults returns the lowest layer of configuration.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"log_level":       "info",
		"log_format":      "text",
		"definitions_dir": "",
		"concurrency":     0,
		"store":           StoreMemory,
		"runs_dir":        ".automata/runs",
		"redis.addr":      "localhost:6379",
		"redis.password":  "",
		"redis.db":        0,
		"redis.ttl":       "0s",
		"server.port":     8080,
		"server.metrics":  true,
	}
}

// flagKeys maps flag names whose config key is not the snake_case flag name.
var flagKeys = map[string]string{
	"dir":            "definitions_dir",
	"port":           "server.port",
	"metrics":        "server.metrics",
	"redis-addr":     "redis.addr",
	"redis-password": "redis.password",
	"redis-db":       "redis.db",
	"redis-ttl":      "redis.ttl",
}

// findConfigFile finds the config file to use.
// Priority: explicit path > automata.yaml > automata.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"automata.yaml", "automata.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load resolves the configuration. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// AUTOMATA_SERVER__PORT -> server.port
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only explicitly set flags override lower layers.
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated values and ranges.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("invalid store %q (want %s, %s or %s)", c.Store, StoreMemory, StoreFile, StoreRedis)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q (want text or json)", c.LogFormat)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if _, _, err := c.Privacy.Keys(); err != nil {
		return err
	}
	return nil
}
