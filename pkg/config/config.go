// Package config loads repograph.toml.
//
// Defaults live in [Default]; a file overrides only the keys it sets, and
// REPOGRAPH_* environment variables override the file for server settings.
//
//	[layout]
//	direction = "TB"
//	node_width = 200
//
//	[code]
//	scope = "local"
//
//	[server]
//	cache = "redis"
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/repograph/pkg/build"
	"github.com/matzehuels/repograph/pkg/errors"
	"github.com/matzehuels/repograph/pkg/layout"
	"github.com/matzehuels/repograph/pkg/source/local"
)

// FileName is the config file looked up in the working directory.
const FileName = "repograph.toml"

// Server cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Config is the full configuration.
type Config struct {
	Layout layout.Config     `toml:"layout"`
	Code   build.CodeOptions `toml:"code"`
	Source local.Options     `toml:"source"`
	Server Server            `toml:"server"`
}

// Server configures `repograph serve`.
type Server struct {
	Addr      string        `toml:"addr"`
	Cache     string        `toml:"cache"`
	RedisURL  string        `toml:"redis_url"`
	KeyPrefix string        `toml:"key_prefix"`
	CacheTTL  time.Duration `toml:"cache_ttl"`
	CacheSize int           `toml:"cache_size"`
	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: layout.DefaultConfig(),
		Code:   build.CodeOptions{Scope: build.ScopeAll},
		Source: local.DefaultOptions(),
		Server: Server{
			Addr:         ":8080",
			Cache:        CacheMemory,
			KeyPrefix:    "repograph:",
			CacheTTL:     24 * time.Hour,
			CacheSize:    256,
			MaxBodyBytes: 8 << 20,
		},
	}
}

// Load reads path on top of [Default]. An empty path loads FileName from the
// working directory when it exists and otherwise returns the defaults.
// Unknown keys are an error so typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(FileName); err != nil {
			return cfg, cfg.Validate()
		}
		path = FileName
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides server settings from REPOGRAPH_ADDR,
// REPOGRAPH_CACHE, REPOGRAPH_REDIS_URL and REPOGRAPH_CACHE_TTL.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("REPOGRAPH_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("REPOGRAPH_CACHE"); v != "" {
		c.Server.Cache = v
	}
	if v := os.Getenv("REPOGRAPH_REDIS_URL"); v != "" {
		c.Server.RedisURL = v
	}
	if v := os.Getenv("REPOGRAPH_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "REPOGRAPH_CACHE_TTL")
		}
		c.Server.CacheTTL = ttl
	}
	if v := os.Getenv("REPOGRAPH_MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "REPOGRAPH_MAX_BODY_BYTES")
		}
		c.Server.MaxBodyBytes = n
	}
	return c.Validate()
}

// Validate checks values that cannot be normalized away.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if c.Code.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "code.workers must not be negative")
	}
	if err := errors.ValidateOneOf("server.cache", c.Server.Cache, CacheMemory, CacheRedis, CacheNone); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid server config")
	}
	if c.Server.Cache == CacheRedis && c.Server.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.redis_url is required when server.cache is %q", CacheRedis)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}
	return nil
}
