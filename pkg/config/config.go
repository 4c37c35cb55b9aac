// Package config loads roadcost settings.
//
// Sources are applied in order, later ones winning:
//
//  1. built-in defaults ([Default])
//  2. a TOML file: the --config path, else $XDG_CONFIG_HOME/roadcost/config.toml
//  3. a .env file in the working directory (missing file is fine)
//  4. environment variables prefixed ROADCOST_, e.g. ROADCOST_RATES_ALT_METHOD_NAME
//
// Example config.toml:
//
//	[rates]
//	patch_repair_rate = 110
//	alt_method_rate = 90
//	alt_method_name = "Stabilisation"
//	patch_layers = 2
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/matzehuels/roadcost/pkg/errors"
)

// AppName names the config and cache directories.
const AppName = "roadcost"

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "ROADCOST"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Defaults.
const (
	DefaultPatchRepairRate = 110.0
	DefaultAltMethodRate   = 90.0
	DefaultAltMethodName   = "Stabilisation"
	DefaultPatchLayers     = 1
	DefaultPNGScale        = 2.0
	DefaultHost            = "127.0.0.1"
	DefaultPort            = 8080
	DefaultMaxUploadMB     = 10
	DefaultRedisAddr       = "localhost:6379"
)

// Config is the complete application configuration.
type Config struct {
	Rates  RatesConfig  `toml:"rates"`
	Render RenderConfig `toml:"render"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
}

// RatesConfig holds default unit rates, used when a command or request
// leaves them unset.
type RatesConfig struct {
	PatchRepairRate float64 `toml:"patch_repair_rate" split_words:"true"`
	AltMethodRate   float64 `toml:"alt_method_rate" split_words:"true"`
	AltMethodName   string  `toml:"alt_method_name" split_words:"true"`
	PatchLayers     int     `toml:"patch_layers" split_words:"true"`
}

// RenderConfig holds diagram output defaults.
type RenderConfig struct {
	Formats   []string `toml:"formats"`
	PNGScale  float64  `toml:"png_scale" split_words:"true"`
	OutputDir string   `toml:"output_dir" split_words:"true"`
}

// ServerConfig configures `roadcost serve`.
type ServerConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins" split_words:"true"`
	MaxUploadMB    int64    `toml:"max_upload_mb" split_words:"true"`
}

// CacheConfig selects and locates the artifact cache.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr" split_words:"true"`
	RedisPassword string `toml:"redis_password" split_words:"true"`
	RedisDB       int    `toml:"redis_db" split_words:"true"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Rates: RatesConfig{
			PatchRepairRate: DefaultPatchRepairRate,
			AltMethodRate:   DefaultAltMethodRate,
			AltMethodName:   DefaultAltMethodName,
			PatchLayers:     DefaultPatchLayers,
		},
		Render: RenderConfig{
			Formats:  []string{"svg"},
			PNGScale: DefaultPNGScale,
		},
		Server: ServerConfig{
			Host:           DefaultHost,
			Port:           DefaultPort,
			AllowedOrigins: []string{"*"},
			MaxUploadMB:    DefaultMaxUploadMB,
		},
		Cache: CacheConfig{
			Backend:   CacheFile,
			RedisAddr: DefaultRedisAddr,
		},
	}
}

// Load builds the configuration from every source. An empty path means the
// default location, which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.mergeFile(path, explicit); err != nil {
			return Config{}, err
		}
	}

	if err := LoadDotEnv(""); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "load .env")
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s_* environment", EnvPrefix)
	}

	cfg.Cache.Backend = strings.ToLower(strings.TrimSpace(cfg.Cache.Backend))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string, required bool) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if required {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return nil
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidInput, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks settings that cannot be deferred to the estimate itself.
func (c Config) Validate() error {
	var list errors.List
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		list.Add(errors.ErrCodeInvalidInput, "cache backend must be one of file, redis, none (got %q)", c.Cache.Backend)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		list.Add(errors.ErrCodeInvalidInput, "server port %d out of range", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		list.Add(errors.ErrCodeInvalidInput, "max upload size must be positive")
	}
	return list.Err()
}

// DefaultPath returns $XDG_CONFIG_HOME/roadcost/config.toml, or "" when no
// config directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, "config.toml")
}

// CacheDir returns the file cache directory: the configured one, else
// $XDG_CACHE_HOME/roadcost, else ~/.cache/roadcost.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
