// Package cli implements the roadcost command-line interface.
//
// # Commands
//
//   - compare: price unbound patches against the alternative treatment and draw the diagram
//   - inspect: browse the patches of a sheet interactively
//   - serve: run the HTTP API
//   - cache: manage the rendered-artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context so helpers can report progress.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roadcost/pkg/cache"
	"github.com/matzehuels/roadcost/pkg/config"
	"github.com/matzehuels/roadcost/pkg/estimate"
	"github.com/matzehuels/roadcost/pkg/observability"
)

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and built-in config.
// The config is reloaded from disk before each command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads config from every source and installs the logging hooks.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	observability.SetEstimateHooks(&logHooks{logger: c.Logger})
	observability.SetCacheHooks(&logHooks{logger: c.Logger})
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates an estimate runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*estimate.Runner, error) {
	ch, err := newCache(ctx, c.Config, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "cli:")
	return estimate.NewRunner(ch, keyer, c.Logger), nil
}

// newCache opens the cache backend selected in cfg. A file cache whose
// directory cannot be resolved degrades to no caching.
func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// parseFormats splits a comma-separated format list. Empty input yields fallback.
func parseFormats(s string, fallback []string) []string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
