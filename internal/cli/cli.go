// Package cli implements the graphdesk command-line interface.
//
// Commands load graphs from files recognised by extension (.txt, .csv,
// .xlsx, .json), query or transform them through a coordinator, and write
// results back to files, databases or the terminal. The CLI is built using
// cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - generate: create a random weighted graph
//   - show: print the adjacency listing
//   - traverse: run bfs, dfs or dijkstra from a start vertex
//   - explore: step through a traversal interactively
//   - layout: compute force-directed positions
//   - render: draw a graph as SVG, PNG, PDF, DOT or JSON
//   - convert: rewrite a graph file in another format
//   - db: save and load graphs in SQLite or MongoDB
//   - serve: expose a graph over HTTP
//   - cache: manage the layout and render cache
//   - config: inspect the effective configuration
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphdesk/pkg/cache"
	"github.com/matzehuels/graphdesk/pkg/config"
	gderrors "github.com/matzehuels/graphdesk/pkg/errors"
	"github.com/matzehuels/graphdesk/pkg/graph"
	graphio "github.com/matzehuels/graphdesk/pkg/io"
	"github.com/matzehuels/graphdesk/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded by the root command before any subcommand runs.
	Config     config.Config
	configPath string
}

// New creates a new CLI instance with a default logger and the built-in
// configuration.
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

// loadConfig reads the --config file, or the default location when unset.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, c.newKeyer(), c.Logger), nil
}

// newKeyer namespaces cache keys with the configured prefix when layouts are
// shared through Redis.
func (c *CLI) newKeyer() cache.Keyer {
	if c.Config.Cache.Backend == config.CacheRedis && c.Config.Redis.Prefix != "" {
		return cache.NewScopedKeyer(nil, c.Config.Redis.Prefix)
	}
	return cache.NewDefaultKeyer()
}

// newCache opens the configured cache backend. A file cache whose directory
// cannot be determined degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return rc, nil
	default:
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Debug("cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// cacheDir returns the configured cache directory, or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/graphdesk/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, config.AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", config.AppName), nil
}

// outputBase strips the extension from input, for deriving output names.
func outputBase(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// =============================================================================
// Graph Loading
// =============================================================================

// loadGraph validates path and reads the graph it names, logging skipped
// entries.
func (c *CLI) loadGraph(ctx context.Context, path string) (*graph.Store, error) {
	if err := gderrors.ValidatePath(path); err != nil {
		return nil, err
	}
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	g, report, err := graphio.ImportFile(path)
	if err != nil {
		return nil, fmt.Errorf("load graph %s: %w", path, err)
	}
	if report.Skipped > 0 {
		logger.Warn("skipped malformed entries", "path", path, "count", report.Skipped)
	}
	prog.done(fmt.Sprintf("Loaded %d vertices and %d edges", report.Vertices, report.Edges))
	return g, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions returns pipeline options seeded from the configuration.
func (c *CLI) pipelineOptions() pipeline.Options {
	opts := c.Config.PipelineOptions()
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	opts.Logger = c.Logger
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
