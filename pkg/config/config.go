// Package config loads graphdesk settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/graphdesk/config.toml (falling back to
// ~/.config/graphdesk/config.toml) unless --config names another path. Every
// key is optional; missing keys keep the values from [Default]:
//
//	[layout]
//	width = 1024
//	height = 768
//	seed = 7
//	repulsion = 10000.0
//
//	[database]
//	dsn = "graph.db"
//
//	[cache]
//	backend = "redis"
//
//	[redis]
//	addr = "localhost:6379"
//
//	[mongo]
//	uri = "mongodb://localhost:27017"
//
//	[server]
//	addr = ":8080"
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/graphdesk/pkg/layout"
	"github.com/matzehuels/graphdesk/pkg/pipeline"
	"github.com/matzehuels/graphdesk/pkg/storage/mongo"
)

// AppName names the config and cache directories.
const AppName = "graphdesk"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the complete settings tree.
type Config struct {
	Layout   Layout   `toml:"layout"`
	Database Database `toml:"database"`
	Cache    Cache    `toml:"cache"`
	Redis    Redis    `toml:"redis"`
	Mongo    Mongo    `toml:"mongo"`
	Server   Server   `toml:"server"`
}

// Layout holds the viewport, seed and simulation constants.
type Layout struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Seed   int64   `toml:"seed"`
	layout.Config
}

// Database configures relational persistence.
type Database struct {
	DSN string `toml:"dsn"`
}

// Cache selects the layout/render cache backend.
type Cache struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"` // file backend; empty means the XDG cache dir
}

// Redis configures the redis cache backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Mongo configures the snapshot document store.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Layout: Layout{
			Width:  pipeline.DefaultWidth,
			Height: pipeline.DefaultHeight,
			Seed:   pipeline.DefaultSeed,
			Config: layout.DefaultConfig(),
		},
		Database: Database{DSN: AppName + ".db"},
		Cache:    Cache{Backend: CacheFile},
		Redis:    Redis{Addr: "localhost:6379", Prefix: AppName + ":"},
		Mongo: Mongo{
			URI:        "mongodb://localhost:27017",
			Database:   mongo.DefaultDatabase,
			Collection: mongo.DefaultCollection,
		},
		Server: Server{Addr: ":8080"},
	}
}

// DefaultPath returns the config file location following the XDG standard.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// Load reads the file at path over the defaults. An empty path means
// [DefaultPath], which may be absent; an explicit path must exist. Unknown
// keys are rejected so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values a TOML decoder cannot.
func (c Config) Validate() error {
	if c.Layout.Width <= 0 || c.Layout.Height <= 0 {
		return fmt.Errorf("layout: viewport must be positive, got %gx%g", c.Layout.Width, c.Layout.Height)
	}
	if c.Layout.Iterations < 0 {
		return fmt.Errorf("layout: iterations must not be negative, got %d", c.Layout.Iterations)
	}
	if !slices.Contains([]string{CacheFile, CacheRedis, CacheNone}, c.Cache.Backend) {
		return fmt.Errorf("cache: unknown backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	return nil
}

// PipelineOptions returns pipeline options seeded from the layout section.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Width:   c.Layout.Width,
		Height:  c.Layout.Height,
		Seed:    c.Layout.Seed,
		Physics: c.Layout.Config,
	}
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
