// Package config loads scan settings from defaults, an optional config file,
// DOCUBUDDY_ environment variables and command-line overrides, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/BenjaminWie/docu-buddy/analysis"
	"github.com/BenjaminWie/docu-buddy/db"
	"github.com/BenjaminWie/docu-buddy/filter"
	"github.com/BenjaminWie/docu-buddy/language"
	"github.com/BenjaminWie/docu-buddy/pattern"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "DOCUBUDDY_"

// Config holds all configuration.
type Config struct {
	// Scan settings
	Scan ScanConfig `koanf:"scan"`

	// Output settings
	Output OutputConfig `koanf:"output"`

	// Ranking handoff store
	Store StoreConfig `koanf:"store"`

	// Cache sizes
	Cache CacheConfig `koanf:"cache"`

	// Additional languages, detected after the built-in ones
	Languages []language.Spec `koanf:"languages"`
}

// ScanConfig controls the walk and the ranking.
type ScanConfig struct {
	MaxResults     int      `koanf:"max_results"`
	Workers        int      `koanf:"workers"`
	MaxFiles       int      `koanf:"max_files"`
	MaxDepth       int      `koanf:"max_depth"`
	Exclude        []string `koanf:"exclude"`
	IncludeContent bool     `koanf:"include_content"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Format            string `koanf:"format"` // text, json, yaml, markdown
	File              string `koanf:"file"`
	Color             bool   `koanf:"color"`
	ReferenceTemplate string `koanf:"reference_template"`
}

// StoreConfig configures the SurrealDB handoff.
type StoreConfig struct {
	Enabled   bool   `koanf:"enabled"`
	URL       string `koanf:"url"`
	Namespace string `koanf:"namespace"`
	Database  string `koanf:"database"`
	Username  string `koanf:"username"`
	Password  string `koanf:"password"`
}

// CacheConfig sizes the in-process caches.
type CacheConfig struct {
	Metrics  int `koanf:"metrics"`
	Patterns int `koanf:"patterns"` // compiled expressions of configured languages
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			MaxResults:     analysis.DefaultMaxResults,
			IncludeContent: true,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
		Store: StoreConfig{
			URL:       "ws://localhost:8000/rpc",
			Namespace: "docubuddy",
			Database:  "docubuddy",
		},
		Cache: CacheConfig{
			Metrics:  analysis.DefaultMetricsCacheSize,
			Patterns: pattern.DefaultCacheSize,
		},
	}
}

// ConfigNames are the file names searched by Find, in order.
var ConfigNames = []string{
	"docubuddy.toml",
	"docubuddy.yaml",
	"docubuddy.yml",
	"docubuddy.json",
	".docubuddy.toml",
	".docubuddy.yaml",
	".docubuddy.yml",
	".docubuddy.json",
}

// Find returns the first config file present in dir, or "".
func Find(dir string) string {
	for _, name := range ConfigNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	case ".json":
		return json.Parser()
	default:
		return toml.Parser()
	}
}

// Load builds a Config from the defaults, the file at path (skipped when
// path is empty), the environment and overrides. Override keys use the
// dotted koanf form, e.g. "scan.max_results".
func Load(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnv,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to apply overrides: %w", err)
		}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// transformEnv maps DOCUBUDDY_SCAN_MAX_RESULTS to scan.max_results. The
// first segment after the prefix names the section; comma separated values
// of list keys become slices.
func transformEnv(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok {
		return "", nil
	}
	key = section + "." + rest

	if key == "scan.exclude" {
		var parts []string
		for _, p := range strings.Split(value, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		return key, parts
	}
	return key, value
}

// LoadOrDefault tries to load config from the current directory or returns
// defaults.
func LoadOrDefault() *Config {
	cfg, err := Load(Find("."), nil)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// Validate rejects settings no scan can run with.
func (c *Config) Validate() error {
	switch {
	case c.Scan.MaxResults < 0:
		return fmt.Errorf("scan.max_results must not be negative, got %d", c.Scan.MaxResults)
	case c.Scan.Workers < 0:
		return fmt.Errorf("scan.workers must not be negative, got %d", c.Scan.Workers)
	case c.Scan.MaxFiles < 0:
		return fmt.Errorf("scan.max_files must not be negative, got %d", c.Scan.MaxFiles)
	case c.Scan.MaxDepth < 0:
		return fmt.Errorf("scan.max_depth must not be negative, got %d", c.Scan.MaxDepth)
	case c.Store.Enabled && c.Store.URL == "":
		return fmt.Errorf("store.url is required when the store is enabled")
	}
	return nil
}

// Registry returns the built-in languages extended with the configured ones.
func (c *Config) Registry() (*language.Registry, error) {
	if len(c.Languages) == 0 {
		return language.Default(), nil
	}
	cache := pattern.Default
	if c.Cache.Patterns > 0 {
		cache = pattern.NewCache(c.Cache.Patterns)
	}
	reg, err := language.Default().WithSpecs(cache, c.Languages...)
	if err != nil {
		return nil, fmt.Errorf("invalid language configuration: %w", err)
	}
	return reg, nil
}

// Filter returns the path filter for the configured exclude globs.
func (c *Config) Filter() (*filter.Filter, error) {
	return filter.New(c.Scan.Exclude)
}

// AnalysisOptions returns the scan options.
func (c *Config) AnalysisOptions() analysis.Options {
	return analysis.Options{
		MaxResults:        c.Scan.MaxResults,
		Workers:           c.Scan.Workers,
		MaxFiles:          c.Scan.MaxFiles,
		MaxDepth:          c.Scan.MaxDepth,
		IncludeContent:    c.Scan.IncludeContent,
		ReferenceTemplate: c.Output.ReferenceTemplate,
	}
}

// DBConfig returns the connection settings of the store.
func (c *Config) DBConfig() db.Config {
	return db.Config{
		URL:       c.Store.URL,
		Namespace: c.Store.Namespace,
		Database:  c.Store.Database,
		Username:  c.Store.Username,
		Password:  c.Store.Password,
	}
}
