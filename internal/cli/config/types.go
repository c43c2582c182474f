// Package config provides configuration management for the jsxlint CLI.
//
// Lint and cache settings are the shared types from pkg/core, re-exported here
// via type aliases for convenience.
package config

import "github.com/leapstack-labs/jsxlint/pkg/core"

// LintConfig is an alias for the shared lint configuration.
// This allows CLI code to use config.LintConfig without importing pkg/core.
type LintConfig = core.LintConfig

// RuleOptions is an alias for the shared rule options type.
type RuleOptions = core.RuleOptions

// CacheConfig is an alias for the shared cache configuration.
type CacheConfig = core.CacheConfig

// Config holds all CLI configuration options.
type Config struct {
	// ProjectRoot is where the config file was found, or the working directory.
	// It anchors relative paths and is never read from the file itself.
	ProjectRoot string `koanf:"-" yaml:"-"`

	Include      []string     `koanf:"include" yaml:"include,omitempty"`
	Ignore       []string     `koanf:"ignore" yaml:"ignore,omitempty"`
	Concurrency  int          `koanf:"concurrency" yaml:"concurrency"`
	OutputFormat string       `koanf:"output" yaml:"output"`
	Verbose      bool         `koanf:"verbose" yaml:"verbose"`
	LogLevel     string       `koanf:"log_level" yaml:"log_level"`
	SyntaxCheck  bool         `koanf:"syntax_check" yaml:"syntax_check"`
	DocsURL      string       `koanf:"docs_url" yaml:"docs_url,omitempty"`
	Lint         *LintConfig  `koanf:"lint" yaml:"lint"`
	Cache        *CacheConfig `koanf:"cache" yaml:"cache"`
}

// Default configuration values.
const (
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel    = "warn"
	DefaultCacheFile   = ".jsxlint/cache.db"
	DefaultSyntaxCheck = true
	DefaultCacheOn     = true
)

// ConfigFileNames are searched in order in each directory.
var ConfigFileNames = []string{".jsxlint.yaml", ".jsxlint.yml"}

// DefaultIgnore is written by `jsxlint init`; the built-in skipped directories
// (node_modules, .next and friends) need no entry.
var DefaultIgnore = []string{"*.d.ts"}

// Default returns the configuration used when no file, env var or flag says otherwise.
func Default() *Config {
	return &Config{
		OutputFormat: DefaultOutput,
		LogLevel:     DefaultLogLevel,
		SyntaxCheck:  DefaultSyntaxCheck,
		Lint:         &LintConfig{},
		Cache: &CacheConfig{
			Enabled: DefaultCacheOn,
			Path:    DefaultCacheFile,
		},
	}
}

// CachePath returns the cache database location, or "" when caching is off.
func (c *Config) CachePath() string {
	if c.Cache == nil || !c.Cache.Enabled || c.Cache.Path == "" {
		return ""
	}
	return c.Cache.Path
}
