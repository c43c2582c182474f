package core

// LintConfig holds lint rule configuration.
type LintConfig struct {
	// Disabled contains rule IDs to disable
	Disabled []string `koanf:"disabled" yaml:"disabled"`

	// Severity maps rule ID to severity override (error, warning, info, hint)
	Severity map[string]string `koanf:"severity" yaml:"severity,omitempty"`

	// Rules contains rule-specific options
	Rules map[string]RuleOptions `koanf:"rules" yaml:"rules,omitempty"`
}

// RuleOptions holds rule-specific configuration options.
type RuleOptions map[string]any

// CacheConfig controls the on-disk lint result cache.
type CacheConfig struct {
	// Enabled turns the cache on; results are reused when file content and config are unchanged.
	Enabled bool `koanf:"enabled" yaml:"enabled"`

	// Path is the SQLite database location, relative to the project root.
	Path string `koanf:"path" yaml:"path"`
}
