package commands

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/jsxlint/internal/cli/config"
	"github.com/leapstack-labs/jsxlint/internal/cli/output"
	"github.com/leapstack-labs/jsxlint/internal/engine"
	"github.com/leapstack-labs/jsxlint/pkg/core"
	"github.com/leapstack-labs/jsxlint/pkg/lint"
	_ "github.com/leapstack-labs/jsxlint/pkg/lint/rules" // register built-in rules
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// engineOptions tweak the engine built for one command invocation.
type engineOptions struct {
	Lint      *lint.Config
	Cacheless bool
}

// NewCommandContext creates a CommandContext with engine and renderer.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command, opts engineOptions) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	eng, err := createEngine(cfg, opts, logger)
	if err != nil {
		return nil, nil, err
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	cleanup := func() {
		_ = eng.Close()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   eng,
		Renderer: r,
	}, cleanup, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an engine.
// Useful for commands that only read rule metadata or write files.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	cfg := config.Default()
	if wd, err := os.Getwd(); err == nil {
		cfg.ProjectRoot = wd
	}
	cfg.OutputFormat = getEnvOrDefault(config.EnvPrefix+"OUTPUT", cfg.OutputFormat)
	cfg.LogLevel = getEnvOrDefault(config.EnvPrefix+"LOG_LEVEL", cfg.LogLevel)
	cfg.Verbose = os.Getenv(config.EnvPrefix+"VERBOSE") == "true"
	if v, err := strconv.ParseBool(os.Getenv(config.EnvPrefix + "CACHE_ENABLED")); err == nil {
		cfg.Cache.Enabled = v
	}
	cfg.Cache.Path = getEnvOrDefault(config.EnvPrefix+"CACHE_PATH", cfg.Cache.Path)

	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func createEngine(cfg *config.Config, opts engineOptions, logger *slog.Logger) (*engine.Engine, error) {
	lintCfg := opts.Lint
	if lintCfg == nil {
		lintCfg = projectLintConfig(cfg)
	}

	cachePath := cfg.CachePath()
	if opts.Cacheless {
		cachePath = ""
	}

	return engine.New(engine.Config{
		Lint:        lintCfg,
		CachePath:   cachePath,
		SyntaxCheck: cfg.SyntaxCheck,
		Concurrency: cfg.Concurrency,
		Logger:      logger,
	})
}

// projectLintConfig converts the lint section of the project config.
// Validation has already rejected unknown severities.
func projectLintConfig(cfg *config.Config) *lint.Config {
	lintCfg := lint.NewConfig()
	if cfg == nil || cfg.Lint == nil {
		return lintCfg
	}

	for _, id := range cfg.Lint.Disabled {
		lintCfg.Disable(canonicalRuleID(id))
	}
	for id, sev := range cfg.Lint.Severity {
		if s, ok := core.ParseSeverity(sev); ok {
			lintCfg.SetSeverity(canonicalRuleID(id), s)
		}
	}
	for id, ruleOpts := range cfg.Lint.Rules {
		lintCfg.SetRuleOptions(canonicalRuleID(id), ruleOpts)
	}

	return lintCfg
}

// canonicalRuleID accepts a rule ID or name in any case and returns the registered ID.
// Unknown values are returned trimmed so they still match rules registered later.
func canonicalRuleID(s string) string {
	s = strings.TrimSpace(s)
	if rule, ok := lint.Lookup(s); ok {
		return rule.ID()
	}
	return s
}
