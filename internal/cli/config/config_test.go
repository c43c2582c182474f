package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ".jsxlint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.String("project-dir", "", "")
	flags.StringP("output", "o", "", "")
	flags.String("log-level", "", "")
	flags.BoolP("verbose", "v", false, "")
	flags.Int("concurrency", 0, "")
	flags.Bool("no-cache", false, "")
	flags.Bool("no-syntax-check", false, "")
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.True(t, cfg.SyntaxCheck)
	assert.Zero(t, cfg.Concurrency)
	require.NotNil(t, cfg.Lint)
	require.NotNil(t, cfg.Cache)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, filepath.Join(dir, DefaultCacheFile), cfg.Cache.Path)
	assert.Equal(t, cfg.Cache.Path, cfg.CachePath())
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	path := writeConfig(t, dir, `include:
  - "app/**"
ignore:
  - "*.test.tsx"
concurrency: 3
output: json
syntax_check: false
docs_url: http://localhost:3000/rules
lint:
  disabled: [NX02]
  severity:
    NX01: warn
  rules:
    NX01:
      allow: [png]
cache:
  path: tmp/lint.db
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, GetConfigFileUsed())
	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, []string{"app/**"}, cfg.Include)
	assert.Equal(t, []string{"*.test.tsx"}, cfg.Ignore)
	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.False(t, cfg.SyntaxCheck)
	assert.Equal(t, "http://localhost:3000/rules", cfg.DocsURL)
	assert.Equal(t, []string{"NX02"}, cfg.Lint.Disabled)
	assert.Equal(t, map[string]string{"NX01": "warn"}, cfg.Lint.Severity)
	assert.Contains(t, cfg.Lint.Rules, "NX01")
	assert.True(t, cfg.Cache.Enabled, "unset keys keep their defaults")
	assert.Equal(t, filepath.Join(dir, "tmp", "lint.db"), cfg.Cache.Path)
}

func TestLoadConfig_UpwardSearch(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	writeConfig(t, root, "output: markdown\n")

	nested := filepath.Join(root, "app", "dashboard", "settings")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, "markdown", cfg.OutputFormat)
	assert.Equal(t, filepath.Join(root, ".jsxlint.yaml"), GetConfigFileUsed())
}

func TestLoadConfig_YmlExtension(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".jsxlint.yml"), []byte("verbose: true\n"), 0o600))
	t.Chdir(dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_ProjectDirFlag(t *testing.T) {
	ResetConfig()
	project := t.TempDir()
	writeConfig(t, project, "log_level: debug\n")
	t.Chdir(t.TempDir())

	flags := testFlags()
	require.NoError(t, flags.Set("project-dir", project))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, project, cfg.ProjectRoot)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

// TestLoadConfig_FlagPrecedence tests that flags override env vars and config file.
func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, t.TempDir(), "output: text\n")
	t.Setenv("JSXLINT_OUTPUT", "markdown")

	flags := testFlags()
	require.NoError(t, flags.Set("output", "json"))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat, "flag value should override config file and env var")
}

// TestLoadConfig_EnvPrecedenceOverFile tests that env vars override config file.
func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, t.TempDir(), "output: text\nlog_level: error\n")
	t.Setenv("JSXLINT_OUTPUT", "markdown")
	t.Setenv("JSXLINT_LOG_LEVEL", "info")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.OutputFormat, "env var should override config file")
	assert.Equal(t, "info", cfg.LogLevel)
}

// TestLoadConfig_FlagNotSetUsesEnv tests that unset flags fall back to env vars.
func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, t.TempDir(), "output: text\n")
	t.Setenv("JSXLINT_OUTPUT", "markdown")

	cfg, err := LoadConfig(path, testFlags())
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.OutputFormat, "env var should be used when flag is not set")
}

func TestLoadConfig_CacheSwitches(t *testing.T) {
	t.Run("env disables cache", func(t *testing.T) {
		ResetConfig()
		path := writeConfig(t, t.TempDir(), "")
		t.Setenv("JSXLINT_CACHE_ENABLED", "false")

		cfg, err := LoadConfig(path, nil)
		require.NoError(t, err)
		assert.False(t, cfg.Cache.Enabled)
		assert.Empty(t, cfg.CachePath())
	})

	t.Run("no-cache flag", func(t *testing.T) {
		ResetConfig()
		path := writeConfig(t, t.TempDir(), "cache:\n  enabled: true\n")

		flags := testFlags()
		require.NoError(t, flags.Set("no-cache", "true"))
		require.NoError(t, flags.Set("no-syntax-check", "true"))
		require.NoError(t, flags.Set("concurrency", "2"))

		cfg, err := LoadConfig(path, flags)
		require.NoError(t, err)
		assert.False(t, cfg.Cache.Enabled)
		assert.False(t, cfg.SyntaxCheck)
		assert.Equal(t, 2, cfg.Concurrency)
	})
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"bad output", "output: yaml\n", "output must be one of"},
		{"bad log level", "log_level: loud\n", "log_level must be one of"},
		{"negative concurrency", "concurrency: -1\n", "concurrency must be >= 0"},
		{"bad severity", "lint:\n  severity:\n    NX01: fatal\n", "unknown severity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			_, err := LoadConfig(writeConfig(t, t.TempDir(), tt.content), nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errPart)
			assert.Nil(t, GetCurrentConfig())
		})
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"JSXLINT_OUTPUT":        "output",
		"JSXLINT_LOG_LEVEL":     "log_level",
		"JSXLINT_SYNTAX_CHECK":  "syntax_check",
		"JSXLINT_CACHE_ENABLED": "cache.enabled",
		"JSXLINT_CACHE_PATH":    "cache.path",
		"JSXLINT_LINT_DISABLED": "lint.disabled",
		"JSXLINT_CACHE":         "cache",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"trace", slog.LevelWarn, true},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantErr, err != nil, tt.in)
	}
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	logger := slog.New(slog.DiscardHandler)
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}

func TestConfig_CachePath(t *testing.T) {
	assert.Empty(t, (&Config{}).CachePath())
	assert.Empty(t, (&Config{Cache: &CacheConfig{Enabled: false, Path: "x"}}).CachePath())
	assert.Equal(t, "x", (&Config{Cache: &CacheConfig{Enabled: true, Path: "x"}}).CachePath())
}
