package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/leapstack-labs/jsxlint/pkg/core"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// OutputFormats lists the accepted values of the output setting.
var OutputFormats = []string{"auto", "text", "markdown", "json"}

// LogLevels lists the accepted values of the log_level setting.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if c.OutputFormat != "" && !slices.Contains(OutputFormats, strings.ToLower(c.OutputFormat)) {
		errs = append(errs, fmt.Errorf("output must be one of %s, got %q", strings.Join(OutputFormats, ", "), c.OutputFormat))
	}
	if c.LogLevel != "" {
		if _, err := ParseLogLevel(c.LogLevel); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency must be >= 0, got %d", c.Concurrency))
	}
	if c.Lint != nil {
		for ruleID, sev := range c.Lint.Severity {
			if _, ok := core.ParseSeverity(sev); !ok {
				errs = append(errs, fmt.Errorf("lint.severity.%s: unknown severity %q (use error, warning, info or hint)", ruleID, sev))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// ParseLogLevel converts a log_level value to a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("log_level must be one of %s, got %q", strings.Join(LogLevels, ", "), s)
	}
}
