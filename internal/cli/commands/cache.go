package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/jsxlint/internal/cache"
	"github.com/leapstack-labs/jsxlint/internal/cli/output"
	"github.com/leapstack-labs/jsxlint/internal/source"
)

// ErrCacheDisabled is returned by cache subcommands when caching is turned off.
var ErrCacheDisabled = errors.New("the result cache is disabled (cache.enabled: false)")

// CacheInfo is the JSON output of `cache info`.
type CacheInfo struct {
	Path          string `json:"path"`
	Entries       int    `json:"entries"`
	SchemaVersion int64  `json:"schema_version"`
}

// NewCacheCommand creates the cache command and its subcommands.
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the lint result cache",
		Long: `Manage the SQLite database that stores lint results per file.

An entry is reused only when both the file content and the effective lint
configuration are unchanged.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show cache location and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCache(cmd, runCacheInfo)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all cached results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCache(cmd, func(ctx context.Context, r *output.Renderer, c *cache.Cache) error {
				n, err := c.Prune(ctx, nil)
				if err != nil {
					return err
				}
				r.Success(fmt.Sprintf("Removed %d cached results", n))
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "prune",
		Short: "Delete cached results for files that no longer exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCache(cmd, runCachePrune)
		},
	})

	return cmd
}

func withCache(cmd *cobra.Command, fn func(context.Context, *output.Renderer, *cache.Cache) error) error {
	cmdCtx := NewCommandContextWithoutEngine(cmd)
	path := cmdCtx.Cfg.CachePath()
	if path == "" {
		return ErrCacheDisabled
	}

	c, err := cache.OpenAndMigrate(path, cmdCtx.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, cmdCtx.Renderer, c)
}

func runCacheInfo(ctx context.Context, r *output.Renderer, c *cache.Cache) error {
	entries, err := c.Count(ctx)
	if err != nil {
		return err
	}
	version, err := c.Version()
	if err != nil {
		return err
	}

	info := CacheInfo{Path: c.Path(), Entries: entries, SchemaVersion: version}
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(info)
	case output.ModeMarkdown:
		r.Print(output.FormatHeader(1, "Lint Cache"))
		r.Print(output.FormatKeyValue("Path", info.Path))
		r.Print(output.FormatKeyValue("Entries", strconv.Itoa(info.Entries)))
		r.Print(output.FormatKeyValue("Schema version", strconv.FormatInt(info.SchemaVersion, 10)))
	default:
		r.Header(1, "Lint Cache")
		r.Printf("  %s: %s\n", r.Styles().Bold.Render("Path"), info.Path)
		r.Printf("  %s: %d\n", r.Styles().Bold.Render("Entries"), info.Entries)
		r.Printf("  %s: %d\n", r.Styles().Bold.Render("Schema version"), info.SchemaVersion)
	}
	return nil
}

// runCachePrune keeps only entries for files the project still lints.
func runCachePrune(ctx context.Context, r *output.Renderer, c *cache.Cache) error {
	cfg := getConfig()
	files, err := source.Discover([]string{cfg.ProjectRoot}, source.Options{Include: cfg.Include, Ignore: cfg.Ignore})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		r.Muted("No source files found; use 'jsxlint cache clear' to empty the cache")
		return nil
	}

	n, err := c.Prune(ctx, files)
	if err != nil {
		return err
	}
	r.Success(fmt.Sprintf("Removed %d stale cached results", n))
	return nil
}
