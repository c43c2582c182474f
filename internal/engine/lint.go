package engine

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/jsxlint/internal/cache"
	"github.com/leapstack-labs/jsxlint/internal/syntax"
	"github.com/leapstack-labs/jsxlint/pkg/lint"
)

// FileResult holds the diagnostics for one file.
type FileResult struct {
	Path        string
	Diagnostics []lint.Diagnostic
	// Cached is true when the diagnostics came from the result cache.
	Cached bool
}

// LintFiles lints paths in parallel and returns one result per path, sorted by path.
// The first read or parse failure cancels the remaining work.
func (e *Engine) LintFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := e.lintFile(gctx, path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b FileResult) int {
		return cmp.Compare(a.Path, b.Path)
	})

	e.logger.Debug("lint complete", "files", len(results))
	return results, nil
}

func (e *Engine) lintFile(ctx context.Context, path string) (FileResult, error) {
	content, err := os.ReadFile(path) //nolint:gosec // G304: paths come from source.Discover or the command line
	if err != nil {
		return FileResult{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	contentHash := cache.HashContent(content)
	key := cacheKey(path)

	if e.cache != nil && e.configHash != "" {
		diags, ok, err := e.cache.Get(ctx, key, contentHash, e.configHash)
		switch {
		case err != nil:
			e.logger.Warn("cache lookup failed", "path", path, "error", err)
		case ok:
			e.logger.Debug("using cached result", "path", path, "diagnostics", len(diags))
			return FileResult{Path: path, Diagnostics: diags, Cached: true}, nil
		}
	}

	diags, err := e.LintSource(ctx, path, content)
	if err != nil {
		return FileResult{}, err
	}

	if e.cache != nil && e.configHash != "" {
		if err := e.cache.Put(ctx, key, contentHash, e.configHash, diags); err != nil {
			e.logger.Warn("cache store failed", "path", path, "error", err)
		}
	}

	return FileResult{Path: path, Diagnostics: diags}, nil
}

// cacheKey is the absolute form of path, so entries match whichever root found the file.
func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// LintSource lints in-memory content as if it were the file at path. It never touches
// the cache. The language is picked from the path's extension.
func (e *Engine) LintSource(ctx context.Context, path string, content []byte) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	if e.syntaxCheck {
		diags = append(diags, syntax.Check(path, content)...)
	}

	file, err := e.parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	diags = append(diags, e.analyzer.Analyze(file)...)
	lint.SortDiagnostics(diags)

	e.logger.Debug("linted file", "path", path, "diagnostics", len(diags))
	return diags, nil
}
