// Package source finds the JavaScript and TypeScript files a lint run covers.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/leapstack-labs/jsxlint/pkg/jsx"
)

// DefaultIgnoredDirs are never descended into.
var DefaultIgnoredDirs = []string{
	"node_modules",
	".git",
	".next",
	"dist",
	"build",
	"out",
	"coverage",
}

// ErrNoPaths is returned when Discover is called without roots.
var ErrNoPaths = errors.New("no paths to lint")

// Options control file discovery.
type Options struct {
	// Include globs; when non-empty, a walked file must match at least one.
	Include []string
	// Ignore globs, matched against the slash path relative to the root and the base name.
	Ignore []string
}

// Discover expands roots into the sorted, de-duplicated list of lintable files.
// Paths are absolute, so the same file found through different roots is listed once.
// Files named explicitly are always kept, even when an ignore glob matches them.
func Discover(roots []string, opts Options) ([]string, error) {
	if len(roots) == 0 {
		return nil, ErrNoPaths
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			if !jsx.IsSupported(root) {
				return nil, fmt.Errorf("%s: %w", root, jsx.ErrUnsupportedLanguage)
			}
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if path != root && (IsIgnoredDir(d.Name()) || matchAny(opts.Ignore, rel, d.Name())) {
					return filepath.SkipDir
				}
				return nil
			}

			if !jsx.IsSupported(path) || matchAny(opts.Ignore, rel, d.Name()) {
				return nil
			}
			if len(opts.Include) > 0 && !matchAny(opts.Include, rel, d.Name()) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	slices.Sort(files)
	return files, nil
}

// IsIgnoredDir reports whether a directory name is in DefaultIgnoredDirs.
func IsIgnoredDir(name string) bool {
	return slices.Contains(DefaultIgnoredDirs, name)
}

// Match reports whether a slash-separated relative path matches any of the globs.
// A glob without a slash is also tried against the base name, and a trailing "/**"
// matches everything below a directory.
func Match(globs []string, rel string) bool {
	return matchAny(globs, rel, pathBase(rel))
}

func matchAny(globs []string, rel, base string) bool {
	for _, g := range globs {
		g = strings.TrimPrefix(filepath.ToSlash(g), "./")
		if g == "" {
			continue
		}
		if prefix, ok := strings.CutSuffix(g, "/**"); ok {
			if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
				return true
			}
			continue
		}
		if ok, _ := filepath.Match(g, rel); ok {
			return true
		}
		if !strings.Contains(g, "/") {
			if ok, _ := filepath.Match(g, base); ok {
				return true
			}
		}
	}
	return false
}

func pathBase(rel string) string {
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		return rel[i+1:]
	}
	return rel
}
