// Package watch re-runs work when JavaScript or TypeScript sources change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leapstack-labs/jsxlint/internal/source"
	"github.com/leapstack-labs/jsxlint/pkg/jsx"
)

// DefaultDebounce is how long the watcher waits for events to settle.
const DefaultDebounce = 200 * time.Millisecond

// ErrNoOnChange is returned by New when Config.OnChange is nil.
var ErrNoOnChange = errors.New("watch: OnChange is required")

// ChangeFunc receives the sorted, de-duplicated paths that changed during one debounce window.
type ChangeFunc func(ctx context.Context, paths []string)

// Config holds watcher configuration.
type Config struct {
	// Roots are directories to watch recursively, or single files.
	Roots []string
	// Include globs, matched like source.Options.Include. Files named in Roots are
	// always watched.
	Include []string
	// Ignore globs, matched like source.Options.Ignore.
	Ignore []string
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
	// OnChange is called from the Run goroutine.
	OnChange ChangeFunc
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Watcher batches file system events for supported source files.
type Watcher struct {
	fw       *fsnotify.Watcher
	dirs     []string
	files    map[string]struct{}
	include  []string
	ignore   []string
	debounce time.Duration
	onChange ChangeFunc
	logger   *slog.Logger
}

// New registers watches on every root. Events that occur after New returns are seen by Run.
func New(cfg Config) (*Watcher, error) {
	if cfg.OnChange == nil {
		return nil, ErrNoOnChange
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		fw:       fw,
		files:    make(map[string]struct{}),
		include:  cfg.Include,
		ignore:   cfg.Ignore,
		debounce: debounce,
		onChange: cfg.OnChange,
		logger:   logger,
	}

	for _, root := range cfg.Roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
		}

		info, err := os.Stat(abs)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			w.files[abs] = struct{}{}
			if err := fw.Add(filepath.Dir(abs)); err != nil {
				_ = fw.Close()
				return nil, fmt.Errorf("failed to watch %s: %w", root, err)
			}
			continue
		}

		w.dirs = append(w.dirs, abs)
		if err := w.watchDirRecursive(abs); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	return w, nil
}

// Run processes events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fw.Close() }()

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !w.handle(event) {
				continue
			}

			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			slices.Sort(paths)

			w.logger.Debug("files changed", "count", len(paths))
			w.onChange(ctx, paths)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// handle reports whether event concerns a watched source file. New directories
// under a watched root are added to the watch set.
func (w *Watcher) handle(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if _, rel, ok := w.relative(event.Name); ok && !w.skipDir(rel, filepath.Base(event.Name)) {
				if err := w.watchDirRecursive(event.Name); err != nil {
					w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
				}
			}
			return false
		}
	}

	if _, ok := w.files[event.Name]; ok {
		return true
	}
	if !jsx.IsSupported(event.Name) {
		return false
	}

	_, rel, ok := w.relative(event.Name)
	if !ok {
		return false
	}
	for _, part := range strings.Split(rel, "/") {
		if source.IsIgnoredDir(part) {
			return false
		}
	}
	if source.Match(w.ignore, rel) {
		return false
	}
	return len(w.include) == 0 || source.Match(w.include, rel)
}

// relative finds the watched root directory containing path.
func (w *Watcher) relative(path string) (root, rel string, ok bool) {
	for _, dir := range w.dirs {
		r, err := filepath.Rel(dir, path)
		if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
			continue
		}
		return dir, filepath.ToSlash(r), true
	}
	return "", "", false
}

func (w *Watcher) skipDir(rel, name string) bool {
	if rel == "." {
		return false
	}
	return source.IsIgnoredDir(name) || source.Match(w.ignore, rel)
}

// watchDirRecursive adds a directory and all non-ignored subdirectories to the watcher.
func (w *Watcher) watchDirRecursive(dir string) error {
	root, _, ok := w.relative(dir)
	if !ok {
		root = dir
	}

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if w.skipDir(filepath.ToSlash(rel), d.Name()) {
			return filepath.SkipDir
		}

		if err := w.fw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
