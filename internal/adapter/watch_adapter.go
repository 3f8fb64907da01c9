package adapter

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	m "termite.dev/pkg/termite/internal/model"
)

// DefaultDebounce is the quiet period used when WatchOptions.Debounce is unset.
const DefaultDebounce = 500 * time.Millisecond

// WatchOptions filters and paces a watch session.
type WatchOptions struct {
	Include  []string
	Exclude  []string
	Debounce time.Duration
}

// WatchAdapter reports batches of changed source files.
type WatchAdapter interface {
	// Watch blocks until ctx is done. After each quiet period following one or
	// more events on matching files it calls fn with the changed paths, sorted.
	// fn is never called concurrently with itself.
	Watch(ctx context.Context, roots []m.Path, opts WatchOptions, fn func([]m.Path)) error
}

// FSNotifyWatchAdapter is the fsnotify-backed WatchAdapter.
type FSNotifyWatchAdapter struct{}

// NewFSNotifyWatchAdapter creates a FSNotifyWatchAdapter.
func NewFSNotifyWatchAdapter() *FSNotifyWatchAdapter {
	return &FSNotifyWatchAdapter{}
}

// watchRoot is a watched directory, or a single file when file is set.
type watchRoot struct {
	dir  string
	file string
}

type watchSession struct {
	watcher  *fsnotify.Watcher
	roots    []watchRoot
	includes []compiledPattern
	excludes []compiledPattern
}

// Watch implements WatchAdapter.
func (a *FSNotifyWatchAdapter) Watch(ctx context.Context, roots []m.Path, opts WatchOptions, fn func([]m.Path)) error {
	includes, err := compilePatterns(opts.Include)
	if err != nil {
		return err
	}

	excludes, err := compilePatterns(opts.Exclude)
	if err != nil {
		return err
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	session := &watchSession{watcher: watcher, includes: includes, excludes: excludes}

	if len(roots) == 0 {
		roots = []m.Path{"."}
	}

	for _, root := range roots {
		if err := session.addRoot(string(root)); err != nil {
			return err
		}
	}

	return session.loop(ctx, debounce, fn)
}

func (s *watchSession) addRoot(root string) error {
	root = filepath.Clean(root)

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root path %s: %w", root, err)
	}

	if !info.IsDir() {
		if err := s.watcher.Add(filepath.Dir(root)); err != nil {
			return fmt.Errorf("watch %s: %w", root, err)
		}

		s.roots = append(s.roots, watchRoot{dir: filepath.Dir(root), file: root})

		return nil
	}

	s.roots = append(s.roots, watchRoot{dir: root})

	return s.addDirectories(root, root)
}

// addDirectories watches dir and every directory below it that is not
// excluded. Exclusion is evaluated relative to base.
func (s *watchSession) addDirectories(base, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == dir {
				return walkErr
			}

			return nil
		}

		if !d.IsDir() {
			return nil
		}

		if rel, ok := relativeTo(base, path); ok && rel != "." && shouldIgnore(rel, s.excludes) {
			return filepath.SkipDir
		}

		if err := s.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}

		return nil
	})
}

func (s *watchSession) loop(ctx context.Context, debounce time.Duration, fn func([]m.Path)) error {
	pending := make(map[m.Path]struct{})

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-s.watcher.Events:
			if !ok {
				return nil
			}

			if !s.accept(event) {
				continue
			}

			pending[m.Path(filepath.Clean(event.Name))] = struct{}{}

			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}

			fire = timer.C

		case <-fire:
			fire = nil

			if len(pending) == 0 {
				continue
			}

			paths := make([]m.Path, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}

			sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })
			pending = make(map[m.Path]struct{})

			fn(paths)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return nil
			}

			slog.Warn("File watcher error", "error", err)
		}
	}
}

// accept starts watching newly created directories and reports whether the
// event concerns a matching source file.
func (s *watchSession) accept(event fsnotify.Event) bool {
	name := filepath.Clean(event.Name)

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			for _, root := range s.roots {
				if root.file != "" {
					continue
				}

				if _, ok := relativeTo(root.dir, name); ok {
					if err := s.addDirectories(root.dir, name); err != nil {
						slog.Warn("Failed to watch new directory", "path", name, "error", err)
					}

					break
				}
			}

			return false
		}
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	return s.matches(name)
}

func (s *watchSession) matches(name string) bool {
	for _, root := range s.roots {
		if root.file != "" {
			if name == root.file {
				return true
			}

			continue
		}

		rel, ok := relativeTo(root.dir, name)
		if !ok {
			continue
		}

		if !matchesAnyPattern(rel, s.excludes) && matchesAnyPattern(rel, s.includes) {
			return true
		}
	}

	return false
}

// relativeTo returns path relative to base with '/' separators, and false
// when path is outside base.
func relativeTo(base, path string) (string, bool) {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return "", false
	}

	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}

	return rel, true
}
