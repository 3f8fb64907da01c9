// Package adapter contains filesystem and watch adapters for the termite CLI.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	m "termite.dev/pkg/termite/internal/model"
)

// ErrInvalidPattern is returned when an include or exclude glob does not compile.
var ErrInvalidPattern = errors.New("invalid path pattern")

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning and rewriting user projects. It hides direct `os`
// access so the workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Discover returns the candidate files under roots. A root that is a file
	// is returned as-is; directories are walked recursively and filtered by
	// the include/exclude globs. A missing root is an error.
	Discover(ctx context.Context, roots []m.Path, include, exclude []string) ([]m.Path, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// WriteFile replaces the whole content of path. Either the new content is
	// in place afterwards or the original file is untouched.
	WriteFile(ctx context.Context, path m.Path, content []byte) error

	// FileInfo returns metadata for a path.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)
}

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Discover walks every root and collects matching files, sorted and deduplicated.
func (a *LocalSourceFSAdapter) Discover(ctx context.Context, roots []m.Path, include, exclude []string) ([]m.Path, error) {
	includes, err := compilePatterns(include)
	if err != nil {
		return nil, err
	}

	excludes, err := compilePatterns(exclude)
	if err != nil {
		return nil, err
	}

	if len(roots) == 0 {
		roots = []m.Path{"."}
	}

	seen := make(map[m.Path]struct{})

	var files []m.Path

	add := func(path string) {
		p := m.Path(filepath.Clean(path))
		if _, ok := seen[p]; ok {
			return
		}

		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rootStr := string(root)

		info, err := os.Stat(rootStr)
		if err != nil {
			return nil, fmt.Errorf("root path %s: %w", root, err)
		}

		if !info.IsDir() {
			add(rootStr)
			continue
		}

		err = filepath.WalkDir(rootStr, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				if path == rootStr {
					return walkErr
				}

				slog.Warn("Skipping unreadable path", "path", path, "error", walkErr)

				return nil
			}

			if err := ctx.Err(); err != nil {
				return err
			}

			rel, err := filepath.Rel(rootStr, path)
			if err != nil {
				return err
			}

			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if rel != "." && shouldIgnore(rel, excludes) {
					slog.Debug("Skipping excluded directory", "path", path)
					return filepath.SkipDir
				}

				return nil
			}

			if matchesAnyPattern(rel, excludes) || !matchesAnyPattern(rel, includes) {
				return nil
			}

			add(path)

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files, nil
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))

	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidPattern, pattern, err)
		}

		compiled = append(compiled, compiledPattern{pattern: pattern, glob: g})
	}

	return compiled, nil
}

// shouldIgnore checks if a directory matches any exclude pattern, either
// directly or as "dir/**".
func shouldIgnore(relPath string, patterns []compiledPattern) bool {
	if matchesAnyPattern(relPath, patterns) {
		return true
	}

	return matchesAnyPattern(relPath+"/**", patterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns. Paths
// at the root (no slash) also match "**/"-prefixed patterns with the prefix
// removed, so "**/*.rs" matches "lib.rs".
func matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	if strings.Contains(path, "/") {
		return false
	}

	for _, cp := range patterns {
		if !strings.HasPrefix(cp.pattern, "**/") {
			continue
		}

		simplified, err := glob.Compile(strings.TrimPrefix(cp.pattern, "**/"), '/')
		if err == nil && simplified.Match(path) {
			return true
		}
	}

	return false
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - path comes from discovery under user-selected roots
	return os.ReadFile(string(path))
}

// WriteFile writes content to a temporary sibling and renames it over path,
// keeping the original permissions.
func (a *LocalSourceFSAdapter) WriteFile(ctx context.Context, path m.Path, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := string(path)

	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".termite-*")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	cleanup := func() {
		if rmErr := os.Remove(tmpName); rmErr != nil && !os.IsNotExist(rmErr) {
			slog.Error("Failed to remove temp file", "path", tmpName, "error", rmErr)
		}
	}

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()

		cleanup()

		return err
	}

	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}

	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		cleanup()
		return err
	}

	if err := os.Rename(tmpName, target); err != nil {
		cleanup()
		return err
	}

	return nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Stat(string(path))
}
