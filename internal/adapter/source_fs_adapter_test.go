package adapter

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "termite.dev/pkg/termite/internal/model"
)

var (
	defaultInclude = []string{"**/*.rs"}
	defaultExclude = []string{"target/**", "**/target/**", ".git/**"}
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "lib.rs"), "struct Foo {}\n")
	writeTestFile(t, filepath.Join(root, "src", "main.rs"), "fn main() {}\n")
	writeTestFile(t, filepath.Join(root, "src", "nested", "deep.rs"), "/// Foo\n")
	writeTestFile(t, filepath.Join(root, "src", "notes.md"), "# notes\n")
	writeTestFile(t, filepath.Join(root, "target", "debug", "build.rs"), "fn gen() {}\n")
	writeTestFile(t, filepath.Join(root, "crates", "a", "target", "out.rs"), "fn gen() {}\n")
	writeTestFile(t, filepath.Join(root, ".git", "hook.rs"), "fn hook() {}\n")

	return root
}

func TestLocalSourceFSAdapter_Discover(t *testing.T) {
	ctx := context.Background()

	t.Run("walks recursively with include and exclude globs", func(t *testing.T) {
		root := newTree(t)

		files, err := NewLocalSourceFSAdapter().Discover(ctx, []m.Path{m.Path(root)}, defaultInclude, defaultExclude)
		require.NoError(t, err)

		assert.Equal(t, []m.Path{
			m.Path(filepath.Join(root, "lib.rs")),
			m.Path(filepath.Join(root, "src", "main.rs")),
			m.Path(filepath.Join(root, "src", "nested", "deep.rs")),
		}, files)
	})

	t.Run("explicit file root is taken verbatim", func(t *testing.T) {
		root := newTree(t)
		notes := filepath.Join(root, "src", "notes.md")

		files, err := NewLocalSourceFSAdapter().Discover(ctx, []m.Path{m.Path(notes)}, defaultInclude, defaultExclude)
		require.NoError(t, err)
		assert.Equal(t, []m.Path{m.Path(notes)}, files)
	})

	t.Run("overlapping roots are deduplicated", func(t *testing.T) {
		root := newTree(t)
		src := filepath.Join(root, "src")

		files, err := NewLocalSourceFSAdapter().Discover(ctx,
			[]m.Path{m.Path(src), m.Path(filepath.Join(src, "main.rs")), m.Path(src)},
			defaultInclude, defaultExclude)
		require.NoError(t, err)

		assert.Equal(t, []m.Path{
			m.Path(filepath.Join(src, "main.rs")),
			m.Path(filepath.Join(src, "nested", "deep.rs")),
		}, files)
	})

	t.Run("no include pattern matches nothing", func(t *testing.T) {
		root := newTree(t)

		files, err := NewLocalSourceFSAdapter().Discover(ctx, []m.Path{m.Path(root)}, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("missing root is an error", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing")

		files, err := NewLocalSourceFSAdapter().Discover(ctx, []m.Path{m.Path(missing)}, defaultInclude, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Nil(t, files)
	})

	t.Run("invalid pattern is an error", func(t *testing.T) {
		root := newTree(t)

		_, err := NewLocalSourceFSAdapter().Discover(ctx, []m.Path{m.Path(root)}, []string{"src/[.rs"}, nil)
		require.ErrorIs(t, err, ErrInvalidPattern)
	})

	t.Run("cancelled context", func(t *testing.T) {
		root := newTree(t)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewLocalSourceFSAdapter().Discover(cancelled, []m.Path{m.Path(root)}, defaultInclude, nil)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestMatchesAnyPattern(t *testing.T) {
	patterns, err := compilePatterns([]string{"**/*.rs", " ", "target/**"})
	require.NoError(t, err)
	require.Len(t, patterns, 2)

	assert.True(t, matchesAnyPattern("lib.rs", patterns))
	assert.True(t, matchesAnyPattern("src/lib.rs", patterns))
	assert.True(t, matchesAnyPattern("target/x", patterns))
	assert.False(t, matchesAnyPattern("README.md", patterns))

	assert.True(t, shouldIgnore("target", patterns))
	assert.False(t, shouldIgnore("src", patterns))
}

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "a.rs")
	writeTestFile(t, path, "struct Foo {}\n")

	content, err := NewLocalSourceFSAdapter().ReadFile(ctx, m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, "struct Foo {}\n", string(content))

	_, err = NewLocalSourceFSAdapter().ReadFile(ctx, m.Path(path+".missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalSourceFSAdapter_WriteFile(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces content and keeps permissions", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "b.rs")
		writeTestFile(t, path, "/// A Foo in use.\n")
		require.NoError(t, os.Chmod(path, 0o640))

		err := NewLocalSourceFSAdapter().WriteFile(ctx, m.Path(path), []byte("/// A [`Foo`] in use.\n"))
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "/// A [`Foo`] in use.\n", string(content))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temporary file left behind")
	})

	t.Run("missing target is left absent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gone.rs")

		err := NewLocalSourceFSAdapter().WriteFile(ctx, m.Path(path), []byte("x"))
		require.ErrorIs(t, err, os.ErrNotExist)

		_, statErr := os.Stat(path)
		assert.ErrorIs(t, statErr, os.ErrNotExist)
	})

	t.Run("unwritable directory keeps original", func(t *testing.T) {
		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("directory permissions are not enforced")
		}

		dir := t.TempDir()
		path := filepath.Join(dir, "c.rs")
		writeTestFile(t, path, "original\n")
		require.NoError(t, os.Chmod(dir, 0o555))
		t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

		err := NewLocalSourceFSAdapter().WriteFile(ctx, m.Path(path), []byte("changed\n"))
		require.Error(t, err)

		content, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, "original\n", string(content))
	})
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "a.rs")
	writeTestFile(t, path, "x")

	info, err := NewLocalSourceFSAdapter().FileInfo(ctx, m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, "a.rs", info.Name())
	assert.Equal(t, int64(1), info.Size())
}
