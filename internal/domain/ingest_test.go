package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"termite.dev/pkg/termite/internal/adapter"
	"termite.dev/pkg/termite/internal/domain/rules"
	m "termite.dev/pkg/termite/internal/model"
)

func writeSource(t *testing.T, dir, name, content string) m.Path {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return m.Path(path)
}

func newTestIngester() Ingester {
	return NewIngester(adapter.NewLocalSourceFSAdapter(), NewClassifier(rules.Default()))
}

func TestIngester_Ingest(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.rs", "/// A Foo in use.\nstruct Foo {}\nfn make() -> Foo {}\nstruct Foo;\n")

	unit, err := newTestIngester().Ingest(context.Background(), 3, path)
	require.NoError(t, err)

	assert.Equal(t, m.UnitID(3), unit.ID)
	assert.Equal(t, path, unit.Path)
	assert.Equal(t, 4, unit.TotalLines())
	assert.Equal(t, m.LF, unit.Ending)
	assert.True(t, unit.TrailingNewline)
	assert.Equal(t, []string{"Foo", "make"}, unit.Identifiers)

	for i, line := range unit.Lines {
		assert.Equal(t, i, line.Number)
		assert.Equal(t, m.UnitID(3), line.Unit)
	}

	assert.Equal(t, m.DocComment(), unit.Lines[0].Flavour)
	assert.Equal(t, m.Declaration(m.KindStruct), unit.Lines[1].Flavour)
	assert.Equal(t, m.Declaration(m.KindFunction), unit.Lines[2].Flavour)
}

func TestIngester_LineEndings(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantTexts    []string
		wantEndings  []m.LineEnding
		wantEnding   m.LineEnding
		wantTrailing bool
	}{
		{"lf with trailing newline", "a\nb\n", []string{"a", "b"}, []m.LineEnding{m.LF, m.LF}, m.LF, true},
		{"lf without trailing newline", "a\nb", []string{"a", "b"}, []m.LineEnding{m.LF, ""}, m.LF, false},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}, []m.LineEnding{m.CRLF, m.CRLF}, m.CRLF, true},
		{"blank lines kept", "a\n\n\nb\n", []string{"a", "", "", "b"}, []m.LineEnding{m.LF, m.LF, m.LF, m.LF}, m.LF, true},
		{"single newline", "\n", []string{""}, []m.LineEnding{m.LF}, m.LF, true},
		{
			"mixed crlf and lf",
			"/// header\r\n/// See Foo\nlet y = Foo::new();\r\n",
			[]string{"/// header", "/// See Foo", "let y = Foo::new();"},
			[]m.LineEnding{m.CRLF, m.LF, m.CRLF},
			m.CRLF,
			true,
		},
		{"lone cr kept in text", "a\rb\nc\r", []string{"a\rb", "c\r"}, []m.LineEnding{m.LF, ""}, m.LF, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, t.TempDir(), "x.rs", tt.content)

			unit, err := newTestIngester().Ingest(context.Background(), 0, path)
			require.NoError(t, err)

			assert.Equal(t, tt.wantTexts, unit.Texts())
			assert.Equal(t, tt.wantEndings, unit.Endings)
			assert.Equal(t, tt.wantEnding, unit.Ending)
			assert.Equal(t, tt.wantTrailing, unit.TrailingNewline)
			assert.Equal(t, tt.content, string(joinLines(unit.Texts(), unit)))
		})
	}
}

func TestIngester_MixedEndingsClassifyPerLine(t *testing.T) {
	path := writeSource(t, t.TempDir(), "mixed.rs", "/// doc\r\n/// A Bar here\nstruct Bar {}\r\n")

	unit, err := newTestIngester().Ingest(context.Background(), 0, path)
	require.NoError(t, err)

	require.Equal(t, 3, unit.TotalLines())
	assert.Equal(t, m.DocComment(), unit.Lines[1].Flavour)
	assert.Equal(t, m.Declaration(m.KindStruct), unit.Lines[2].Flavour)
	assert.Equal(t, []string{"Bar"}, unit.Identifiers)
}

func TestIngester_EmptyFile(t *testing.T) {
	path := writeSource(t, t.TempDir(), "empty.rs", "")

	unit, err := newTestIngester().Ingest(context.Background(), 0, path)
	require.NoError(t, err)
	assert.Zero(t, unit.TotalLines())
	assert.Empty(t, unit.Identifiers)
}

func TestIngester_Failures(t *testing.T) {
	t.Run("missing file yields empty unit and error", func(t *testing.T) {
		path := m.Path(filepath.Join(t.TempDir(), "gone.rs"))

		unit, err := newTestIngester().Ingest(context.Background(), 1, path)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		require.NotNil(t, unit)
		assert.Equal(t, path, unit.Path)
		assert.Zero(t, unit.TotalLines())
	})

	t.Run("invalid utf-8 yields empty unit and error", func(t *testing.T) {
		path := writeSource(t, t.TempDir(), "bin.rs", "struct Foo {}\n\xff\xfe\n")

		unit, err := newTestIngester().Ingest(context.Background(), 1, path)
		require.ErrorIs(t, err, ErrInvalidEncoding)
		require.NotNil(t, unit)
		assert.Zero(t, unit.TotalLines())
		assert.Empty(t, unit.Identifiers)
	})
}
