package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"termite.dev/pkg/termite/internal/adapter"
	"termite.dev/pkg/termite/internal/controller"
	m "termite.dev/pkg/termite/internal/model"
)

// ErrUnsupportedMode is returned when a unit is materialized in report mode.
var ErrUnsupportedMode = errors.New("mode does not materialize output")

// Materializer reconstructs a unit's text from its adjustments and either
// shows it (preview) or writes it back over the original file (fix).
type Materializer interface {
	// Materialize returns one text per line of unit, in order. Lines without an
	// adjustment keep their original text.
	Materialize(ctx context.Context, unit *m.SourceUnit, adjustments []m.Adjustment, mode m.Mode) ([]string, error)
}

type materializer struct {
	adapter.SourceFSAdapter
	controller.UI
}

// NewMaterializer creates a Materializer writing through fsAdapter and
// previewing through ui.
func NewMaterializer(fsAdapter adapter.SourceFSAdapter, ui controller.UI) Materializer {
	return &materializer{
		SourceFSAdapter: fsAdapter,
		UI:              ui,
	}
}

func (mt *materializer) Materialize(ctx context.Context, unit *m.SourceUnit, adjustments []m.Adjustment, mode m.Mode) ([]string, error) {
	if mode != m.ModePreview && mode != m.ModeFix {
		return nil, fmt.Errorf("materialize %s: %w", mode, ErrUnsupportedMode)
	}

	byLine := make(map[int]string, len(adjustments))

	for _, adj := range adjustments {
		if adj.Ref.Unit == unit.ID {
			byLine[adj.Ref.Number] = adj.NewText
		}
	}

	lines := make([]string, unit.TotalLines())

	var changed []int

	for i, line := range unit.Lines {
		text, ok := byLine[i]
		if !ok {
			text = line.Text
		}

		if text != line.Text {
			changed = append(changed, i)
		}

		lines[i] = text
	}

	if mode == m.ModePreview {
		preview := m.FilePreview{
			Path:    unit.Path,
			Before:  unit.Texts(),
			After:   lines,
			Changed: changed,
		}

		if err := mt.DisplayPreview(ctx, preview); err != nil {
			return lines, fmt.Errorf("preview %s: %w", unit.Path, err)
		}

		return lines, nil
	}

	content := joinLines(lines, unit)
	if err := mt.WriteFile(ctx, unit.Path, content); err != nil {
		return lines, fmt.Errorf("write %s: %w", unit.Path, err)
	}

	return lines, nil
}

// joinLines is the inverse of splitLines: each line is followed by the
// separator it had when the unit was read.
func joinLines(lines []string, unit *m.SourceUnit) []byte {
	var b strings.Builder

	for i, line := range lines {
		b.WriteString(line)
		b.WriteString(string(unit.EndingAt(i)))
	}

	return []byte(b.String())
}
