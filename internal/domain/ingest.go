package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"termite.dev/pkg/termite/internal/adapter"
	m "termite.dev/pkg/termite/internal/model"
)

// ErrInvalidEncoding is returned when a file is not valid UTF-8.
var ErrInvalidEncoding = errors.New("file is not valid UTF-8")

// Ingester turns one file into a classified SourceUnit.
type Ingester interface {
	// Ingest reads and classifies path. On failure it still returns an empty
	// unit (so the scan can continue) together with the error.
	Ingest(ctx context.Context, id m.UnitID, path m.Path) (*m.SourceUnit, error)
}

type ingester struct {
	fsAdapter  adapter.SourceFSAdapter
	classifier Classifier
}

// NewIngester creates an Ingester reading through fsAdapter.
func NewIngester(fsAdapter adapter.SourceFSAdapter, classifier Classifier) Ingester {
	return &ingester{
		fsAdapter:  fsAdapter,
		classifier: classifier,
	}
}

func (in *ingester) Ingest(ctx context.Context, id m.UnitID, path m.Path) (*m.SourceUnit, error) {
	unit := &m.SourceUnit{ID: id, Path: path, Ending: m.LF}

	content, err := in.fsAdapter.ReadFile(ctx, path)
	if err != nil {
		return unit, fmt.Errorf("read %s: %w", path, err)
	}

	if !utf8.Valid(content) {
		return unit, fmt.Errorf("read %s: %w", path, ErrInvalidEncoding)
	}

	texts, endings := splitLines(string(content))
	unit.Endings = endings

	for _, ending := range endings {
		if ending != "" {
			unit.Ending = ending
			break
		}
	}

	if len(endings) > 0 {
		unit.TrailingNewline = endings[len(endings)-1] != ""
	}
	unit.Lines = make([]m.Line, len(texts))

	seen := make(map[string]struct{})

	for number, text := range texts {
		flavour, identifiers := in.classifier.Classify(text)

		unit.Lines[number] = m.Line{
			Unit:        id,
			Number:      number,
			Text:        text,
			Flavour:     flavour,
			Identifiers: identifiers,
		}

		for _, ident := range identifiers {
			if _, ok := seen[ident]; ok {
				continue
			}

			seen[ident] = struct{}{}
			unit.Identifiers = append(unit.Identifiers, ident)
		}
	}

	return unit, nil
}

// splitLines splits content on LF into lines without their separators. A CR
// directly before the LF belongs to the separator of that line only. The
// last separator is empty when content does not end with a newline.
func splitLines(content string) ([]string, []m.LineEnding) {
	if content == "" {
		return nil, nil
	}

	var (
		texts   []string
		endings []m.LineEnding
	)

	for content != "" {
		i := strings.IndexByte(content, '\n')
		if i < 0 {
			texts = append(texts, content)
			endings = append(endings, "")

			break
		}

		text, ending := content[:i], m.LF
		if strings.HasSuffix(text, "\r") {
			text, ending = text[:len(text)-1], m.CRLF
		}

		texts = append(texts, text)
		endings = append(endings, ending)
		content = content[i+1:]
	}

	return texts, endings
}
