// Package model defines the data structures shared by the linker pipeline.
package model

// Path represents a file system path.
type Path string

// UnitID identifies a SourceUnit within one scan. It is the unit's index in
// Corpus.Units.
type UnitID int

// LineEnding is the separator a unit's file used between lines.
type LineEnding string

const (
	// LF is the Unix line separator.
	LF LineEnding = "\n"
	// CRLF is the Windows line separator.
	CRLF LineEnding = "\r\n"
)

// SourceUnit is one file's classified representation.
//
// Lines is dense: Lines[i].Number == i for every i. The number of lines never
// changes across the pipeline.
type SourceUnit struct {
	ID          UnitID
	Path        Path
	Lines       []Line
	Identifiers []string // deduplicated, order of first appearance

	// Ending is the first separator of the file. Endings holds the separator
	// after each line, so files mixing LF and CRLF round-trip; the last entry
	// is empty without a trailing newline.
	Ending          LineEnding
	Endings         []LineEnding
	TrailingNewline bool
}

// TotalLines returns the number of lines in the unit.
func (u *SourceUnit) TotalLines() int {
	return len(u.Lines)
}

// Line returns the line with the given number.
func (u *SourceUnit) Line(number int) (Line, bool) {
	if number < 0 || number >= len(u.Lines) {
		return Line{}, false
	}

	return u.Lines[number], true
}

// EndingAt returns the separator written after line number. Units built
// without per-line endings fall back to Ending and TrailingNewline.
func (u *SourceUnit) EndingAt(number int) LineEnding {
	if number >= 0 && number < len(u.Endings) {
		return u.Endings[number]
	}

	if number < len(u.Lines)-1 || u.TrailingNewline {
		if u.Ending == "" {
			return LF
		}

		return u.Ending
	}

	return ""
}

// Texts returns the original text of every line in order.
func (u *SourceUnit) Texts() []string {
	texts := make([]string, len(u.Lines))
	for i, line := range u.Lines {
		texts[i] = line.Text
	}

	return texts
}

// Corpus is the whole scanned tree.
//
// Registry is only populated once every unit has finished classification.
type Corpus struct {
	Units    []*SourceUnit
	Registry []string
}
