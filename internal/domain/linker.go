package domain

import (
	"strings"
	"unicode"

	"termite.dev/pkg/termite/internal/domain/rules"
	m "termite.dev/pkg/termite/internal/model"
)

// mentionSuffixes are the endings that still count as a mention of an
// identifier: plural, sentence-terminal and possessive.
var mentionSuffixes = []string{"", "s", ".", "'s"}

// LinkMarker returns the form a mention of ident is rewritten to.
func LinkMarker(ident string) string {
	return "[`" + ident + "`]"
}

// Linker rewrites doc-comment lines so mentions of registry identifiers become
// link markers. It never mutates the unit it is given.
type Linker interface {
	// Rewrite returns one Adjustment per line whose text changed. Lines that
	// are not doc comments are never adjusted.
	Rewrite(unit *m.SourceUnit, registry []string) []m.Adjustment

	// ShouldBeModified reports whether line needs a link for ident.
	ShouldBeModified(line m.Line, ident string) bool
}

type linker struct {
	rules *rules.Rules
}

// NewLinker creates a Linker using r to locate the doc-comment sigil.
func NewLinker(r *rules.Rules) Linker {
	if r == nil {
		r = rules.Default()
	}

	return &linker{rules: r}
}

func (l *linker) Rewrite(unit *m.SourceUnit, registry []string) []m.Adjustment {
	if unit == nil {
		return nil
	}

	var adjustments []m.Adjustment

	for _, line := range unit.Lines {
		if !line.Flavour.IsDocComment() {
			continue
		}

		// Each identifier sees the text left by the previous one; linked
		// tokens carry backticks and are never matched again.
		current := line
		for _, ident := range registry {
			if l.ShouldBeModified(current, ident) {
				current.Text = l.link(current.Text, ident)
			}
		}

		if current.Text != line.Text {
			adjustments = append(adjustments, m.Adjustment{
				Ref:     line.Ref(),
				NewText: current.Text,
			})
		}
	}

	return adjustments
}

// ShouldBeModified holds when line is a doc comment, some whitespace-delimited
// token of its body is ident (optionally followed by "s", "." or "'s"), and
// ident does not already appear wrapped in backticks anywhere on the line.
func (l *linker) ShouldBeModified(line m.Line, ident string) bool {
	if !line.Flavour.IsDocComment() || ident == "" {
		return false
	}

	if strings.Contains(line.Text, "`"+ident+"`") {
		return false
	}

	_, body, ok := l.rules.SplitDocComment(line.Text)
	if !ok {
		return false
	}

	for _, token := range strings.Fields(body) {
		if isQuoted(token) {
			continue
		}

		if mentions(token, ident) {
			return true
		}
	}

	return false
}

// link replaces every unquoted body token containing ident with its link
// marker. Whitespace between tokens and the doc-comment prefix are kept as-is.
func (l *linker) link(text, ident string) string {
	prefix, body, ok := l.rules.SplitDocComment(text)
	if !ok {
		return text
	}

	marker := LinkMarker(ident)

	var b strings.Builder

	b.Grow(len(text) + len(marker))
	b.WriteString(prefix)

	for _, seg := range segments(body) {
		if seg.space || isQuoted(seg.text) || !strings.Contains(seg.text, ident) {
			b.WriteString(seg.text)
			continue
		}

		b.WriteString(marker)
	}

	return b.String()
}

func mentions(token, ident string) bool {
	for _, suffix := range mentionSuffixes {
		if token == ident+suffix {
			return true
		}
	}

	return false
}

// isQuoted reports whether a token is already code-quoted or linked.
func isQuoted(token string) bool {
	return strings.ContainsRune(token, '`')
}

type segment struct {
	text  string
	space bool
}

// segments splits s into alternating runs of whitespace and non-whitespace.
func segments(s string) []segment {
	var (
		out   []segment
		start int
		space bool
	)

	for i, r := range s {
		isSpace := unicode.IsSpace(r)
		if i == 0 {
			space = isSpace
			continue
		}

		if isSpace != space {
			out = append(out, segment{text: s[start:i], space: space})
			start = i
			space = isSpace
		}
	}

	if start < len(s) {
		out = append(out, segment{text: s[start:], space: space})
	}

	return out
}
