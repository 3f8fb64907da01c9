// Package rules holds the declarative line-classification table: which text
// marks a documentation comment, which patterns introduce declarations, and
// which names may never become linkable identifiers.
package rules

import (
	"regexp"
	"strings"

	m "termite.dev/pkg/termite/internal/model"
)

// identGroup is the capture group every declaration pattern names.
const identGroup = "ident"

const (
	// DefaultDocSigil starts a documentation-comment line.
	DefaultDocSigil = "///"
	// DefaultMinLength is the shortest name that may become an identifier.
	DefaultMinLength = 3
)

// DefaultStopwords are names never linked, however often they are declared.
var DefaultStopwords = []string{
	"log", "std", "core", "io", "crate",
	"to", "path", "file", "from", "into", "self", "Self",
}

// DefaultAlways are primitive type names reserved for unconditional linking.
var DefaultAlways = []string{
	"String", "str", "&str", "bool", "true", "false", "float",
	"f8", "f16", "f32", "f64", "f128",
	"i8", "u8", "i16", "u16", "i32", "u32", "i64", "u64", "i128", "u128",
	"isize", "usize",
}

// Rule is one row of the declaration table.
type Rule struct {
	Kind    m.Kind
	Pattern *regexp.Regexp
	Group   string
}

// Captures returns every name the rule captures on text, in match order.
func (r Rule) Captures(text string) []string {
	idx := r.Pattern.SubexpIndex(r.Group)
	if idx < 0 {
		return nil
	}

	var names []string

	for _, match := range r.Pattern.FindAllStringSubmatch(text, -1) {
		names = append(names, match[idx])
	}

	return names
}

// declarations is the fixed priority order used by Classify.
var declarations = []Rule{
	{Kind: m.KindFunction, Pattern: regexp.MustCompile(`\bfn\s(?P<ident>\w*)`), Group: identGroup},
	{Kind: m.KindType, Pattern: regexp.MustCompile(`\btype\s(?P<ident>\w*)`), Group: identGroup},
	{Kind: m.KindEnum, Pattern: regexp.MustCompile(`\benum\s(?P<ident>\w*)`), Group: identGroup},
	{Kind: m.KindStruct, Pattern: regexp.MustCompile(`\bstruct\s(?P<ident>\w*)`), Group: identGroup},
	{Kind: m.KindTrait, Pattern: regexp.MustCompile(`\btrait\s(?P<ident>\w*)`), Group: identGroup},
	{Kind: m.KindUse, Pattern: regexp.MustCompile(`\buse\s(?P<ident>\w*)`), Group: identGroup},
	{Kind: m.KindImport, Pattern: regexp.MustCompile(`::(?P<ident>\w*);`), Group: identGroup},
}

// publicPrefix is the crude visibility check used by the report card.
var publicPrefix = regexp.MustCompile(`^\s*pub\b`)

// Rules is the immutable classification configuration. It is built once and
// shared by reference between goroutines.
type Rules struct {
	DocSigil     string
	Declarations []Rule
	MinLength    int
	Always       []string

	stopwords map[string]struct{}
	always    map[string]struct{}
}

// Option customises Rules built by New.
type Option func(*Rules)

// WithStopwords replaces the stopword set.
func WithStopwords(words ...string) Option {
	return func(r *Rules) {
		r.stopwords = toSet(words)
	}
}

// WithMinLength replaces the minimum identifier length.
func WithMinLength(n int) Option {
	return func(r *Rules) {
		if n > 0 {
			r.MinLength = n
		}
	}
}

// WithDocSigil replaces the documentation-comment sigil.
func WithDocSigil(sigil string) Option {
	return func(r *Rules) {
		if strings.TrimSpace(sigil) != "" {
			r.DocSigil = strings.TrimSpace(sigil)
		}
	}
}

// WithAlways replaces the always-link set.
func WithAlways(names ...string) Option {
	return func(r *Rules) {
		r.Always = append([]string(nil), names...)
		r.always = toSet(names)
	}
}

// New builds Rules from the defaults and applies opts.
func New(opts ...Option) *Rules {
	r := &Rules{
		DocSigil:     DefaultDocSigil,
		Declarations: declarations,
		MinLength:    DefaultMinLength,
		Always:       append([]string(nil), DefaultAlways...),
		stopwords:    toSet(DefaultStopwords),
		always:       toSet(DefaultAlways),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Default returns the default Rules.
func Default() *Rules {
	return New()
}

// Excluded reports whether name may never become an identifier: it is empty,
// shorter than MinLength, or a stopword.
func (r *Rules) Excluded(name string) bool {
	if name == "" || len(name) < r.MinLength {
		return true
	}

	_, stop := r.stopwords[name]

	return stop
}

// IsAlways reports whether name is in the always-link set.
func (r *Rules) IsAlways(name string) bool {
	_, ok := r.always[name]
	return ok
}

// IsDocComment reports whether text, after leading whitespace, starts with the
// doc-comment sigil.
func (r *Rules) IsDocComment(text string) bool {
	return strings.HasPrefix(strings.TrimLeft(text, " \t"), r.DocSigil)
}

// SplitDocComment splits a doc-comment line into its prefix (indentation and
// sigil) and body. ok is false when text is not a doc-comment line.
func (r *Rules) SplitDocComment(text string) (prefix, body string, ok bool) {
	trimmed := strings.TrimLeft(text, " \t")
	if !strings.HasPrefix(trimmed, r.DocSigil) {
		return "", text, false
	}

	cut := len(text) - len(trimmed) + len(r.DocSigil)

	return text[:cut], text[cut:], true
}

// IsPublic reports whether a declaration line starts with `pub`.
func (r *Rules) IsPublic(text string) bool {
	return publicPrefix.MatchString(text)
}

// Stopwords returns the stopword set in no particular order.
func (r *Rules) Stopwords() []string {
	words := make([]string, 0, len(r.stopwords))
	for w := range r.stopwords {
		words = append(words, w)
	}

	return words
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}

	return set
}
