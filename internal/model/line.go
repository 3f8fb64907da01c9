package model

import "fmt"

// Kind is the category of a declaration line.
type Kind string

const (
	// KindFunction represents `fn name`.
	KindFunction Kind = "function"
	// KindType represents `type Name`.
	KindType Kind = "type"
	// KindEnum represents `enum Name`.
	KindEnum Kind = "enum"
	// KindStruct represents `struct Name`.
	KindStruct Kind = "struct"
	// KindTrait represents `trait Name`.
	KindTrait Kind = "trait"
	// KindUse represents the first segment of a `use` path.
	KindUse Kind = "use"
	// KindImport represents the final `::Name;` segment of an import path.
	KindImport Kind = "import"
)

// Kinds lists every declaration kind in classification priority order.
var Kinds = []Kind{KindFunction, KindType, KindEnum, KindStruct, KindTrait, KindUse, KindImport}

// FlavourTag is the variant of a Flavour.
type FlavourTag uint8

const (
	// FlavourUnclassified is the zero value, before classification ran.
	FlavourUnclassified FlavourTag = iota
	// FlavourPlain is a line that is neither documentation nor a declaration.
	FlavourPlain
	// FlavourDocComment is a documentation-comment line.
	FlavourDocComment
	// FlavourDeclaration is a declaration line; Flavour.Kind holds the kind.
	FlavourDeclaration
)

// Flavour is the classification of a line. Kind is only meaningful when Tag is
// FlavourDeclaration.
type Flavour struct {
	Tag  FlavourTag
	Kind Kind
}

// Plain returns the plain flavour.
func Plain() Flavour { return Flavour{Tag: FlavourPlain} }

// DocComment returns the doc-comment flavour.
func DocComment() Flavour { return Flavour{Tag: FlavourDocComment} }

// Declaration returns the declaration flavour for kind.
func Declaration(kind Kind) Flavour { return Flavour{Tag: FlavourDeclaration, Kind: kind} }

// IsDocComment reports whether the flavour is DocComment.
func (f Flavour) IsDocComment() bool { return f.Tag == FlavourDocComment }

// IsDeclaration reports whether the flavour is a declaration of any kind.
func (f Flavour) IsDeclaration() bool { return f.Tag == FlavourDeclaration }

func (f Flavour) String() string {
	switch f.Tag {
	case FlavourPlain:
		return "plain"
	case FlavourDocComment:
		return "doc-comment"
	case FlavourDeclaration:
		return fmt.Sprintf("declaration(%s)", f.Kind)
	default:
		return "unclassified"
	}
}

// LineRef addresses a line without holding a pointer to its unit.
type LineRef struct {
	Unit   UnitID
	Number int
}

// Line is one line of a source file as ingested.
type Line struct {
	Unit        UnitID
	Number      int // 0-based
	Text        string
	Flavour     Flavour
	Identifiers []string
}

// Ref returns the line's address.
func (l Line) Ref() LineRef {
	return LineRef{Unit: l.Unit, Number: l.Number}
}

// Adjustment is the rewritten text proposed for one line.
type Adjustment struct {
	Ref     LineRef
	NewText string
}

// Adjustments indexes adjustments of a single unit by line number.
func Adjustments(adjustments []Adjustment) map[int]string {
	byLine := make(map[int]string, len(adjustments))
	for _, adj := range adjustments {
		byLine[adj.Ref.Number] = adj.NewText
	}

	return byLine
}
