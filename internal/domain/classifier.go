package domain

import (
	"termite.dev/pkg/termite/internal/domain/rules"
	m "termite.dev/pkg/termite/internal/model"
)

// Classifier assigns a flavour to a single line of text and extracts the
// declaration names it introduces. Implementations are pure and safe for
// concurrent use.
type Classifier interface {
	Classify(text string) (m.Flavour, []string)
}

type classifier struct {
	rules *rules.Rules
}

// NewClassifier creates a Classifier driven by the given rules table.
func NewClassifier(r *rules.Rules) Classifier {
	if r == nil {
		r = rules.Default()
	}

	return &classifier{rules: r}
}

// Classify never fails. Doc-comment lines yield no identifiers. For other
// lines every declaration rule is applied in priority order; all captured
// names are kept but the flavour is the last kind that matched.
func (c *classifier) Classify(text string) (m.Flavour, []string) {
	if c.rules.IsDocComment(text) {
		return m.DocComment(), nil
	}

	flavour := m.Plain()

	var identifiers []string

	for _, rule := range c.rules.Declarations {
		captures := rule.Captures(text)
		if len(captures) == 0 {
			continue
		}

		flavour = m.Declaration(rule.Kind)

		for _, name := range captures {
			if c.rules.Excluded(name) {
				continue
			}

			identifiers = append(identifiers, name)
		}
	}

	return flavour, identifiers
}
