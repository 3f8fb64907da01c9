package domain

import (
	"termite.dev/pkg/termite/internal/domain/rules"
	m "termite.dev/pkg/termite/internal/model"
)

// MergeRegistry concatenates each unit's identifiers in unit order, keeps the
// first occurrence of every name and drops names the rules exclude.
//
// It must only be called once every unit has finished classification.
func MergeRegistry(units []*m.SourceUnit, r *rules.Rules) []string {
	if r == nil {
		r = rules.Default()
	}

	seen := make(map[string]struct{})
	registry := make([]string, 0)

	for _, unit := range units {
		if unit == nil {
			continue
		}

		for _, ident := range unit.Identifiers {
			if _, ok := seen[ident]; ok {
				continue
			}

			seen[ident] = struct{}{}

			if r.Excluded(ident) {
				continue
			}

			registry = append(registry, ident)
		}
	}

	return registry
}
