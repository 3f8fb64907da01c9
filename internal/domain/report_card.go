package domain

import (
	"termite.dev/pkg/termite/internal/domain/rules"
	m "termite.dev/pkg/termite/internal/model"
)

// BuildReportCard gathers corpus statistics for report mode. It never runs the
// linker. Units that failed ingestion are listed with zero counts.
func BuildReportCard(corpus *m.Corpus, failures []m.FileError, r *rules.Rules) m.ReportCard {
	if r == nil {
		r = rules.Default()
	}

	card := m.ReportCard{
		FailedFiles: len(failures),
		Always:      append([]string(nil), r.Always...),
	}

	if corpus == nil {
		return card
	}

	card.Files = len(corpus.Units)
	card.RegistrySize = len(corpus.Registry)

	totals := make(map[m.Kind]*m.KindCount, len(m.Kinds))
	for _, kind := range m.Kinds {
		totals[kind] = &m.KindCount{Kind: kind}
	}

	for _, unit := range corpus.Units {
		if unit == nil {
			continue
		}

		stat := m.FileStat{
			Path:        unit.Path,
			Lines:       unit.TotalLines(),
			Identifiers: len(unit.Identifiers),
		}

		for _, line := range unit.Lines {
			switch {
			case line.Flavour.IsDocComment():
				stat.DocLines++
			case line.Flavour.IsDeclaration():
				stat.Declarations++
				public := r.IsPublic(line.Text)

				if public {
					stat.PublicDeclarations++
				}

				if count, ok := totals[line.Flavour.Kind]; ok {
					count.Total++

					if public {
						count.Public++
					}
				}
			}
		}

		card.Lines += stat.Lines
		card.DocLines += stat.DocLines
		card.PerFile = append(card.PerFile, stat)
	}

	for _, kind := range m.Kinds {
		card.Kinds = append(card.Kinds, *totals[kind])
	}

	return card
}
