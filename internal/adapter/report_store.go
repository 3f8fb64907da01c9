package adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	m "termite.dev/pkg/termite/internal/model"
)

// ReportStore persists report cards.
type ReportStore interface {
	// SaveReport writes card as YAML to path, creating parent directories.
	SaveReport(ctx context.Context, path m.Path, card m.ReportCard) error
}

// YAMLReportStore is the file-backed ReportStore.
type YAMLReportStore struct{}

// NewReportStore creates a YAMLReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveReport encodes card and replaces path with it.
func (s *YAMLReportStore) SaveReport(ctx context.Context, path m.Path, card m.ReportCard) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := yaml.Marshal(card)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	target := string(path)

	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}

	if err := os.WriteFile(target, data, 0o600); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}
