// Package controller provides output adapters for displaying linker results.
package controller

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	m "termite.dev/pkg/termite/internal/model"
)

// Report formats accepted by DisplayReport.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
)

// ErrUnknownFormat is returned by DisplayReport for an unsupported format.
var ErrUnknownFormat = errors.New("unknown report format")

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode  m.Mode
	quiet bool
	full  bool
	watch bool
}

// WithMode sets the run mode shown by the UI.
func WithMode(mode m.Mode) StartOption {
	return func(c *StartConfig) {
		c.mode = mode
	}
}

// WithQuiet suppresses per-line preview output. Summaries and errors are still shown.
func WithQuiet(quiet bool) StartOption {
	return func(c *StartConfig) {
		c.quiet = quiet
	}
}

// WithFullPreview prints whole reconstructed files instead of diffs.
func WithFullPreview(full bool) StartOption {
	return func(c *StartConfig) {
		c.full = full
	}
}

// WithWatch marks a long-running watch session; output is never paged.
func WithWatch() StartOption {
	return func(c *StartConfig) {
		c.watch = true
	}
}

func newStartConfig(options []StartOption) StartConfig {
	cfg := StartConfig{mode: m.ModePreview}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines the interface for displaying scan progress, previews and results.
// Implementations can use different output methods (simple text, TUI, etc).
//
// DisplayFileScanned may be called from several goroutines at once.
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayScanStarted(ctx context.Context, files int)
	DisplayFileScanned(ctx context.Context, path m.Path)
	DisplayFileError(ctx context.Context, failure m.FileError)
	DisplayPreview(ctx context.Context, preview m.FilePreview) error
	DisplayReport(ctx context.Context, card m.ReportCard, format string) error
	DisplaySummary(ctx context.Context, summary m.Summary)
	DisplayWatchEvent(ctx context.Context, paths []m.Path)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

// NewUI returns the TUI when attached to a terminal and the SimpleUI otherwise.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	if isTTY {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}
