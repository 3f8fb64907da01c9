package model

import (
	"fmt"
	"time"
)

// Mode selects what a run does with the rewrite engine's output.
type Mode int

const (
	// ModeReport gathers statistics only; the rewrite engine does not run.
	ModeReport Mode = iota
	// ModePreview runs the full pipeline and shows the result without touching disk.
	ModePreview
	// ModeFix runs the full pipeline and overwrites the changed files.
	ModeFix
)

func (m Mode) String() string {
	switch m {
	case ModeReport:
		return "report"
	case ModePreview:
		return "preview"
	case ModeFix:
		return "fix"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// FileError records a per-file failure that did not abort the run.
type FileError struct {
	Path Path
	Op   string // "read", "write" or "scan"
	Err  error
}

func (e FileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Summary is the informational outcome of a preview or fix run.
type Summary struct {
	Mode          Mode
	Files         int
	FilesChanged  int
	LinesModified int
	Written       []Path // files overwritten by a fix, in scan order
	Failures      []FileError
	Elapsed       time.Duration
}

// KindCount counts declarations of a single kind.
type KindCount struct {
	Kind   Kind `yaml:"kind"`
	Total  int  `yaml:"total"`
	Public int  `yaml:"public"`
}

// FileStat is one row of the report card.
type FileStat struct {
	Path               Path `yaml:"path"`
	Lines              int  `yaml:"lines"`
	DocLines           int  `yaml:"doc_lines"`
	Declarations       int  `yaml:"declarations"`
	PublicDeclarations int  `yaml:"public_declarations"`
	Identifiers        int  `yaml:"identifiers"`
}

// ReportCard holds the statistics produced by report mode.
type ReportCard struct {
	Files        int         `yaml:"files"`
	FailedFiles  int         `yaml:"failed_files"`
	Lines        int         `yaml:"lines"`
	DocLines     int         `yaml:"doc_lines"`
	RegistrySize int         `yaml:"registry_size"`
	Kinds        []KindCount `yaml:"kinds"`
	PerFile      []FileStat  `yaml:"per_file"`
	Always       []string    `yaml:"always_link"`
}

// FilePreview is the reconstructed text of one file next to its original.
// Changed holds the 0-based numbers of the lines that differ, ascending.
type FilePreview struct {
	Path    Path
	Before  []string
	After   []string
	Changed []int
}
