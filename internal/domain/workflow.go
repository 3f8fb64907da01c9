package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"termite.dev/pkg/termite/internal/adapter"
	"termite.dev/pkg/termite/internal/controller"
	"termite.dev/pkg/termite/internal/domain/rules"
	m "termite.dev/pkg/termite/internal/model"
)

var (
	// ErrNoSources is returned when discovery finds no candidate file.
	ErrNoSources = errors.New("no source files found")
	// ErrPartialFailure is returned when the run completed but at least one
	// file could not be read or written.
	ErrPartialFailure = errors.New("some files could not be processed")
)

// ScanArgs selects the files to scan and the rules to classify them with.
type ScanArgs struct {
	Paths   []m.Path
	Include []string
	Exclude []string
	Threads int

	// Stopwords and Always replace the default sets when non-nil.
	Stopwords []string
	Always    []string
	MinLength int
	DocSigil  string
}

// Rules builds the classification rules for the scan.
func (a ScanArgs) Rules() *rules.Rules {
	opts := []rules.Option{rules.WithMinLength(a.MinLength), rules.WithDocSigil(a.DocSigil)}
	if a.Stopwords != nil {
		opts = append(opts, rules.WithStopwords(a.Stopwords...))
	}

	if a.Always != nil {
		opts = append(opts, rules.WithAlways(a.Always...))
	}

	return rules.New(opts...)
}

func (a ScanArgs) threads() int {
	if a.Threads > 0 {
		return a.Threads
	}

	return runtime.NumCPU()
}

// RunArgs contains the arguments for preview and fix runs.
type RunArgs struct {
	ScanArgs

	Quiet bool
	Full  bool
}

// ReportArgs contains the arguments for report mode.
type ReportArgs struct {
	ScanArgs

	Format string
	Save   m.Path
}

// WatchArgs contains the arguments for watch mode.
type WatchArgs struct {
	RunArgs

	Write    bool
	Debounce time.Duration
}

// Workflow defines the linker runs exposed to the CLI.
type Workflow interface {
	Report(ctx context.Context, args ReportArgs) error
	Preview(ctx context.Context, args RunArgs) error
	Fix(ctx context.Context, args RunArgs) error
	Watch(ctx context.Context, args WatchArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	controller.UI

	watcher adapter.WatchAdapter
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	watcher adapter.WatchAdapter,
	ui controller.UI,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		watcher:         watcher,
	}
}

// Report scans the corpus and shows statistics. The linker does not run.
func (w *workflow) Report(ctx context.Context, args ReportArgs) error {
	if err := w.Start(ctx, controller.WithMode(m.ModeReport)); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	r := args.Rules()

	corpus, failures, err := w.scan(ctx, args.ScanArgs, r)
	if err != nil {
		slog.Error("Failed to scan sources", "error", err)
		return err
	}

	card := BuildReportCard(corpus, failures, r)

	if err := w.DisplayReport(ctx, card, args.Format); err != nil {
		return fmt.Errorf("display report: %w", err)
	}

	if args.Save != "" {
		if err := w.SaveReport(ctx, args.Save, card); err != nil {
			slog.Error("Failed to save report", "path", args.Save, "error", err)
			return fmt.Errorf("save report: %w", err)
		}

		slog.Info("Report saved", "path", args.Save)
	}

	w.Wait(ctx)

	return partialFailure(len(failures), card.Files)
}

// Preview runs the whole pipeline and shows the result without writing.
func (w *workflow) Preview(ctx context.Context, args RunArgs) error {
	return w.run(ctx, m.ModePreview, args)
}

// Fix runs the whole pipeline and overwrites every changed file.
func (w *workflow) Fix(ctx context.Context, args RunArgs) error {
	return w.run(ctx, m.ModeFix, args)
}

func (w *workflow) run(ctx context.Context, mode m.Mode, args RunArgs) error {
	err := w.Start(ctx,
		controller.WithMode(mode),
		controller.WithQuiet(args.Quiet),
		controller.WithFullPreview(args.Full),
	)
	if err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	_, summary, err := w.pass(ctx, mode, args)
	if err != nil {
		return err
	}

	w.Wait(ctx)

	return partialFailure(len(summary.Failures), summary.Files)
}

// pass runs one scan, rewrite and materialize cycle and displays its summary.
// Per-file failures are part of the summary; only fatal errors are returned.
func (w *workflow) pass(ctx context.Context, mode m.Mode, args RunArgs) (*m.Corpus, m.Summary, error) {
	start := time.Now()
	r := args.Rules()

	corpus, failures, err := w.scan(ctx, args.ScanArgs, r)
	if err != nil {
		slog.Error("Failed to scan sources", "error", err)
		return nil, m.Summary{}, err
	}

	adjustments, err := w.rewrite(ctx, corpus, r, args.threads())
	if err != nil {
		return nil, m.Summary{}, err
	}

	summary := m.Summary{Mode: mode, Files: len(corpus.Units), Failures: failures}

	writeErrs, err := w.materialize(ctx, mode, corpus, adjustments, args.threads())
	if err != nil {
		return nil, m.Summary{}, err
	}

	for i, unit := range corpus.Units {
		if len(adjustments[i]) == 0 {
			continue
		}

		if writeErrs[i] != nil {
			slog.Error("Failed to write file", "path", unit.Path, "error", writeErrs[i])

			failure := m.FileError{Path: unit.Path, Op: "write", Err: writeErrs[i]}
			summary.Failures = append(summary.Failures, failure)
			w.DisplayFileError(ctx, failure)

			continue
		}

		summary.FilesChanged++
		summary.LinesModified += len(adjustments[i])

		if mode == m.ModeFix {
			summary.Written = append(summary.Written, unit.Path)
		}
	}

	summary.Elapsed = time.Since(start)

	slog.Info("Run finished",
		"mode", mode.String(),
		"files", summary.Files,
		"changed", summary.FilesChanged,
		"lines", summary.LinesModified,
		"failures", len(summary.Failures),
		"elapsed", summary.Elapsed,
	)

	w.DisplaySummary(ctx, summary)

	return corpus, summary, nil
}

// scan discovers and ingests every file in parallel, then builds the registry
// once all of them are done. Read failures leave an empty unit in place.
func (w *workflow) scan(ctx context.Context, args ScanArgs, r *rules.Rules) (*m.Corpus, []m.FileError, error) {
	paths, err := w.Discover(ctx, args.Paths, args.Include, args.Exclude)
	if err != nil {
		return nil, nil, fmt.Errorf("discover sources: %w", err)
	}

	if len(paths) == 0 {
		return nil, nil, ErrNoSources
	}

	slog.Debug("Scanning sources", "files", len(paths), "threads", args.threads())
	w.DisplayScanStarted(ctx, len(paths))

	ingester := NewIngester(w.SourceFSAdapter, NewClassifier(r))
	units := make([]*m.SourceUnit, len(paths))
	readErrs := make([]error, len(paths))

	var group errgroup.Group
	group.SetLimit(args.threads())

	for i, path := range paths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			units[i], readErrs[i] = ingester.Ingest(ctx, m.UnitID(i), path)
			w.DisplayFileScanned(ctx, path)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	var failures []m.FileError

	for i, readErr := range readErrs {
		if readErr == nil {
			continue
		}

		slog.Warn("Skipping unreadable file", "path", paths[i], "error", readErr)

		failure := m.FileError{Path: paths[i], Op: "read", Err: readErr}
		failures = append(failures, failure)
		w.DisplayFileError(ctx, failure)
	}

	corpus := &m.Corpus{Units: units, Registry: MergeRegistry(units, r)}
	slog.Debug("Registry built", "files", len(units), "identifiers", len(corpus.Registry))

	return corpus, failures, nil
}

// rewrite runs the linker over every unit in parallel. The registry is only
// read here.
func (w *workflow) rewrite(ctx context.Context, corpus *m.Corpus, r *rules.Rules, threads int) ([][]m.Adjustment, error) {
	linker := NewLinker(r)
	adjustments := make([][]m.Adjustment, len(corpus.Units))

	var group errgroup.Group
	group.SetLimit(threads)

	for i, unit := range corpus.Units {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			adjustments[i] = linker.Rewrite(unit, corpus.Registry)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return adjustments, nil
}

// materialize previews changed units in order, or writes them in parallel.
// It returns one write error slot per unit; a returned error is fatal.
func (w *workflow) materialize(ctx context.Context, mode m.Mode, corpus *m.Corpus, adjustments [][]m.Adjustment, threads int) ([]error, error) {
	materializer := NewMaterializer(w.SourceFSAdapter, w.UI)
	writeErrs := make([]error, len(corpus.Units))

	if mode == m.ModePreview {
		for i, unit := range corpus.Units {
			if len(adjustments[i]) == 0 {
				continue
			}

			if _, err := materializer.Materialize(ctx, unit, adjustments[i], mode); err != nil {
				return nil, err
			}
		}

		return writeErrs, nil
	}

	var group errgroup.Group
	group.SetLimit(threads)

	for i, unit := range corpus.Units {
		if len(adjustments[i]) == 0 {
			continue
		}

		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			_, writeErrs[i] = materializer.Materialize(ctx, unit, adjustments[i], mode)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return writeErrs, nil
}

func partialFailure(failed, total int) error {
	if failed == 0 {
		return nil
	}

	return fmt.Errorf("%w: %d of %d files failed", ErrPartialFailure, failed, total)
}
