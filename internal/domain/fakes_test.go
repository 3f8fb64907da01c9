package domain

import (
	"context"
	"errors"
	"sync"

	"termite.dev/pkg/termite/internal/adapter"
	"termite.dev/pkg/termite/internal/controller"
	m "termite.dev/pkg/termite/internal/model"
)

var (
	errInjectedRead  = errors.New("injected read failure")
	errInjectedWrite = errors.New("injected write failure")
)

// faultyFS is the local filesystem with per-path read and write failures.
type faultyFS struct {
	*adapter.LocalSourceFSAdapter

	failRead  map[m.Path]bool
	failWrite map[m.Path]bool

	// afterRead runs once a read has returned the old content.
	afterRead func(path m.Path)

	mu     sync.Mutex
	writes []m.Path
}

func newFaultyFS() *faultyFS {
	return &faultyFS{
		LocalSourceFSAdapter: adapter.NewLocalSourceFSAdapter(),
		failRead:             map[m.Path]bool{},
		failWrite:            map[m.Path]bool{},
	}
}

func (f *faultyFS) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if f.failRead[path] {
		return nil, errInjectedRead
	}

	content, err := f.LocalSourceFSAdapter.ReadFile(ctx, path)
	if err == nil && f.afterRead != nil {
		f.afterRead(path)
	}

	return content, err
}

func (f *faultyFS) WriteFile(ctx context.Context, path m.Path, content []byte) error {
	f.mu.Lock()
	f.writes = append(f.writes, path)
	f.mu.Unlock()

	if f.failWrite[path] {
		return errInjectedWrite
	}

	return f.LocalSourceFSAdapter.WriteFile(ctx, path, content)
}

func (f *faultyFS) written() []m.Path {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]m.Path(nil), f.writes...)
}

// recordingUI records everything the workflow displays.
type recordingUI struct {
	mu sync.Mutex

	starts      int
	waits       int
	closes      int
	scanStarted []int
	scanned     int
	fileErrors  []m.FileError
	previews    []m.FilePreview
	reports     []m.ReportCard
	formats     []string
	summaries   []m.Summary
	watchEvents [][]m.Path

	previewErr error
	reportErr  error
}

var _ controller.UI = (*recordingUI)(nil)

func (u *recordingUI) Start(ctx context.Context, _ ...controller.StartOption) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.starts++

	return ctx.Err()
}

func (u *recordingUI) Close(context.Context) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.closes++
}

func (u *recordingUI) Wait(context.Context) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.waits++
}

func (u *recordingUI) DisplayScanStarted(_ context.Context, files int) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.scanStarted = append(u.scanStarted, files)
}

func (u *recordingUI) DisplayFileScanned(context.Context, m.Path) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.scanned++
}

func (u *recordingUI) DisplayFileError(_ context.Context, failure m.FileError) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.fileErrors = append(u.fileErrors, failure)
}

func (u *recordingUI) DisplayPreview(_ context.Context, preview m.FilePreview) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.previews = append(u.previews, preview)

	return u.previewErr
}

func (u *recordingUI) DisplayReport(_ context.Context, card m.ReportCard, format string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.reports = append(u.reports, card)
	u.formats = append(u.formats, format)

	return u.reportErr
}

func (u *recordingUI) DisplaySummary(_ context.Context, summary m.Summary) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.summaries = append(u.summaries, summary)
}

func (u *recordingUI) DisplayWatchEvent(_ context.Context, paths []m.Path) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.watchEvents = append(u.watchEvents, paths)
}

// scriptedWatcher replays batches produced by steps, then returns.
type scriptedWatcher struct {
	steps []func() []m.Path

	roots []m.Path
	opts  adapter.WatchOptions
}

func (s *scriptedWatcher) Watch(ctx context.Context, roots []m.Path, opts adapter.WatchOptions, fn func([]m.Path)) error {
	s.roots = roots
	s.opts = opts

	for _, step := range s.steps {
		if ctx.Err() != nil {
			return nil
		}

		fn(step())
	}

	return nil
}
