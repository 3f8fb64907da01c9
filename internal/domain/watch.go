package domain

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"termite.dev/pkg/termite/internal/adapter"
	"termite.dev/pkg/termite/internal/controller"
	m "termite.dev/pkg/termite/internal/model"
)

// Watch runs an initial pass and then a full pass after every quiet period
// following changes to matching files, until ctx is cancelled.
func (w *workflow) Watch(ctx context.Context, args WatchArgs) error {
	mode := m.ModePreview
	if args.Write {
		mode = m.ModeFix
	}

	err := w.Start(ctx,
		controller.WithMode(mode),
		controller.WithQuiet(args.Quiet),
		controller.WithFullPreview(args.Full),
		controller.WithWatch(),
	)
	if err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	stamps, err := w.watchPass(ctx, mode, args.RunArgs)
	if err != nil {
		return err
	}

	opts := adapter.WatchOptions{
		Include:  args.Include,
		Exclude:  args.Exclude,
		Debounce: args.Debounce,
	}

	slog.Info("Watching for changes", "paths", args.Paths, "debounce", args.Debounce)

	return w.watcher.Watch(ctx, args.Paths, opts, func(paths []m.Path) {
		changed := w.modified(ctx, stamps, paths)
		if len(changed) == 0 {
			slog.Debug("Ignoring events without modification", "paths", paths)
			return
		}

		w.DisplayWatchEvent(ctx, changed)

		next, err := w.watchPass(ctx, mode, args.RunArgs)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}

			slog.Warn("Watch pass failed", "error", err)
			w.DisplayFileError(ctx, m.FileError{Op: "scan", Err: err})

			return
		}

		stamps = next
	})
}

// watchPass runs one pass and returns the modification times it saw. Files
// are stamped before they are read, so an edit made while the pass runs is
// still a change afterwards. Files the pass wrote are stamped again so the
// fix does not retrigger itself.
func (w *workflow) watchPass(ctx context.Context, mode m.Mode, args RunArgs) (map[m.Path]time.Time, error) {
	paths, err := w.Discover(ctx, args.Paths, args.Include, args.Exclude)
	if err != nil {
		// pass reports the same failure.
		paths = nil
	}

	stamps := w.stamp(ctx, paths)

	_, summary, err := w.pass(ctx, mode, args)
	if err != nil {
		return nil, err
	}

	for path, modTime := range w.stamp(ctx, summary.Written) {
		stamps[path] = modTime
	}

	return stamps, nil
}

// stamp records the modification time of every path that can be stat'ed.
func (w *workflow) stamp(ctx context.Context, paths []m.Path) map[m.Path]time.Time {
	stamps := make(map[m.Path]time.Time, len(paths))

	for _, path := range paths {
		info, err := w.FileInfo(ctx, path)
		if err != nil {
			continue
		}

		stamps[path] = info.ModTime()
	}

	return stamps
}

// modified drops paths whose modification time matches the last pass.
// Removed and new files always count as modified.
func (w *workflow) modified(ctx context.Context, stamps map[m.Path]time.Time, paths []m.Path) []m.Path {
	var changed []m.Path

	for _, path := range paths {
		info, err := w.FileInfo(ctx, path)
		if err != nil {
			if _, known := stamps[path]; known {
				changed = append(changed, path)
			}

			continue
		}

		if last, ok := stamps[path]; ok && last.Equal(info.ModTime()) {
			continue
		}

		changed = append(changed, path)
	}

	return changed
}
