package cli

import (
	"context"
	"errors"
	"fmt"

	"docreview/internal/watch"
)

// watchDebounce is the quiet period before a change triggers a review.
var watchDebounce = watch.DefaultDebounce

// watch re-runs the review whenever the document or guideline file changes.
// It returns nil once ctx is cancelled.
func (r *reviewer) watch(ctx context.Context) error {
	changes := make(chan watch.Change, 16)
	watcher, err := watch.NewFileWatcher(watchDebounce, func(change watch.Change) {
		select {
		case changes <- change:
		default:
		}
	})
	if err != nil {
		fmt.Fprintf(r.stderr, "Failed to start watcher: %v\n", err)
		return exitWith(ExitError)
	}
	if err := watcher.Watch(r.opts.document, r.opts.guidelines); err != nil {
		fmt.Fprintf(r.stderr, "Failed to start watcher: %v\n", err)
		return exitWith(ExitError)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	watchErr := make(chan error, 1)
	go func() {
		watchErr <- watcher.Run(ctx)
		cancel()
	}()

	fmt.Fprintln(r.stdout, "Watching for changes. Press Ctrl+C to stop.")
	err = watchLoop(ctx, changes, func(change watch.Change) {
		r.logger.Debug("inputs changed", "paths", change.Paths)
		r.loadInputs(change.Has(r.opts.document), change.Has(r.opts.guidelines))
		// A rejected or failed run is reported; watching continues.
		_ = r.reviewOnce(ctx)
	})
	cancel()
	if runErr := <-watchErr; runErr != nil && !errors.Is(runErr, context.Canceled) {
		fmt.Fprintf(r.stderr, "Watcher stopped: %v\n", runErr)
		return exitWith(ExitError)
	}
	return err
}

// watchLoop hands each change, merged with any already queued, to rerun
// until ctx is done.
func watchLoop(ctx context.Context, changes <-chan watch.Change, rerun func(watch.Change)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case change := <-changes:
			if ctx.Err() != nil {
				return nil
			}
			rerun(drain(change, changes))
		}
	}
}

func drain(change watch.Change, changes <-chan watch.Change) watch.Change {
	for {
		select {
		case next := <-changes:
			change.Paths = append(change.Paths, next.Paths...)
		default:
			return change
		}
	}
}
