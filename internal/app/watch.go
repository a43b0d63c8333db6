package app

import (
	"context"
	"fmt"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Watch emits once and then re-emits whenever an override or project file
// changes, until ctx is cancelled. Failed runs are logged and do not stop the loop.
func (a *App) Watch(ctx context.Context, opts Options) error {
	tracer, done := a.startTracer(opts)
	defer done()

	if err := a.emit(ctx, tracer, opts); err != nil {
		a.logger.Error(err)
	}

	files := opts.WatchedFiles()
	if err := a.watcher.Start(ctx, files); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	a.logger.Info(fmt.Sprintf("watching %d files for changes", len(files)))

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		return a.watcher.Stop()
	})

	g.Go(func() error {
		for event := range a.watcher.Events() {
			a.logger.Info("changed: " + event.Path)
			if err := a.emit(ctx, tracer, opts); err != nil {
				a.logger.Error(err)
			}
		}
		return nil
	})

	return g.Wait()
}
