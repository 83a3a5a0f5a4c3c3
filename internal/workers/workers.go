package workers

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Workers runs a set of background workers together.
type Workers struct {
	workers []Worker
}

// NewWorkers groups ws.
func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

// Run starts every worker in its own goroutine and blocks until all of them
// return. The first error cancels the others.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(ctx)
		})
	}
	return g.Wait()
}

// Start runs the workers in the background. The returned stop function
// cancels them and waits for them to return.
func (w *Workers) Start(ctx context.Context) (stop func() error) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	return func() error {
		cancel()
		return <-done
	}
}
