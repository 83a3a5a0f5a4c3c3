// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides the execution strategies used by the phase
// services and the background workers that run next to them.
//
// A [Strategy] runs n index-addressed tasks; tasks write their output into
// pre-sized slices by index, so results never depend on scheduling. A
// [Worker] is a long-running background job such as the progress reporter.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// Run blocks until ctx is done or the worker fails.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// Task processes item i on the given worker slot. worker is in
// [0, Strategy.Size()) and is stable for the goroutine that runs the task,
// so it can index per-worker state such as evaluator copies.
type Task func(ctx context.Context, worker, i int) error

// Strategy executes n tasks. The first task error cancels the remaining
// work and is returned.
type Strategy interface {
	Run(ctx context.Context, n int, task Task) error

	// Size is the number of worker slots the strategy uses.
	Size() int

	// Name is the configuration name of the strategy.
	Name() string
}
