package workers

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Strategy names.
const (
	NameSequential = "sequential"
	NamePool       = "pool"
)

// NewStrategy returns the strategy registered under name. size is the pool
// size and is ignored by the sequential strategy.
func NewStrategy(name string, size int) (Strategy, error) {
	switch name {
	case NameSequential:
		return Sequential{}, nil
	case NamePool:
		if size < 1 {
			return nil, fmt.Errorf("pool size must be positive, got %d", size)
		}
		return NewPool(size), nil
	default:
		return nil, fmt.Errorf("unknown execution strategy %q", name)
	}
}

// Sequential runs tasks one after another on worker slot 0.
type Sequential struct{}

// Run implements [Strategy].
func (Sequential) Run(ctx context.Context, n int, task Task) error {
	for i := range n {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := task(ctx, 0, i); err != nil {
			return err
		}
	}
	return nil
}

// Size implements [Strategy].
func (Sequential) Size() int { return 1 }

// Name implements [Strategy].
func (Sequential) Name() string { return NameSequential }

// Pool runs tasks on a fixed number of goroutines fed from a channel.
type Pool struct {
	size int
}

// NewPool creates a pool with size worker slots.
func NewPool(size int) *Pool {
	return &Pool{size: size}
}

// Run implements [Strategy].
func (p *Pool) Run(ctx context.Context, n int, task Task) error {
	if n == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan int)

	g.Go(func() error {
		defer close(jobs)
		for i := range n {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})

	for w := range min(p.size, n) {
		g.Go(func() error {
			for i := range jobs {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := task(gctx, w, i); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// the feeder stops quietly on cancellation of the parent context
	return ctx.Err()
}

// Size implements [Strategy].
func (p *Pool) Size() int { return p.size }

// Name implements [Strategy].
func (p *Pool) Name() string { return NamePool }
