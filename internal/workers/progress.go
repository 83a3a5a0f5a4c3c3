package workers

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-mutual-friends/internal/logger"
)

// Progress counts finished units of work. It is safe for concurrent use and
// never influences the result of the work it observes.
type Progress struct {
	name  string
	total int64
	done  atomic.Int64
}

// NewProgress creates a counter for total units of the named stage.
func NewProgress(name string, total int) *Progress {
	return &Progress{name: name, total: int64(total)}
}

// Add marks n more units as finished.
func (p *Progress) Add(n int) {
	p.done.Add(int64(n))
}

// Done returns the number of finished units.
func (p *Progress) Done() int64 { return p.done.Load() }

// Total returns the number of units the stage consists of.
func (p *Progress) Total() int64 { return p.total }

// Name returns the stage name.
func (p *Progress) Name() string { return p.name }

// Percent returns completion in [0, 100].
func (p *Progress) Percent() float64 {
	if p.total == 0 {
		return 100
	}
	return float64(p.Done()) * 100 / float64(p.total)
}

// ProgressReporter is a [Worker] that logs a [Progress] snapshot every
// interval and publishes it to an optional sink (the TUI progress bar).
type ProgressReporter struct {
	progress *Progress
	interval time.Duration
	sink     func(done, total int64)
}

// NewProgressReporter creates a reporter. sink may be nil.
func NewProgressReporter(p *Progress, interval time.Duration, sink func(done, total int64)) *ProgressReporter {
	return &ProgressReporter{progress: p, interval: interval, sink: sink}
}

// Run implements [Worker]. It reports once more when ctx is done so the
// final count is never lost.
func (r *ProgressReporter) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if r.interval <= 0 {
		<-ctx.Done()
		r.report(log)
		return nil
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.report(log)
			return nil
		case <-ticker.C:
			r.report(log)
		}
	}
}

func (r *ProgressReporter) report(log *logger.Logger) {
	done, total := r.progress.Done(), r.progress.Total()
	log.Debug().
		Str("stage", r.progress.Name()).
		Int64("done", done).
		Int64("total", total).
		Float64("percent", r.progress.Percent()).
		Msg("progress")
	if r.sink != nil {
		r.sink(done, total)
	}
}
