package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-mutual-friends/internal/bundle"
	"github.com/MKhiriev/go-mutual-friends/internal/config"
	"github.com/MKhiriev/go-mutual-friends/internal/logger"
	"github.com/MKhiriev/go-mutual-friends/internal/store"
	"github.com/MKhiriev/go-mutual-friends/internal/utils"
	"github.com/MKhiriev/go-mutual-friends/internal/validators"
	"github.com/MKhiriev/go-mutual-friends/internal/workers"
)

// phase carries the dependencies shared by the three phase services.
type phase struct {
	bundles   store.BundleStorage
	journal   store.Journal
	codec     *bundle.Codec
	strategy  workers.Strategy
	validator validators.Validator

	files            config.Files
	profile          string
	progressInterval time.Duration

	sink ProgressSink
	ids  IDGenerator
	now  func() time.Time

	logger *logger.Logger
}

// Option customises a phase service.
type Option func(*phase)

// WithProgressSink forwards progress snapshots to sink.
func WithProgressSink(sink ProgressSink) Option {
	return func(p *phase) { p.sink = sink }
}

// WithIDGenerator replaces the UUIDv7 bundle ID generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(p *phase) { p.ids = g }
}

// WithClock replaces time.Now for journal timestamps and durations.
func WithClock(now func() time.Time) Option {
	return func(p *phase) { p.now = now }
}

func newPhase(
	bundles store.BundleStorage,
	journal store.Journal,
	codec *bundle.Codec,
	strategy workers.Strategy,
	cfg *config.StructuredConfig,
	log *logger.Logger,
	opts ...Option,
) *phase {
	p := &phase{
		bundles:          bundles,
		journal:          journal,
		codec:            codec,
		strategy:         strategy,
		validator:        validators.NewPhaseValidator(),
		files:            cfg.Storage.Files,
		profile:          cfg.Crypto.Profile,
		progressInterval: cfg.Workers.ProgressInterval,
		ids:              utils.NewUUIDGenerator(),
		now:              time.Now,
		logger:           log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// track starts a progress reporter for one stage. stop must be called once
// the stage is over; it flushes the final count.
func (p *phase) track(ctx context.Context, stage string, total int) (progress *workers.Progress, stop func()) {
	progress = workers.NewProgress(stage, total)

	var sink func(done, total int64)
	if p.sink != nil {
		sink = func(done, total int64) { p.sink(stage, done, total) }
	}

	reporter := workers.NewProgressReporter(progress, p.progressInterval, sink)
	stopWorkers := workers.NewWorkers(reporter).Start(p.logger.WithContext(ctx))

	return progress, func() { _ = stopWorkers() }
}

// readBundle loads the bundle at path.
func (p *phase) readBundle(ctx context.Context, path string) ([]byte, error) {
	data, err := p.bundles.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	p.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("bundle read")
	return data, nil
}
