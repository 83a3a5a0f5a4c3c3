package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-mutual-friends/internal/bundle"
	"github.com/MKhiriev/go-mutual-friends/internal/config"
	"github.com/MKhiriev/go-mutual-friends/internal/crypto"
	"github.com/MKhiriev/go-mutual-friends/internal/logger"
	"github.com/MKhiriev/go-mutual-friends/internal/store"
	"github.com/MKhiriev/go-mutual-friends/internal/validators"
	"github.com/MKhiriev/go-mutual-friends/internal/workers"
	"github.com/MKhiriev/go-mutual-friends/models"
)

type revealService struct {
	*phase
}

func NewRevealService(
	bundles store.BundleStorage,
	journal store.Journal,
	codec *bundle.Codec,
	strategy workers.Strategy,
	cfg *config.StructuredConfig,
	log *logger.Logger,
	opts ...Option,
) RevealService {
	return &revealService{
		phase: newPhase(bundles, journal, codec, strategy, cfg, log.WithPhase(config.ModeCheck), opts...),
	}
}

func (s *revealService) Reveal(ctx context.Context) (models.RevealReport, error) {
	data, err := s.readBundle(ctx, s.files.SecretPath)
	if err != nil {
		return models.RevealReport{}, fmt.Errorf("reveal: private bundle: %w", err)
	}
	priv, err := s.codec.DecodePrivate(data)
	if err != nil {
		return models.RevealReport{}, fmt.Errorf("reveal: private bundle: %w", err)
	}

	data, err = s.readBundle(ctx, s.files.RemoteResultPath)
	if err != nil {
		return models.RevealReport{}, fmt.Errorf("reveal: result bundle: %w", err)
	}
	result, err := s.codec.DecodeResult(data)
	if err != nil {
		return models.RevealReport{}, fmt.Errorf("reveal: result bundle: %w", err)
	}

	if err = s.validator.Validate(ctx, validators.RevealInput{Private: priv, Result: result}); err != nil {
		return models.RevealReport{}, fmt.Errorf("reveal: %w", err)
	}

	mutual, err := s.decrypt(ctx, priv, result)
	if err != nil {
		return models.RevealReport{}, fmt.Errorf("reveal: %w", err)
	}

	report := models.RevealReport{
		ResultID: result.ID.String(),
		SourceID: result.SourceID.String(),
		Profile:  result.Profile,
		Entries:  make([]models.RevealEntry, len(mutual)),
	}
	report.Enrollment = s.enrollment(ctx, priv.ID.String())

	count := 0
	for i, m := range mutual {
		report.Entries[i] = models.RevealEntry{Index: i, Identifier: priv.Identifiers[i].String(), Mutual: m}
		if m {
			count++
		}
	}

	err = s.journal.RecordReveal(ctx, models.Reveal{
		ResultID:  report.ResultID,
		SourceID:  report.SourceID,
		Total:     len(mutual),
		Mutual:    count,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("reveal not journaled")
	}

	s.logger.Info().Int("total", len(mutual)).Int("mutual", count).Msg("result revealed")
	return report, nil
}

// enrollment looks up when and where the private bundle was written. A
// missing record only costs the report its provenance.
func (s *revealService) enrollment(ctx context.Context, bundleID string) *models.Enrollment {
	e, err := s.journal.Enrollment(ctx, bundleID)
	switch {
	case err == nil:
		return &e
	case errors.Is(err, store.ErrNotJournaled):
		s.logger.Debug().Str("bundle_id", bundleID).Msg("enrollment not in journal")
	default:
		s.logger.Warn().Err(err).Msg("enrollment lookup failed")
	}
	return nil
}

// decrypt reveals every bit positionally.
func (s *revealService) decrypt(ctx context.Context, priv *bundle.Private, result *bundle.Result) ([]bool, error) {
	base := crypto.NewRevealer(priv.Key)
	revealers := make([]*crypto.Revealer, s.strategy.Size())
	for w := range revealers {
		revealers[w] = base.ShallowCopy()
	}

	progress, stop := s.track(ctx, "reveal", len(result.Bits))
	defer stop()

	scheme := priv.Key.Scheme()
	out := make([]bool, len(result.Bits))
	err := s.strategy.Run(ctx, len(result.Bits), func(_ context.Context, w, i int) error {
		bit, err := s.codec.Bit(scheme, result, i)
		if err != nil {
			return err
		}
		if out[i], err = revealers[w].Reveal(bit); err != nil {
			return fmt.Errorf("result #%d: %w", i, err)
		}
		progress.Add(1)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
