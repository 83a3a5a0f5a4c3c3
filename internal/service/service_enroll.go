package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mutual-friends/internal/bundle"
	"github.com/MKhiriev/go-mutual-friends/internal/config"
	"github.com/MKhiriev/go-mutual-friends/internal/crypto"
	"github.com/MKhiriev/go-mutual-friends/internal/identifier"
	"github.com/MKhiriev/go-mutual-friends/internal/logger"
	"github.com/MKhiriev/go-mutual-friends/internal/store"
	"github.com/MKhiriev/go-mutual-friends/internal/validators"
	"github.com/MKhiriev/go-mutual-friends/internal/workers"
	"github.com/MKhiriev/go-mutual-friends/models"
)

type enrollService struct {
	*phase
	keys *crypto.KeyManager
}

func NewEnrollService(
	bundles store.BundleStorage,
	journal store.Journal,
	codec *bundle.Codec,
	strategy workers.Strategy,
	cfg *config.StructuredConfig,
	log *logger.Logger,
	opts ...Option,
) EnrollService {
	return &enrollService{
		phase: newPhase(bundles, journal, codec, strategy, cfg, log.WithPhase(config.ModeInit), opts...),
		keys:  crypto.NewKeyManager(),
	}
}

func (s *enrollService) Enroll(ctx context.Context, friends []string) (models.Enrollment, error) {
	if err := s.validator.Validate(ctx, validators.EnrollInput{Friends: friends, Profile: s.profile, MaxBundleSize: s.codec.MaxDecodedSize()}); err != nil {
		return models.Enrollment{}, fmt.Errorf("enroll: %w", err)
	}

	ids, err := identifier.ParseAll(friends)
	if err != nil {
		return models.Enrollment{}, fmt.Errorf("enroll: %w", err)
	}

	s.logger.Info().Int("identifiers", len(ids)).Str("profile", s.profile).Msg("generating key pair")
	sk, ck, err := s.keys.Generate(s.profile)
	if err != nil {
		return models.Enrollment{}, fmt.Errorf("enroll: generate keys: %w", err)
	}

	cts, err := s.encrypt(ctx, sk, ids)
	if err != nil {
		return models.Enrollment{}, fmt.Errorf("enroll: %w", err)
	}

	id := s.ids.Generate()
	pub, err := s.codec.EncodePublic(&bundle.Public{ID: id, Profile: s.profile, Ciphertexts: cts, Key: ck})
	if err != nil {
		return models.Enrollment{}, fmt.Errorf("enroll: %w", err)
	}
	priv, err := s.codec.EncodePrivate(&bundle.Private{ID: id, Profile: s.profile, Identifiers: ids, Key: sk})
	if err != nil {
		return models.Enrollment{}, fmt.Errorf("enroll: %w", err)
	}

	// WritePair rolls the first file back if the second one fails
	err = s.bundles.WritePair(ctx,
		store.File{Path: s.files.SecretPath, Data: priv},
		store.File{Path: s.files.PublicPath, Data: pub},
	)
	if err != nil {
		return models.Enrollment{}, fmt.Errorf("enroll: %w", err)
	}

	enrollment := models.Enrollment{
		BundleID:    id.String(),
		Profile:     s.profile,
		Identifiers: len(ids),
		PrivatePath: s.files.SecretPath,
		PublicPath:  s.files.PublicPath,
		CreatedAt:   s.now().UTC(),
	}
	if err = s.journal.RecordEnrollment(ctx, enrollment); err != nil {
		s.logger.Warn().Err(err).Msg("enrollment not journaled")
	}

	s.logger.Info().
		Str("bundle_id", enrollment.BundleID).
		Int("identifiers", enrollment.Identifiers).
		Int("public_bytes", len(pub)).
		Msg("enrollment written")

	return enrollment, nil
}

// encrypt encrypts and compresses ids in order. Each worker slot owns an
// encryptor copy; outputs land at their input index.
func (s *enrollService) encrypt(ctx context.Context, sk *crypto.SecretKey, ids []identifier.ID) ([]crypto.CompressedCiphertext, error) {
	base := crypto.NewEncryptor(sk)
	encs := make([]*crypto.Encryptor, s.strategy.Size())
	for w := range encs {
		encs[w] = base.ShallowCopy()
	}

	progress, stop := s.track(ctx, "encrypt", len(ids))
	defer stop()

	zstd := s.codec.Compression()
	out := make([]crypto.CompressedCiphertext, len(ids))
	err := s.strategy.Run(ctx, len(ids), func(_ context.Context, w, i int) error {
		ct, err := encs[w].EncryptID(ids[i])
		if err != nil {
			return fmt.Errorf("identifier #%d: %w", i, err)
		}
		if out[i], err = ct.Compress(zstd); err != nil {
			return fmt.Errorf("identifier #%d: %w", i, err)
		}
		progress.Add(1)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
