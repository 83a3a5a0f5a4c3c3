// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

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

type computeService struct {
	*phase
}

func NewComputeService(
	bundles store.BundleStorage,
	journal store.Journal,
	codec *bundle.Codec,
	strategy workers.Strategy,
	cfg *config.StructuredConfig,
	log *logger.Logger,
	opts ...Option,
) ComputeService {
	return &computeService{
		phase: newPhase(bundles, journal, codec, strategy, cfg, log.WithPhase(config.ModeCalc), opts...),
	}
}

// Compute loads the remote public bundle and the local private bundle, then
// runs four stages on the execution strategy:
//
//	check-remote   every remote ciphertext decoded and checked against the profile
//	encrypt-local  local identifiers packed into blocks under the remote public key
//	compare        remote[i] against every block, OR-reduced into one bit
//	write          result bundle in remote order
func (s *computeService) Compute(ctx context.Context) (models.Computation, error) {
	started := s.now()

	remote, local, err := s.load(ctx)
	if err != nil {
		return models.Computation{}, fmt.Errorf("compute: %w", err)
	}

	in := validators.ComputeInput{Profile: s.profile, Remote: remote, Local: local}
	if err = s.validator.Validate(ctx, in); err != nil {
		return models.Computation{}, fmt.Errorf("compute: %w", err)
	}

	s.logger.Info().
		Str("source_id", remote.ID.String()).
		Int("remote", len(remote.Ciphertexts)).
		Int("local", len(local.Identifiers)).
		Str("strategy", s.strategy.Name()).
		Int("workers", s.strategy.Size()).
		Msg("computing intersection")

	if err = s.checkRemote(ctx, remote); err != nil {
		return models.Computation{}, fmt.Errorf("compute: %w", err)
	}

	blocks, identity, err := s.encryptLocal(ctx, remote.Key, local.Identifiers)
	if err != nil {
		return models.Computation{}, fmt.Errorf("compute: %w", err)
	}

	bits, err := s.compare(ctx, remote, blocks, identity)
	if err != nil {
		return models.Computation{}, fmt.Errorf("compute: %w", err)
	}

	result := &bundle.Result{ID: s.ids.Generate(), SourceID: remote.ID, Profile: remote.Profile, Bits: bits}
	data, err := s.codec.EncodeResult(result)
	if err != nil {
		return models.Computation{}, fmt.Errorf("compute: %w", err)
	}
	if err = s.bundles.Write(ctx, s.files.ResultPath, data); err != nil {
		return models.Computation{}, fmt.Errorf("compute: %w", err)
	}

	computation := models.Computation{
		ResultID:   result.ID.String(),
		SourceID:   result.SourceID.String(),
		Profile:    result.Profile,
		Remote:     len(remote.Ciphertexts),
		Local:      len(local.Identifiers),
		Strategy:   s.strategy.Name(),
		Workers:    s.strategy.Size(),
		Duration:   s.now().Sub(started),
		ResultPath: s.files.ResultPath,
		CreatedAt:  s.now().UTC(),
	}
	if err = s.journal.RecordComputation(ctx, computation); err != nil {
		s.logger.Warn().Err(err).Msg("computation not journaled")
	}

	s.logger.Info().
		Str("result_id", computation.ResultID).
		Dur("duration", computation.Duration).
		Msg("result written")

	return computation, nil
}

func (s *computeService) load(ctx context.Context) (*bundle.Public, *bundle.Private, error) {
	data, err := s.readBundle(ctx, s.files.RemotePublicPath)
	if err != nil {
		return nil, nil, fmt.Errorf("remote public bundle: %w", err)
	}
	remote, err := s.codec.DecodePublic(data)
	if err != nil {
		return nil, nil, fmt.Errorf("remote public bundle: %w", err)
	}

	data, err = s.readBundle(ctx, s.files.SecretPath)
	if err != nil {
		return nil, nil, fmt.Errorf("local private bundle: %w", err)
	}
	local, err := s.codec.DecodePrivate(data)
	if err != nil {
		return nil, nil, fmt.Errorf("local private bundle: %w", err)
	}

	return remote, local, nil
}

// checkRemote decodes every remote ciphertext once so a truncated or
// foreign-ring entry fails the phase before the comparison matrix starts.
// The decoded values are dropped; compare decodes each row again.
func (s *computeService) checkRemote(ctx context.Context, remote *bundle.Public) error {
	n := len(remote.Ciphertexts)
	progress, stop := s.track(ctx, "check-remote", n)
	defer stop()

	return s.strategy.Run(ctx, n, func(_ context.Context, _, i int) error {
		if _, err := s.codec.Ciphertext(remote, i); err != nil {
			return fmt.Errorf("remote public bundle: %w", err)
		}
		progress.Add(1)
		return nil
	})
}

// encryptLocal shuffles the local identifiers into blocks and encrypts each
// block under the remote public key. It also returns the encrypted false
// used to pad the OR tree.
func (s *computeService) encryptLocal(ctx context.Context, key *crypto.ComputeKey, ids []identifier.ID) ([]*crypto.LocalBlock, *crypto.EncryptedBool, error) {
	base := crypto.NewLocalEncoder(key)

	plan, err := base.PlanBlocks(ids)
	if err != nil {
		return nil, nil, err
	}
	identity, err := base.EncryptFalse()
	if err != nil {
		return nil, nil, err
	}

	encoders := make([]*crypto.LocalEncoder, s.strategy.Size())
	for w := range encoders {
		encoders[w] = base.ShallowCopy()
	}

	progress, stop := s.track(ctx, "encrypt-local", len(plan))
	defer stop()

	blocks := make([]*crypto.LocalBlock, len(plan))
	err = s.strategy.Run(ctx, len(plan), func(_ context.Context, w, b int) error {
		block, err := encoders[w].EncryptBlock(plan[b])
		if err != nil {
			return fmt.Errorf("local block #%d: %w", b, err)
		}
		blocks[b] = block
		progress.Add(1)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return blocks, identity, nil
}

// compare evaluates one row of the comparison matrix per task. Every row
// folds over all blocks; a failed comparison aborts the stage.
func (s *computeService) compare(ctx context.Context, remote *bundle.Public, blocks []*crypto.LocalBlock, identity *crypto.EncryptedBool) ([]crypto.CompressedCiphertext, error) {
	baseCmp := crypto.NewComparator(remote.Key)
	baseAgg := crypto.NewAggregator(remote.Key)

	comparators := make([]*crypto.Comparator, s.strategy.Size())
	aggregators := make([]*crypto.Aggregator, s.strategy.Size())
	for w := range comparators {
		comparators[w] = baseCmp.ShallowCopy()
		aggregators[w] = baseAgg.ShallowCopy()
	}

	n := len(remote.Ciphertexts)
	progress, stop := s.track(ctx, "compare", n)
	defer stop()

	zstd := s.codec.Compression()
	bits := make([]crypto.CompressedCiphertext, n)
	err := s.strategy.Run(ctx, n, func(_ context.Context, w, i int) error {
		ct, err := s.codec.Ciphertext(remote, i)
		if err != nil {
			return err
		}

		row := make([]*crypto.EncryptedBool, len(blocks))
		for b, block := range blocks {
			if row[b], err = comparators[w].Compare(ct, block); err != nil {
				return fmt.Errorf("remote #%d, block #%d: %w", i, b, err)
			}
		}

		bit, err := aggregators[w].OrReduce(identity, row)
		if err != nil {
			return fmt.Errorf("remote #%d: %w", i, err)
		}
		if bits[i], err = bit.Compress(zstd); err != nil {
			return fmt.Errorf("remote #%d: %w", i, err)
		}
		progress.Add(1)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bits, nil
}
