// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"

	"github.com/MKhiriev/go-mutual-friends/internal/crypto"
	"github.com/klauspost/compress/zstd"
)

// validate checks that the final merged [StructuredConfig] is usable before
// any phase starts. Each failure wraps one of the ErrInvalid*Configs
// sentinels.
func (cfg *StructuredConfig) validate() error {
	if !slices.Contains([]string{"", ModeInit, ModeCalc, ModeCheck, ModeHistory}, cfg.App.Mode) {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidAppConfigs, cfg.App.Mode)
	}

	f := cfg.Storage.Files
	if f.SecretPath == "" || f.PublicPath == "" || f.RemotePublicPath == "" || f.ResultPath == "" || f.RemoteResultPath == "" {
		return fmt.Errorf("%w: every bundle path must be set", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.DB.DSN == "" || cfg.Storage.DB.DSN == ":memory:" {
		return fmt.Errorf("%w: journal DSN must be a file or %q", ErrInvalidStorageConfigs, JournalOff)
	}
	if ok, _ := zstd.EncoderLevelFromString(cfg.Storage.CompressionLevel); !ok {
		return fmt.Errorf("%w: unknown compression level %q", ErrInvalidStorageConfigs, cfg.Storage.CompressionLevel)
	}

	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	switch cfg.Workers.Strategy {
	case StrategySequential:
	case StrategyPool:
		if cfg.Workers.Count < 1 {
			return fmt.Errorf("%w: pool needs at least one worker, got %d", ErrInvalidWorkerConfigs, cfg.Workers.Count)
		}
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidWorkerConfigs, cfg.Workers.Strategy)
	}

	if _, err := crypto.LookupProfile(cfg.Crypto.Profile); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCryptoConfigs, err)
	}

	return nil
}
