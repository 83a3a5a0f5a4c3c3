// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package compress wraps zstd for bundle envelopes and individual
// ciphertexts. A single [Codec] is safe for concurrent use: zstd's
// EncodeAll and DecodeAll do not share per-call state.
package compress

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

var (
	// ErrCorrupt is returned when the input is not a valid zstd frame.
	ErrCorrupt = errors.New("corrupt compressed payload")
	// ErrTooLarge is returned when a valid frame decodes past the configured
	// limit.
	ErrTooLarge = errors.New("decoded payload exceeds size limit")
)

// DefaultMaxDecodedSize bounds a single decoded payload (1 GiB).
const DefaultMaxDecodedSize = 1 << 30

// Codec compresses and decompresses byte slices with zstd.
type Codec struct {
	encoder    *zstd.Encoder
	decoder    *zstd.Decoder
	maxDecoded uint64
}

// NewCodec creates a codec. level accepts the zstd level names "fastest",
// "default", "better" and "best"; an empty level means "best".
// maxDecoded limits the size of any decompressed payload; zero selects
// [DefaultMaxDecodedSize].
func NewCodec(level string, maxDecoded uint64) (*Codec, error) {
	encLevel := zstd.SpeedBestCompression
	if level != "" {
		ok, l := zstd.EncoderLevelFromString(level)
		if !ok {
			return nil, fmt.Errorf("unknown zstd level %q", level)
		}
		encLevel = l
	}
	if maxDecoded == 0 {
		maxDecoded = DefaultMaxDecodedSize
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(encLevel))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderMaxMemory(maxDecoded),
		zstd.WithDecoderMaxWindow(maxDecoded),
	)
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &Codec{encoder: encoder, decoder: decoder, maxDecoded: maxDecoded}, nil
}

// Compress returns the zstd frame for src.
func (c *Codec) Compress(src []byte) []byte {
	return c.encoder.EncodeAll(src, make([]byte, 0, len(src)/2))
}

// Decompress decodes a zstd frame produced by [Codec.Compress].
func (c *Codec) Decompress(src []byte) ([]byte, error) {
	out, err := c.decoder.DecodeAll(src, nil)
	switch {
	case err == nil:
		return out, nil
	case errors.Is(err, zstd.ErrDecoderSizeExceeded), errors.Is(err, zstd.ErrWindowSizeExceeded):
		return nil, fmt.Errorf("%w (%d bytes): %w", ErrTooLarge, c.maxDecoded, err)
	default:
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
}

// MaxDecoded returns the decoded size limit.
func (c *Codec) MaxDecoded() uint64 {
	return c.maxDecoded
}

// Close releases encoder and decoder resources.
func (c *Codec) Close() error {
	c.decoder.Close()
	return c.encoder.Close()
}
