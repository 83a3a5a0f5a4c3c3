// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package bundle defines the on-disk artifacts exchanged between the two
// parties: the public bundle, the private bundle and the result bundle.
//
// Every bundle is a zstd frame wrapping an 8-byte header followed by a CBOR
// body:
//
//	magic "MFPSI" (5) │ format version (2, big-endian) │ kind (1) │ CBOR body
//
// The header is validated before the body is decoded, and the body is
// decoded before any lattigo structure is touched.
package bundle

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-mutual-friends/internal/compress"
	"github.com/MKhiriev/go-mutual-friends/internal/crypto"
	"github.com/fxamacker/cbor/v2"
)

// Kind distinguishes the three bundle types.
type Kind uint8

const (
	KindPublic  Kind = 1
	KindPrivate Kind = 2
	KindResult  Kind = 3
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindPublic:
		return "public"
	case KindPrivate:
		return "private"
	case KindResult:
		return "result"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

const (
	magic = "MFPSI"

	// FormatVersion is the current envelope and body layout version.
	FormatVersion uint16 = 1

	headerLen = len(magic) + 2 + 1
)

var decMode = func() cbor.DecMode {
	dm, err := cbor.DecOptions{
		MaxArrayElements: 1 << 20,
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}()

// Codec encodes and decodes bundles.
type Codec struct {
	zstd       *compress.Codec
	keyChain   crypto.KeyChain
	passphrase string
}

// Option configures a [Codec].
type Option func(*Codec)

// WithPassphrase seals private bundles with a key derived from passphrase.
// An empty passphrase disables sealing.
func WithPassphrase(kc crypto.KeyChain, passphrase string) Option {
	return func(c *Codec) {
		c.keyChain = kc
		c.passphrase = passphrase
	}
}

// NewCodec creates a bundle codec on top of a zstd codec.
func NewCodec(z *compress.Codec, opts ...Option) *Codec {
	c := &Codec{zstd: z}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compression exposes the zstd codec used for per-ciphertext compression.
func (c *Codec) Compression() *compress.Codec {
	return c.zstd
}

// MaxDecodedSize is the largest bundle this codec will decode.
func (c *Codec) MaxDecodedSize() uint64 {
	return c.zstd.MaxDecoded()
}

func (c *Codec) seal(kind Kind, body any) ([]byte, error) {
	payload, err := cbor.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s bundle body: %w", kind, err)
	}

	buf := make([]byte, headerLen, headerLen+len(payload))
	copy(buf, magic)
	binary.BigEndian.PutUint16(buf[len(magic):], FormatVersion)
	buf[headerLen-1] = byte(kind)
	buf = append(buf, payload...)

	return c.zstd.Compress(buf), nil
}

func (c *Codec) open(data []byte, want Kind, body any) error {
	raw, err := c.zstd.Decompress(data)
	if err != nil {
		return classify(err)
	}

	if len(raw) < headerLen || string(raw[:len(magic)]) != magic {
		return fmt.Errorf("%w: not a bundle", ErrDeserialization)
	}
	if v := binary.BigEndian.Uint16(raw[len(magic):]); v != FormatVersion {
		return fmt.Errorf("%w: unsupported format version %d (supported: %d)", ErrDeserialization, v, FormatVersion)
	}
	if got := Kind(raw[headerLen-1]); got != want {
		return fmt.Errorf("%w: expected %s bundle, got %s", ErrDeserialization, want, got)
	}

	if err = decMode.Unmarshal(raw[headerLen:], body); err != nil {
		return fmt.Errorf("%w: %s bundle body: %w", ErrDeserialization, want, err)
	}
	return nil
}

// classify maps errors from the crypto layer onto bundle error kinds while
// keeping the original chain intact.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, compress.ErrTooLarge):
		return fmt.Errorf("%w: %w", ErrTooLarge, err)
	case errors.Is(err, compress.ErrCorrupt):
		return fmt.Errorf("%w: %w", ErrDecompression, err)
	case errors.Is(err, crypto.ErrMalformedCiphertext):
		return fmt.Errorf("%w: %w", ErrDeserialization, err)
	default:
		return err
	}
}
